package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/kodekulture/contexto-server/game/score"
)

// NewGameResult is returned when a session is started.
type NewGameResult struct {
	GameID     uuid.UUID `json:"game_id"`
	Mode       Mode      `json:"mode"`
	Difficulty string    `json:"difficulty"`
	Hint       string    `json:"hint"`
	Message    string    `json:"message"`
}

// GuessResult is the player-facing outcome of one scored guess: the number
// and the reason, both are required by the UI.
type GuessResult struct {
	Word         string              `json:"word"`
	Score        float64             `json:"score"`
	Rank         int                 `json:"rank"`
	TotalWords   int                 `json:"total_words"`
	Reasoning    score.Reasoning     `json:"reasoning"`
	Explanation  []score.Explanation `json:"explanation,omitempty"`
	Message      string              `json:"message"`
	Won          bool                `json:"won"`
	TotalGuesses int                 `json:"total_guesses,omitempty"`

	// Record is the history entry appended by this guess, captured
	// under the session lock so callers can persist it without
	// re-reading the history.
	Record Guess `json:"-"`
}

// HintResult is one issued hint word.
type HintResult struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
	Remaining  int     `json:"remaining"`
}

// SessionStats summarizes a session for the stats endpoint.
type SessionStats struct {
	GameID       uuid.UUID  `json:"game_id"`
	Mode         Mode       `json:"mode"`
	Difficulty   string     `json:"difficulty"`
	TotalGuesses int        `json:"total_guesses"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	Won          bool       `json:"won"`
	GuessHistory []Guess    `json:"guess_history"`
}

// Player is a registered account that owns game sessions.
type Player struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
