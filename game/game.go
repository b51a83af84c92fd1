// Package game implements the per-game session state machine: secret word,
// guess history, win detection, hint bookkeeping and reveal.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kodekulture/contexto-server/game/rank"
	"github.com/kodekulture/contexto-server/game/score"
	"github.com/kodekulture/contexto-server/game/vocab"
)

// HintPoolSize is how many nearest neighbors of the secret word are
// eligible as hints over the lifetime of one session.
const HintPoolSize = 20

// Mode distinguishes the daily challenge from free practice.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModePractice Mode = "practice"
)

// Guess is one append-only record of the session's guess history.
type Guess struct {
	Word     string    `json:"word"`
	Score    float64   `json:"score"`
	Rank     int       `json:"rank"`
	PlayedAt time.Time `json:"played_at"`
}

// Deps are the runtime collaborators of a session. They are not part of
// session state and must be reattached after hydration with Rebind.
type Deps struct {
	Vocab  *vocab.Vocabulary
	Scorer *score.Scorer
	Table  *rank.Table
	// HintCandidates are the secret's nearest neighbors in descending
	// similarity, including the secret itself (filtered at issue time).
	HintCandidates []vocab.Neighbor
	SecretEmb      []float32
}

// Session owns one game's lifecycle. All mutating calls are serialized by
// an internal per-session lock: concurrent guesses against one game never
// interleave and the transition into Won happens at most once.
type Session struct {
	ID          uuid.UUID  `json:"id"`
	Owner       string     `json:"owner"`
	Mode        Mode       `json:"mode"`
	Difficulty  string     `json:"difficulty"`
	Secret      string     `json:"secret"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Won         bool       `json:"won"`
	Guesses     []Guess    `json:"guesses"`
	Hints       []string   `json:"hints"`

	mu   sync.Mutex
	deps Deps
}

// New creates a session bound to a secret word.
func New(owner string, mode Mode, difficulty vocab.Band, secret string, deps Deps) *Session {
	return &Session{
		ID:         uuid.New(),
		Owner:      owner,
		Mode:       mode,
		Difficulty: difficulty.String(),
		Secret:     secret,
		StartedAt:  time.Now(),
		deps:       deps,
	}
}

// Rebind reattaches runtime collaborators after the session was restored
// from a snapshot or from persistence.
func (s *Session) Rebind(deps Deps) {
	s.mu.Lock()
	s.deps = deps
	s.mu.Unlock()
}

// Bound reports whether the session has live collaborators attached.
func (s *Session) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deps.Table != nil
}

// Guess validates and scores one guess. Word lookup failures and guesses
// after completion leave the session untouched.
func (s *Session) Guess(ctx context.Context, word string) (GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Won {
		return GuessResult{}, &AlreadyWonError{Secret: s.Secret, TotalGuesses: len(s.Guesses)}
	}

	w := vocab.Normalize(word)
	if !s.deps.Vocab.Contains(w) {
		return GuessResult{}, ErrInvalidWord
	}

	now := time.Now()
	total := s.deps.Vocab.Len()

	// An exact match is a win condition, not a scoring case: floating
	// point would not reliably produce 1.0 for the secret against itself.
	if w == s.Secret {
		s.Won = true
		s.CompletedAt = &now
		rec := Guess{Word: w, Score: 1.0, Rank: 0, PlayedAt: now}
		s.Guesses = append(s.Guesses, rec)
		return GuessResult{
			Word:         w,
			Score:        1.0,
			Rank:         0,
			TotalWords:   total,
			Reasoning:    score.Reasoning{Semantic: 1.0, Lexical: 1.0, Category: 1.0},
			Message:      fmt.Sprintf("Correct! The word was '%s'", s.Secret),
			Won:          true,
			TotalGuesses: len(s.Guesses),
			Record:       rec,
		}, nil
	}

	b, err := s.deps.Scorer.Score(ctx, w, s.Secret, nil, s.deps.SecretEmb)
	if err != nil {
		return GuessResult{}, err
	}
	r := s.deps.Table.RankOf(b.Final)
	rec := Guess{Word: w, Score: b.DisplayScore(), Rank: r, PlayedAt: now}
	s.Guesses = append(s.Guesses, rec)
	return GuessResult{
		Word:        w,
		Score:       b.DisplayScore(),
		Rank:        r,
		TotalWords:  total,
		Reasoning:   b.Reasoning(),
		Explanation: b.Explain(),
		Message:     b.Message(),
		Record:      rec,
	}, nil
}

// Hint issues the best not-yet-issued near neighbor of the secret word.
func (s *Session) Hint() (HintResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issued := make(map[string]struct{}, len(s.Hints)+1)
	issued[s.Secret] = struct{}{}
	for _, h := range s.Hints {
		issued[h] = struct{}{}
	}
	for _, n := range s.deps.HintCandidates {
		if _, ok := issued[n.Word]; ok {
			continue
		}
		s.Hints = append(s.Hints, n.Word)
		return HintResult{Word: n.Word, Similarity: n.Similarity, Remaining: s.remainingHints()}, nil
	}
	return HintResult{}, ErrHintsExhausted
}

// remainingHints counts candidates not yet issued. Callers hold s.mu.
func (s *Session) remainingHints() int {
	issued := make(map[string]struct{}, len(s.Hints)+1)
	issued[s.Secret] = struct{}{}
	for _, h := range s.Hints {
		issued[h] = struct{}{}
	}
	var left int
	for _, n := range s.deps.HintCandidates {
		if _, ok := issued[n.Word]; !ok {
			left++
		}
	}
	return left
}

// Reveal returns the secret word without mutating state. Safe to call at
// any point of the session.
func (s *Session) Reveal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Secret
}

// Stats summarizes the session.
func (s *Session) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Guess, len(s.Guesses))
	copy(history, s.Guesses)
	return SessionStats{
		GameID:       s.ID,
		Mode:         s.Mode,
		Difficulty:   s.Difficulty,
		TotalGuesses: len(history),
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		Won:          s.Won,
		GuessHistory: history,
	}
}

// LetterHint is the free hint shown at game start.
func (s *Session) LetterHint() string {
	return fmt.Sprintf("The word has %d letters", len([]rune(s.Secret)))
}

// Completed reports whether the session reached a terminal state.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Won
}
