package game

import (
	"fmt"

	"github.com/lordvidex/errs/v2"
)

var (
	// ErrInvalidWord is returned for guesses outside the vocabulary.
	// No guess is recorded; an out-of-vocabulary guess costs nothing.
	ErrInvalidWord = errs.B().Code(errs.InvalidArgument).Msg("word is not in the vocabulary").Err()

	// ErrSessionNotFound is returned for unknown game ids.
	ErrSessionNotFound = errs.B().Code(errs.NotFound).Msg("game not found, start a new game").Err()

	// ErrHintsExhausted signals that every near neighbor of the secret has
	// already been issued in this session.
	ErrHintsExhausted = errs.B().Code(errs.ResourceExhausted).Msg("no hints remaining for this game").Err()

	// ErrNoVocabulary is returned when games cannot be started because the
	// vocabulary loaded empty.
	ErrNoVocabulary = errs.B().Code(errs.Unavailable).Msg("vocabulary is empty, games cannot be started").Err()
)

// AlreadyWonError is returned for guesses made after the session reached
// Won. It carries the completed game's summary so the caller can show it
// instead of a new score.
type AlreadyWonError struct {
	Secret       string
	TotalGuesses int
}

func (e *AlreadyWonError) Error() string {
	return fmt.Sprintf("game already completed in %d guesses", e.TotalGuesses)
}
