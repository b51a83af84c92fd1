// Package repository is responsible for the permanent storage of data of this application
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/game/vocab"
)

type Player interface {
	// GetByUsername returns a player by username
	GetByUsername(ctx context.Context, username string) (*game.Player, error)

	// GetByID returns a player by ID
	GetByID(ctx context.Context, id int) (*game.Player, error)

	// Create saves the new player into the database
	Create(ctx context.Context, player game.Player) error
}

type Session interface {
	// Save stores a newly started session
	Save(ctx context.Context, s *game.Session) error

	// Update patches the mutable session fields (completion, win state)
	Update(ctx context.Context, s *game.Session) error

	// AppendGuess appends one guess record to a stored session
	AppendGuess(ctx context.Context, id uuid.UUID, g game.Guess) error

	// Load returns a stored session or game.ErrSessionNotFound
	Load(ctx context.Context, id uuid.UUID) (*game.Session, error)

	// Delete removes a stored session and its guesses
	Delete(ctx context.Context, id uuid.UUID) error
}

type Vocabulary interface {
	// Load returns the full reference vocabulary ordered by frequency rank.
	// An empty result is valid; callers decide whether to refuse games.
	Load(ctx context.Context) ([]vocab.Entry, error)
}

type Snapshot interface {
	// Load returns the sessions dumped by the previous process
	Load() ([]*game.Session, error)
	// Dump stores the active sessions for the next process
	Dump(sessions []*game.Session) error
	// Drop deletes the snapshot data
	Drop() error
}
