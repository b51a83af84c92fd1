package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/repository"
)

var _ repository.Session = new(SessionRepo)

type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: db}
}

// Save implements repository.Session.
func (r *SessionRepo) Save(ctx context.Context, s *game.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO game_sessions (id, owner, mode, difficulty, secret_word, started_at, completed_at, won, hints)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Owner, string(s.Mode), s.Difficulty, s.Secret, s.StartedAt, s.CompletedAt, s.Won, s.Hints,
	)
	return err
}

// Update implements repository.Session.
func (r *SessionRepo) Update(ctx context.Context, s *game.Session) error {
	_, err := r.db.Exec(ctx,
		`UPDATE game_sessions SET completed_at = $2, won = $3, hints = $4 WHERE id = $1`,
		s.ID, s.CompletedAt, s.Won, s.Hints,
	)
	return err
}

// AppendGuess implements repository.Session.
func (r *SessionRepo) AppendGuess(ctx context.Context, id uuid.UUID, g game.Guess) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO guesses (session_id, word, score, rank, played_at) VALUES ($1, $2, $3, $4, $5)`,
		id, g.Word, g.Score, g.Rank, g.PlayedAt,
	)
	return err
}

// Load implements repository.Session. The returned session carries no
// runtime collaborators; the caller rebuilds its ranking engine.
func (r *SessionRepo) Load(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, owner, mode, difficulty, secret_word, started_at, completed_at, won, hints
		 FROM game_sessions WHERE id = $1`,
		id,
	)
	var (
		s           game.Session
		mode        string
		completedAt pgtype.Timestamptz
	)
	err := row.Scan(&s.ID, &s.Owner, &mode, &s.Difficulty, &s.Secret, &s.StartedAt, &completedAt, &s.Won, &s.Hints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrSessionNotFound
		}
		return nil, err
	}
	s.Mode = game.Mode(mode)
	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}

	rows, err := r.db.Query(ctx,
		`SELECT word, score, rank, played_at FROM guesses WHERE session_id = $1 ORDER BY played_at, id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var g game.Guess
		if err := rows.Scan(&g.Word, &g.Score, &g.Rank, &g.PlayedAt); err != nil {
			return nil, err
		}
		s.Guesses = append(s.Guesses, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete implements repository.Session.
func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM guesses WHERE session_id = $1`, id)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `DELETE FROM game_sessions WHERE id = $1`, id)
	return err
}
