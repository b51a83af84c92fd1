// Package postgres stores players, sessions and the reference vocabulary
// in PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lordvidex/errs/v2"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/repository"
)

var _ repository.Player = new(PlayerRepo)

type PlayerRepo struct {
	db *pgxpool.Pool
}

func NewPlayerRepo(db *pgxpool.Pool) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Create implements repository.Player.
func (r *PlayerRepo) Create(ctx context.Context, player game.Player) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO players (username, password) VALUES ($1, $2)`,
		player.Username, player.Password,
	)
	if err != nil {
		return errs.WrapCode(err, errs.InvalidArgument, "username is taken")
	}
	return nil
}

// GetByUsername implements repository.Player.
func (r *PlayerRepo) GetByUsername(ctx context.Context, username string) (*game.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password FROM players WHERE username = $1`,
		username,
	)
	return scanPlayer(row)
}

// GetByID implements repository.Player.
func (r *PlayerRepo) GetByID(ctx context.Context, id int) (*game.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password FROM players WHERE id = $1`,
		id,
	)
	return scanPlayer(row)
}

func scanPlayer(row pgx.Row) (*game.Player, error) {
	var p game.Player
	if err := row.Scan(&p.ID, &p.Username, &p.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.B().Code(errs.NotFound).Msg("player not found").Err()
		}
		return nil, err
	}
	return &p, nil
}
