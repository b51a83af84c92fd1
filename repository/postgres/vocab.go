package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodekulture/contexto-server/game/vocab"
	"github.com/kodekulture/contexto-server/repository"
)

var _ repository.Vocabulary = new(VocabRepo)

type VocabRepo struct {
	db *pgxpool.Pool
}

func NewVocabRepo(db *pgxpool.Pool) *VocabRepo {
	return &VocabRepo{db: db}
}

// Load implements repository.Vocabulary.
func (r *VocabRepo) Load(ctx context.Context) ([]vocab.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT word, frequency_rank, pos FROM words ORDER BY frequency_rank`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []vocab.Entry
	for rows.Next() {
		var e vocab.Entry
		if err := rows.Scan(&e.Word, &e.FrequencyRank, &e.POS); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
