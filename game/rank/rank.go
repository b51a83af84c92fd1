// Package rank precomputes the similarity ranking of every vocabulary word
// against one secret word and answers rank queries in O(log n).
package rank

import (
	"context"
	"sort"

	"github.com/kodekulture/contexto-server/game/score"
)

// Entry is one (score, word) pair of a ranking table.
type Entry struct {
	Score float64
	Word  string
}

// Table is the descending score order of the full vocabulary against one
// secret word. Built once at secret-word binding time; read-only afterwards
// and safe for concurrent readers.
type Table struct {
	entries []Entry
	secret  string
}

// Scorer is the slice of the layered scorer the table needs.
type Scorer interface {
	Score(ctx context.Context, guess, secret string, guessEmb, secretEmb []float32) (score.Breakdown, error)
}

// Build scores every vocabulary word against the secret and sorts the
// result descending. The secret itself is skipped so the best
// non-secret word holds rank 1. words and embeddings are parallel
// slices; secretEmb is passed through to avoid re-embedding the secret
// n times.
func Build(ctx context.Context, sc Scorer, words []string, embeddings [][]float32, secret string, secretEmb []float32) (*Table, error) {
	entries := make([]Entry, 0, len(words))
	for i, w := range words {
		if w == secret {
			continue
		}
		var emb []float32
		if i < len(embeddings) {
			emb = embeddings[i]
		}
		b, err := sc.Score(ctx, w, secret, emb, secretEmb)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Score: b.Final, Word: w})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return &Table{entries: entries, secret: secret}, nil
}

// Secret returns the word this table was built against.
func (t *Table) Secret() string { return t.secret }

// Len returns the number of table entries.
func (t *Table) Len() int { return len(t.entries) }

// RankOf returns 1 plus the number of table entries scoring strictly
// better than guessScore. Ties therefore share the boundary rank. Rank 0
// is reserved for the exact secret match and is never produced here.
func (t *Table) RankOf(guessScore float64) int {
	// entries are descending; find the first position with score <= guess
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Score <= guessScore
	})
	return i + 1
}

// Top returns the best n entries, fewer if the table is smaller.
func (t *Table) Top(n int) []Entry {
	if n > len(t.entries) {
		n = len(t.entries)
	}
	out := make([]Entry, n)
	copy(out, t.entries[:n])
	return out
}
