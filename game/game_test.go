package game

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodekulture/contexto-server/game/rank"
	"github.com/kodekulture/contexto-server/game/score"
	"github.com/kodekulture/contexto-server/game/vocab"
)

// fixedProvider serves handcrafted vectors so relative similarity in the
// tests is predictable: puppy is near dog, cat less so, car unrelated.
type fixedProvider struct {
	vectors map[string][]float32
}

func (p fixedProvider) Embed(_ context.Context, words []string) ([][]float32, error) {
	out := make([][]float32, len(words))
	for i, w := range words {
		out[i] = p.vectors[w]
	}
	return out, nil
}

func (p fixedProvider) Dimension() int { return 3 }

func (p fixedProvider) ModelID() string { return "fixed-test" }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	words := []string{"cat", "dog", "puppy", "car"}
	provider := fixedProvider{vectors: map[string][]float32{
		"dog":   {1, 0, 0},
		"puppy": {0.9, 0.1, 0},
		"cat":   {0.6, 0.4, 0},
		"car":   {0, 1, 0},
	}}
	entries := make([]vocab.Entry, len(words))
	for i, w := range words {
		entries[i] = vocab.Entry{Word: w, FrequencyRank: i + 1, POS: []string{"noun"}}
	}
	v := vocab.New(entries)
	sc := score.New(provider, v)

	ctx := context.Background()
	embs, err := provider.Embed(ctx, v.Words())
	require.NoError(t, err)
	secretEmb := provider.vectors["dog"]
	table, err := rank.Build(ctx, sc, v.Words(), embs, "dog", secretEmb)
	require.NoError(t, err)
	idx := vocab.NewIndex(v.Words(), embs)

	deps := Deps{
		Vocab:          v,
		Scorer:         sc,
		Table:          table,
		HintCandidates: idx.NearestNeighbors(secretEmb, HintPoolSize+1),
		SecretEmb:      secretEmb,
	}
	return New(gofakeit.Username(), ModePractice, vocab.Easy, "dog", deps)
}

func TestSession_GuessSecretWins(t *testing.T) {
	s := newTestSession(t)
	res, err := s.Guess(context.Background(), "dog")
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.Equal(t, 0, res.Rank)
	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, "Correct! The word was 'dog'", res.Message)
	assert.Equal(t, 1, res.TotalGuesses)
	assert.Equal(t, s.Guesses[0], res.Record, "result carries the appended history entry")
	assert.True(t, s.Completed())
	require.NotNil(t, s.CompletedAt)
}

func TestSession_GuessNormalizesInput(t *testing.T) {
	s := newTestSession(t)
	res, err := s.Guess(context.Background(), "  DOG ")
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, "dog", res.Word)
}

func TestSession_GuessAfterWin(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Guess(context.Background(), "dog")
	require.NoError(t, err)

	_, err = s.Guess(context.Background(), "puppy")
	var won *AlreadyWonError
	require.True(t, errors.As(err, &won))
	assert.Equal(t, "dog", won.Secret)
	assert.Equal(t, 1, won.TotalGuesses)
	// the rejected guess is not recorded
	assert.Len(t, s.Guesses, 1)
}

func TestSession_GuessOutsideVocabulary(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Guess(context.Background(), "xyz123")
	require.ErrorIs(t, err, ErrInvalidWord)
	assert.Empty(t, s.Guesses)
	assert.False(t, s.Completed())
}

func TestSession_RanksFollowSimilarity(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	puppy, err := s.Guess(ctx, "puppy")
	require.NoError(t, err)
	car, err := s.Guess(ctx, "car")
	require.NoError(t, err)

	assert.False(t, puppy.Won)
	assert.Equal(t, 1, puppy.Rank, "best non-secret word holds rank 1")
	assert.Less(t, puppy.Rank, car.Rank, "puppy must rank closer to dog than car")
	assert.Greater(t, puppy.Score, car.Score)
	assert.Equal(t, 4, puppy.TotalWords)
	assert.NotEmpty(t, puppy.Message)
	assert.Len(t, puppy.Explanation, 3)
	assert.Len(t, s.Guesses, 2)
	assert.Equal(t, s.Guesses[0], puppy.Record)
	assert.Equal(t, s.Guesses[1], car.Record)
}

func TestSession_HintsAreUniqueAndExcludeSecret(t *testing.T) {
	s := newTestSession(t)

	seen := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		h, err := s.Hint()
		require.NoError(t, err)
		assert.NotEqual(t, "dog", h.Word)
		if _, dup := seen[h.Word]; dup {
			t.Fatalf("hint %q issued twice", h.Word)
		}
		seen[h.Word] = struct{}{}
	}
	// best neighbor comes first
	assert.Contains(t, seen, "puppy")
	assert.Equal(t, "puppy", s.Hints[0])

	_, err := s.Hint()
	require.ErrorIs(t, err, ErrHintsExhausted)
}

func TestSession_HintRemainingCountsDown(t *testing.T) {
	s := newTestSession(t)
	h, err := s.Hint()
	require.NoError(t, err)
	assert.Equal(t, 2, h.Remaining)
	h, err = s.Hint()
	require.NoError(t, err)
	assert.Equal(t, 1, h.Remaining)
}

func TestSession_RevealDoesNotComplete(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "dog", s.Reveal())
	assert.False(t, s.Completed())
	// still playable after reveal
	_, err := s.Guess(context.Background(), "puppy")
	assert.NoError(t, err)
}

func TestSession_Stats(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	_, err := s.Guess(ctx, "car")
	require.NoError(t, err)
	_, err = s.Guess(ctx, "dog")
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, s.ID, st.GameID)
	assert.Equal(t, ModePractice, st.Mode)
	assert.Equal(t, 2, st.TotalGuesses)
	assert.True(t, st.Won)
	require.NotNil(t, st.CompletedAt)
	require.Len(t, st.GuessHistory, 2)
	assert.Equal(t, "car", st.GuessHistory[0].Word)
	assert.Equal(t, 0, st.GuessHistory[1].Rank)
}

func TestSession_LetterHint(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "The word has 3 letters", s.LetterHint())
}

func TestSession_RebindRestoresPlayability(t *testing.T) {
	s := newTestSession(t)
	deps := s.deps
	s.Rebind(Deps{})
	assert.False(t, s.Bound())
	s.Rebind(deps)
	assert.True(t, s.Bound())
	_, err := s.Guess(context.Background(), "cat")
	assert.NoError(t, err)
}
