package badgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kodekulture/contexto-server/game"
	"github.com/kodekulture/contexto-server/game/vocab"
)

func TestSnapshotRepo_DumpLoadDrop(t *testing.T) {
	repo := New(testDB)
	t.Cleanup(func() { _ = repo.Drop() })

	a := game.New("ayo", game.ModePractice, vocab.Easy, "candle", game.Deps{})
	b := game.New("fela", game.ModeDaily, vocab.Medium, "bridge", game.Deps{})
	b.Hints = []string{"desert"}

	require.NoError(t, repo.Dump([]*game.Session{a, b}))

	restored, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, restored, 2)

	byID := make(map[string]*game.Session, len(restored))
	for _, s := range restored {
		byID[s.ID.String()] = s
		assert.False(t, s.Bound(), "restored sessions carry no collaborators")
	}
	got, ok := byID[a.ID.String()]
	require.True(t, ok)
	assert.Equal(t, "candle", got.Secret)
	assert.Equal(t, "ayo", got.Owner)

	got, ok = byID[b.ID.String()]
	require.True(t, ok)
	assert.Equal(t, game.ModeDaily, got.Mode)
	assert.Equal(t, []string{"desert"}, got.Hints)

	require.NoError(t, repo.Drop())
	restored, err = repo.Load()
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestSnapshotRepo_LoadEmpty(t *testing.T) {
	repo := New(testDB)
	require.NoError(t, repo.Drop())
	restored, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestSnapshotRepo_DumpKeepsGuessHistory(t *testing.T) {
	repo := New(testDB)
	t.Cleanup(func() { _ = repo.Drop() })

	s := game.New("ayo", game.ModePractice, vocab.Hard, "engine", game.Deps{})
	s.Guesses = []game.Guess{
		{Word: "forest", Score: 0.4321, Rank: 12},
		{Word: "garden", Score: 0.2109, Rank: 40},
	}
	require.NoError(t, repo.Dump([]*game.Session{s}))

	restored, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	require.Len(t, restored[0].Guesses, 2)
	assert.Equal(t, "forest", restored[0].Guesses[0].Word)
	assert.Equal(t, 40, restored[0].Guesses[1].Rank)
}

func TestVectorStore_RoundTrip(t *testing.T) {
	store := NewVectorStore(testDB)

	want := []float32{0.25, -1.5, 0, 3.14159}
	require.NoError(t, store.PutVector("model|dog", want))

	got, ok, err := store.GetVector("model|dog")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestVectorStore_Missing(t *testing.T) {
	store := NewVectorStore(testDB)
	vec, ok, err := store.GetVector("model|unknown-word")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, vec)
}

func TestVectorStore_Overwrite(t *testing.T) {
	store := NewVectorStore(testDB)
	require.NoError(t, store.PutVector("model|cat", []float32{1, 2}))
	require.NoError(t, store.PutVector("model|cat", []float32{3, 4, 5}))

	got, ok, err := store.GetVector("model|cat")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{3, 4, 5}, got)
}

func TestVectorStore_EmptyVector(t *testing.T) {
	store := NewVectorStore(testDB)
	require.NoError(t, store.PutVector("model|empty", []float32{}))
	got, ok, err := store.GetVector("model|empty")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got)
}
