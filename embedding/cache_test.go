package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider wraps Subword and counts how many words reach it.
type countingProvider struct {
	inner    *Subword
	embedded []string
}

func (p *countingProvider) Embed(ctx context.Context, words []string) ([][]float32, error) {
	p.embedded = append(p.embedded, words...)
	return p.inner.Embed(ctx, words)
}

func (p *countingProvider) Dimension() int { return p.inner.Dimension() }

func (p *countingProvider) ModelID() string { return p.inner.ModelID() }

// memStore is an in-memory Store with injectable failures.
type memStore struct {
	vectors map[string][]float32
	getErr  error
	putErr  error
	puts    int
}

func newMemStore() *memStore {
	return &memStore{vectors: make(map[string][]float32)}
}

func (s *memStore) GetVector(key string) ([]float32, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	vec, ok := s.vectors[key]
	return vec, ok, nil
}

func (s *memStore) PutVector(key string, vec []float32) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	s.vectors[key] = vec
	return nil
}

func newCountingProvider(t *testing.T) *countingProvider {
	t.Helper()
	inner, err := NewSubword(32)
	require.NoError(t, err)
	return &countingProvider{inner: inner}
}

func TestCached_MemoryHit(t *testing.T) {
	provider := newCountingProvider(t)
	c := NewCached(provider, nil)
	ctx := context.Background()

	first, err := c.Embed(ctx, []string{"dog", "cat"})
	require.NoError(t, err)
	second, err := c.Embed(ctx, []string{"dog", "cat"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"dog", "cat"}, provider.embedded, "second call must be served from memory")
}

func TestCached_BatchesOnlyMisses(t *testing.T) {
	provider := newCountingProvider(t)
	c := NewCached(provider, nil)
	ctx := context.Background()

	_, err := c.Embed(ctx, []string{"dog"})
	require.NoError(t, err)
	out, err := c.Embed(ctx, []string{"dog", "cat", "car"})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"dog", "cat", "car"}, provider.embedded)
}

func TestCached_StorePersistsAcrossInstances(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	warm := newCountingProvider(t)
	c1 := NewCached(warm, store)
	want, err := c1.Embed(ctx, []string{"dog"})
	require.NoError(t, err)
	assert.Equal(t, 1, store.puts)

	// a fresh instance with an empty memory map serves from the store
	cold := newCountingProvider(t)
	c2 := NewCached(cold, store)
	got, err := c2.Embed(ctx, []string{"dog"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Empty(t, cold.embedded, "store hit must not reach the provider")
}

func TestCached_StoreFailuresAreNotFatal(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("store offline")
	store.putErr = errors.New("store offline")

	provider := newCountingProvider(t)
	c := NewCached(provider, store)
	out, err := c.Embed(context.Background(), []string{"dog"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0])
}

func TestCached_PassesThroughMetadata(t *testing.T) {
	provider := newCountingProvider(t)
	c := NewCached(provider, nil)
	assert.Equal(t, provider.Dimension(), c.Dimension())
	assert.Equal(t, provider.ModelID(), c.ModelID())
}
