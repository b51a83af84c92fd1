package embedding

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

// Cached decorates a Provider with an in-memory map and an optional
// persistent Store. Vocabulary embeddings are computed once per model
// version and survive restarts through the store.
type Cached struct {
	inner Provider
	store Store

	mu  sync.RWMutex
	mem map[string][]float32
}

func NewCached(inner Provider, store Store) *Cached {
	return &Cached{
		inner: inner,
		store: store,
		mem:   make(map[string][]float32),
	}
}

func (c *Cached) Dimension() int { return c.inner.Dimension() }

func (c *Cached) ModelID() string { return c.inner.ModelID() }

// Embed serves each word from cache when possible and batches the misses
// into a single provider call. Store write failures are logged and
// ignored; the in-memory copy stays authoritative.
func (c *Cached) Embed(ctx context.Context, words []string) ([][]float32, error) {
	out := make([][]float32, len(words))
	var missWords []string
	var missIdx []int

	for i, w := range words {
		key := c.cacheKey(w)
		if vec := c.fromMemory(key); vec != nil {
			out[i] = vec
			continue
		}
		if c.store != nil {
			vec, ok, err := c.store.GetVector(key)
			if err == nil && ok {
				c.toMemory(key, vec)
				out[i] = vec
				continue
			}
		}
		missWords = append(missWords, w)
		missIdx = append(missIdx, i)
	}

	if len(missWords) == 0 {
		return out, nil
	}

	vecs, err := c.inner.Embed(ctx, missWords)
	if err != nil {
		return nil, err
	}
	for j, vec := range vecs {
		key := c.cacheKey(missWords[j])
		c.toMemory(key, vec)
		if c.store != nil {
			if err := c.store.PutVector(key, vec); err != nil {
				log.Err(err).Str("word", missWords[j]).Msg("failed to persist embedding")
			}
		}
		out[missIdx[j]] = vec
	}
	return out, nil
}

func (c *Cached) cacheKey(word string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, c.inner.ModelID())
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, word)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cached) fromMemory(key string) []float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mem[key]
}

func (c *Cached) toMemory(key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem[key] = vec
}
