// Package embedding exposes the word-embedding capability consumed by the
// scoring and indexing layers. Vectors are deterministic for a pinned model
// and L2-normalized at this boundary, so downstream code may treat inner
// product as cosine similarity.
package embedding

import "context"

// Provider maps words to fixed-length real vectors.
type Provider interface {
	// Embed returns one vector per input word, in input order.
	Embed(ctx context.Context, words []string) ([][]float32, error)
	// Dimension is the fixed length of the produced vectors.
	Dimension() int
	// ModelID identifies the pinned model; it keys the embedding cache.
	ModelID() string
}

// Store persists embeddings between runs. Lookup misses return
// (nil, false, nil) rather than an error.
type Store interface {
	GetVector(key string) ([]float32, bool, error)
	PutVector(key string, vec []float32) error
}
