package vocab

import (
	"math"
	"sort"
	"sync"
)

// Neighbor is one nearest-neighbor hit.
type Neighbor struct {
	Word       string
	Similarity float64
}

// Index is a brute-force vector index over the vocabulary embeddings.
// Vectors are L2-normalized at insert time so that inner product equals
// cosine similarity. Built once per process; reads need no lock, Replace
// exists for tests and reloads.
type Index struct {
	mu    sync.RWMutex
	words []string
	vecs  [][]float32
}

// NewIndex builds an index from parallel word/vector slices.
func NewIndex(words []string, vecs [][]float32) *Index {
	idx := &Index{}
	idx.Replace(words, vecs)
	return idx
}

// Replace swaps the indexed vectors atomically. Input vectors are copied
// and normalized; the caller keeps ownership of its slices.
func (idx *Index) Replace(words []string, vecs [][]float32) {
	w := make([]string, len(words))
	copy(w, words)
	v := make([][]float32, len(vecs))
	for i, vec := range vecs {
		v[i] = normalized(vec)
	}
	idx.mu.Lock()
	idx.words, idx.vecs = w, v
	idx.mu.Unlock()
}

// Size returns the number of indexed vectors.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.words)
}

// NearestNeighbors returns up to k words ordered by descending cosine
// similarity to the query.
func (idx *Index) NearestNeighbors(query []float32, k int) []Neighbor {
	idx.mu.RLock()
	words, vecs := idx.words, idx.vecs
	idx.mu.RUnlock()

	if len(words) == 0 || len(query) == 0 || k <= 0 {
		return nil
	}
	q := normalized(query)
	hits := make([]Neighbor, 0, len(words))
	for i, vec := range vecs {
		hits = append(hits, Neighbor{Word: words[i], Similarity: dot(q, vec)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func normalized(vec []float32) []float32 {
	out := make([]float32, len(vec))
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		copy(out, vec)
		return out
	}
	inv := float32(1 / math.Sqrt(sumSq))
	for i, v := range vec {
		out[i] = v * inv
	}
	return out
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
