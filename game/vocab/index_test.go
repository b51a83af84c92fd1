package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *Index {
	return NewIndex(
		[]string{"north", "east", "northeast", "south"},
		[][]float32{
			{1, 0},
			{0, 1},
			{1, 1},
			{-1, 0},
		},
	)
}

func TestIndex_NearestNeighbors(t *testing.T) {
	idx := testIndex()
	require.Equal(t, 4, idx.Size())

	hits := idx.NearestNeighbors([]float32{1, 0}, 3)
	require.Len(t, hits, 3)
	assert.Equal(t, "north", hits[0].Word)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "northeast", hits[1].Word)
	assert.Equal(t, "east", hits[2].Word)

	for i := 1; i < len(hits); i++ {
		if hits[i-1].Similarity < hits[i].Similarity {
			t.Errorf("hits out of order at %d", i)
		}
	}
}

func TestIndex_NearestNeighborsNormalizesQuery(t *testing.T) {
	idx := testIndex()
	a := idx.NearestNeighbors([]float32{1, 0}, 4)
	b := idx.NearestNeighbors([]float32{250, 0}, 4)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Word, b[i].Word)
		assert.InDelta(t, a[i].Similarity, b[i].Similarity, 1e-6)
	}
}

func TestIndex_NearestNeighborsEdgeCases(t *testing.T) {
	idx := testIndex()
	assert.Nil(t, idx.NearestNeighbors(nil, 3), "empty query")
	assert.Nil(t, idx.NearestNeighbors([]float32{1, 0}, 0), "k zero")
	assert.Len(t, idx.NearestNeighbors([]float32{1, 0}, 100), 4, "k beyond size")

	empty := NewIndex(nil, nil)
	assert.Nil(t, empty.NearestNeighbors([]float32{1, 0}, 3), "empty index")
}

func TestIndex_Replace(t *testing.T) {
	idx := testIndex()
	idx.Replace([]string{"solo"}, [][]float32{{0, 1}})
	assert.Equal(t, 1, idx.Size())
	hits := idx.NearestNeighbors([]float32{0, 1}, 1)
	require.Len(t, hits, 1)
	assert.Equal(t, "solo", hits[0].Word)
}
