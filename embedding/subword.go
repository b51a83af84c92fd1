package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/lordvidex/errs/v2"
)

const (
	// DefaultDimension matches the MiniLM sentence-transformer family used
	// by the reference vocabulary pipeline.
	DefaultDimension = 384

	minNgram = 3
	maxNgram = 6
)

var (
	seedIndex = []byte("contexto-subword-idx-v1::")
	seedSign  = []byte("contexto-subword-sgn-v1::")
)

// Subword is a deterministic, pure-Go embedding provider using character
// n-gram hashing (FastText-style). Words sharing subword structure produce
// similar vectors, which is what the semantic layer and the hint index need
// from an offline model.
type Subword struct {
	dim int
}

// NewSubword creates a subword provider with the given output dimension.
func NewSubword(dim int) (*Subword, error) {
	if dim <= 0 {
		return nil, errs.B().Code(errs.InvalidArgument).Msg("invalid embedding dimension: " + strconv.Itoa(dim)).Err()
	}
	return &Subword{dim: dim}, nil
}

func (s *Subword) Dimension() int { return s.dim }

func (s *Subword) ModelID() string { return "subword-ngram-v1" }

// Embed returns one L2-normalized vector per word.
func (s *Subword) Embed(_ context.Context, words []string) ([][]float32, error) {
	out := make([][]float32, len(words))
	for i, w := range words {
		vec, err := s.embedOne(w)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (s *Subword) embedOne(word string) ([]float32, error) {
	tokens := tokenize(word)
	if len(tokens) == 0 {
		return nil, errs.B().Code(errs.InvalidArgument).Msg("cannot embed empty word").Err()
	}

	vec := make([]float32, s.dim)
	for _, tok := range tokens {
		s.addWordVector(vec, tok)
	}
	normalize(vec)
	return vec, nil
}

// addWordVector hashes the boundary-marked n-grams of a token into vec.
func (s *Subword) addWordVector(vec []float32, token string) {
	marked := "<" + token + ">"
	runes := []rune(marked)
	for n := minNgram; n <= maxNgram; n++ {
		if n > len(runes) {
			break
		}
		for i := 0; i+n <= len(runes); i++ {
			gram := string(runes[i : i+n])
			idx := hashWith(seedIndex, gram) % uint32(s.dim)
			sign := float32(1)
			if hashWith(seedSign, gram)&1 == 1 {
				sign = -1
			}
			vec[idx] += sign
		}
	}
}

func hashWith(seed []byte, s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(seed)
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func tokenize(word string) []string {
	return strings.FieldsFunc(strings.ToLower(word), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func normalize(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		vec[0] = 1
		return
	}
	inv := float32(1 / math.Sqrt(sumSq))
	for i := range vec {
		vec[i] *= inv
	}
}
