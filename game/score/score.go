// Package score implements the layered similarity scoring between a guess
// and the secret word: a semantic layer over word embeddings, a lexical
// layer over edit distance and a category layer over part-of-speech overlap.
package score

import (
	"context"
	"math"

	"github.com/lordvidex/errs/v2"

	"github.com/kodekulture/contexto-server/embedding"
)

// Layer weights. These are fixed constants of the design, not configuration.
const (
	SemanticWeight = 0.7
	LexicalWeight  = 0.2
	CategoryWeight = 0.1
)

// Breakdown carries the unrounded layer scores of one guess/secret pair.
// Ranking must use these raw values; Reasoning() produces the rounded
// display form.
type Breakdown struct {
	Semantic float64 `json:"semantic"`
	Lexical  float64 `json:"lexical"`
	Category float64 `json:"category"`
	Final    float64 `json:"final"`
}

// Reasoning is the display form of a Breakdown: layer scores rounded to 2
// decimal digits.
type Reasoning struct {
	Semantic float64 `json:"semantic"`
	Lexical  float64 `json:"lexical"`
	Category float64 `json:"category"`
}

func (b Breakdown) Reasoning() Reasoning {
	return Reasoning{
		Semantic: round(b.Semantic, 2),
		Lexical:  round(b.Lexical, 2),
		Category: round(b.Category, 2),
	}
}

// DisplayScore returns the final score rounded to 4 decimal digits.
func (b Breakdown) DisplayScore() float64 {
	return round(b.Final, 4)
}

// Explanation is one per-layer clause of the guess feedback.
type Explanation struct {
	Layer  string  `json:"layer"`
	Score  float64 `json:"score"`
	Detail string  `json:"detail"`
}

// Scorer combines the three similarity layers with fixed weights.
type Scorer struct {
	provider embedding.Provider
	matcher  *CategoryMatcher
}

func New(provider embedding.Provider, lookup POSLookup) *Scorer {
	return &Scorer{
		provider: provider,
		matcher:  NewCategoryMatcher(lookup),
	}
}

// Score computes the layered similarity of guess against secret.
// Either embedding may be passed precomputed; nil embeddings are fetched
// from the provider. A provider failure is fatal to the call: a partial
// score would silently corrupt every rank derived from it.
func (s *Scorer) Score(ctx context.Context, guess, secret string, guessEmb, secretEmb []float32) (Breakdown, error) {
	var err error
	if guessEmb == nil {
		if guessEmb, err = s.embed(ctx, guess); err != nil {
			return Breakdown{}, err
		}
	}
	if secretEmb == nil {
		if secretEmb, err = s.embed(ctx, secret); err != nil {
			return Breakdown{}, err
		}
	}

	semantic := Cosine(guessEmb, secretEmb)
	lexical := Lexical(guess, secret)
	category := s.matcher.Match(guess, secret)

	return Breakdown{
		Semantic: semantic,
		Lexical:  lexical,
		Category: category,
		Final:    semantic*SemanticWeight + lexical*LexicalWeight + category*CategoryWeight,
	}, nil
}

func (s *Scorer) embed(ctx context.Context, word string) ([]float32, error) {
	vecs, err := s.provider.Embed(ctx, []string{word})
	if err != nil {
		return nil, errs.WrapCode(err, errs.Unavailable, "embedding provider unavailable")
	}
	return vecs[0], nil
}

// Cosine returns the cosine similarity of two vectors, clamped to [0,1].
// Provider vectors are L2-normalized, so the dot product is the cosine;
// the norms are still computed to stay correct for raw vectors.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		fa, fb := float64(a[i]), float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// Message selects the single feedback line for a breakdown. Rules are
// checked in order; the first match wins.
func (b Breakdown) Message() string {
	switch {
	case b.Semantic > 0.8 && b.Category == 1.0:
		return "Very close in meaning and same word type! 🔥"
	case b.Semantic > 0.8:
		return "Semantically very close!"
	case b.Semantic > 0.5 && b.Lexical > 0.8:
		return "Similar spelling, somewhat related meaning"
	case b.Lexical > 0.8 && b.Semantic < 0.5:
		return "Similar spelling but different meaning"
	case b.Category == 1.0 && b.Semantic < 0.5:
		return "Same type of word, but different topic"
	case b.Semantic < 0.3:
		return "Pretty far off in meaning"
	default:
		return "Getting warmer..."
	}
}

// Explain produces the per-layer feedback clauses shown next to the score.
func (b Breakdown) Explain() []Explanation {
	return []Explanation{
		{Layer: "Meaning", Score: round(b.Semantic, 2), Detail: semanticDetail(b.Semantic)},
		{Layer: "Spelling", Score: round(b.Lexical, 2), Detail: lexicalDetail(b.Lexical)},
		{Layer: "Word Type", Score: round(b.Category, 2), Detail: categoryDetail(b.Category)},
	}
}

func semanticDetail(v float64) string {
	switch {
	case v > 0.7:
		return "very close in meaning"
	case v > 0.4:
		return "somewhat related in meaning"
	default:
		return "unrelated in meaning"
	}
}

func lexicalDetail(v float64) string {
	switch {
	case v > 0.7:
		return "spelled almost the same"
	case v > 0.4:
		return "some letters in common"
	default:
		return "spelled very differently"
	}
}

func categoryDetail(v float64) string {
	switch {
	case v == 1.0:
		return "same word type"
	case v > Neutral:
		return "overlapping word types"
	case v == Neutral:
		return "word type unknown"
	default:
		return "different word type"
	}
}

func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
