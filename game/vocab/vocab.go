// Package vocab holds the fixed reference vocabulary: frequency-ranked
// entries, the static difficulty bands derived from that ranking, and the
// searchable index over the vocabulary embeddings.
package vocab

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Band sizes, fixed at load time. The first EasySize words by frequency
// rank form the easy band, the next MediumSize the medium band, and the
// remainder the hard band.
const (
	EasySize   = 1000
	MediumSize = 2000
)

// Band is a static difficulty partition of the vocabulary.
type Band int

const (
	Easy Band = iota
	Medium
	Hard
)

func (b Band) String() string {
	switch b {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseBand maps a difficulty string to its band; anything unrecognized
// falls back to Medium, mirroring the reference behavior.
func ParseBand(difficulty string) Band {
	switch strings.ToLower(difficulty) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Medium
	}
}

// Entry is one immutable vocabulary row.
type Entry struct {
	Word          string
	FrequencyRank int
	POS           []string
}

// Vocabulary is the append-free reference word list, ordered by frequency
// rank. Once built it is read-only and safe for concurrent readers.
type Vocabulary struct {
	entries []Entry
	byWord  map[string]int // index into entries
}

// New builds a vocabulary from the loaded entries, sorting by frequency rank.
func New(entries []Entry) *Vocabulary {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FrequencyRank < sorted[j].FrequencyRank
	})
	byWord := make(map[string]int, len(sorted))
	for i, e := range sorted {
		byWord[e.Word] = i
	}
	return &Vocabulary{entries: sorted, byWord: byWord}
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int { return len(v.entries) }

// Words returns all words in frequency-rank order.
func (v *Vocabulary) Words() []string {
	words := make([]string, len(v.entries))
	for i, e := range v.entries {
		words[i] = e.Word
	}
	return words
}

// Contains reports whether the (normalized) word is a reference word.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.byWord[word]
	return ok
}

// Categories returns the parts of speech of a word. It implements
// score.POSLookup; unknown words yield an empty set, never an error.
func (v *Vocabulary) Categories(word string) ([]string, error) {
	i, ok := v.byWord[Normalize(word)]
	if !ok {
		return nil, nil
	}
	return v.entries[i].POS, nil
}

// BandWords returns the words of one difficulty band. The slices share the
// vocabulary's backing array and must not be mutated.
func (v *Vocabulary) BandWords(b Band) []string {
	words := v.Words()
	easyEnd := min(EasySize, len(words))
	mediumEnd := min(EasySize+MediumSize, len(words))
	switch b {
	case Easy:
		return words[:easyEnd]
	case Hard:
		return words[mediumEnd:]
	default:
		return words[easyEnd:mediumEnd]
	}
}

// Normalize canonicalizes player input before vocabulary lookup: NFKC,
// trimmed, lowercased, control characters stripped.
func Normalize(word string) string {
	w := norm.NFKC.String(word)
	w = strings.TrimSpace(w)
	w = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, w)
	return strings.ToLower(w)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
