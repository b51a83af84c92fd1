package score

// Neutral is returned by the category layer when either word has no known
// parts of speech. Unknown words are not penalized.
const Neutral = 0.5

// POSLookup resolves the known parts of speech of a word.
type POSLookup interface {
	// Categories returns the set of possible parts of speech for the word.
	// An empty slice means the word is unknown.
	Categories(word string) ([]string, error)
}

// CategoryMatcher scores two words by the overlap of their grammatical
// categories.
type CategoryMatcher struct {
	lookup POSLookup
}

func NewCategoryMatcher(lookup POSLookup) *CategoryMatcher {
	return &CategoryMatcher{lookup: lookup}
}

// Match returns the Jaccard overlap ratio of the two words' parts of speech.
// Lookup failures and unknown words map to Neutral; Match never fails the
// caller.
func (m *CategoryMatcher) Match(a, b string) float64 {
	posA, err := m.lookup.Categories(a)
	if err != nil || len(posA) == 0 {
		return Neutral
	}
	posB, err := m.lookup.Categories(b)
	if err != nil || len(posB) == 0 {
		return Neutral
	}

	setA := make(map[string]struct{}, len(posA))
	for _, p := range posA {
		setA[p] = struct{}{}
	}
	setB := make(map[string]struct{}, len(posB))
	for _, p := range posB {
		setB[p] = struct{}{}
	}
	var inter int
	for p := range setB {
		if _, ok := setA[p]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
