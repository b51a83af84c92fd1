package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	testcases := []struct {
		a, b     string
		expected int
		name     string
	}{
		{"", "", 0, "both empty"},
		{"cat", "", 3, "second empty"},
		{"", "dog", 3, "first empty"},
		{"cat", "cat", 0, "equal words"},
		{"cat", "cats", 1, "one insertion"},
		{"cat", "bat", 1, "one substitution"},
		{"kitten", "sitting", 3, "classic pair"},
	}
	for _, tt := range testcases {
		t.Run(tt.name, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestLexical(t *testing.T) {
	testcases := []struct {
		a, b     string
		expected float64
		name     string
	}{
		{"", "", 1.0, "both empty is a perfect match"},
		{"dog", "dog", 1.0, "identical words"},
		{"dog", "fog", 1.0 - 1.0/3.0, "one of three letters differs"},
		{"abc", "xyz", 0.0, "nothing in common"},
		{"ab", "xyzw", 0.0, "distance equals longer length"},
	}
	for _, tt := range testcases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Lexical(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLexicalSymmetry(t *testing.T) {
	pairs := [][2]string{{"puppy", "dog"}, {"car", "cart"}, {"", "word"}}
	for _, p := range pairs {
		assert.Equal(t, Lexical(p[0], p[1]), Lexical(p[1], p[0]))
	}
}

func TestLexicalRange(t *testing.T) {
	words := []string{"", "a", "dog", "telescope", "internationalization"}
	for _, a := range words {
		for _, b := range words {
			v := Lexical(a, b)
			if v < 0 || v > 1 {
				t.Errorf("Lexical(%q, %q) = %v out of [0,1]", a, b, v)
			}
		}
	}
}
