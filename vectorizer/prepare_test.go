package vectorizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepareText(t *testing.T) {
	tests := []struct {
		name    string
		vendor  string
		address string
		want    string
	}{
		{
			name:    "lowercases and joins with one space",
			vendor:  "Apple Store",
			address: "189 The Grove Dr",
			want:    "apple store 189 the grove dr",
		},
		{
			name:    "strips diacritics",
			vendor:  "Sephora",
			address: "70 Avenue des Champs-Élysées",
			want:    "sephora 70 avenue des champs-elysees",
		},
		{
			name:    "german umlauts lose their marks",
			vendor:  "Müller",
			address: "Königstraße 1",
			want:    "muller konigstraße 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prepareText(tt.vendor, tt.address))
		})
	}
}

func TestWordBoundedNGrams(t *testing.T) {
	t.Run("n-grams never span whitespace", func(t *testing.T) {
		grams := wordBoundedNGrams("ab cd", 3, 3)
		for _, g := range grams {
			trimmed := strings.Trim(g, " ")
			assert.NotContains(t, trimmed, " ", "gram %q crosses a word boundary", g)
		}
	})

	t.Run("tokens are padded with single spaces", func(t *testing.T) {
		grams := wordBoundedNGrams("abc", 3, 3)
		assert.Equal(t, []string{" ab", "abc", "bc "}, grams)
	})

	t.Run("short token contributes its padded form once", func(t *testing.T) {
		grams := wordBoundedNGrams("ab", 3, 5)
		assert.Equal(t, []string{" ab", "ab ", " ab "}, grams)
	})

	t.Run("range covers all lengths", func(t *testing.T) {
		grams := wordBoundedNGrams("abcd", 3, 5)
		assert.Contains(t, grams, "abc")
		assert.Contains(t, grams, "abcd")
		assert.Contains(t, grams, " abcd")
		assert.Contains(t, grams, "abcd ")
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Empty(t, wordBoundedNGrams("   ", 3, 5))
	})
}
