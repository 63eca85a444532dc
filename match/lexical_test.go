package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicalSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical strings", "Starbucks", "Starbucks", 1.0},
		{"case insensitive", "STARBUCKS", "starbucks", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "Starbucks", "", 0.0},
		{"single substitution", "Starbuckz", "Starbucks", 1.0 - 1.0/9.0},
		{"ocr digit swap", "1B9 The Gr0ve Dr", "189 The Grove Dr", 1.0 - 2.0/16.0},
		{"completely different", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, lexicalSimilarity(tt.a, tt.b), 0.0001)
		})
	}
}

func TestLexicalSimilarity_Symmetric(t *testing.T) {
	a, b := "Whole Foods Market", "Wh0le F00ds Mkt"
	assert.InDelta(t, lexicalSimilarity(a, b), lexicalSimilarity(b, a), 0.0001)
}
