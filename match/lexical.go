package match

import (
	"strings"

	"github.com/xrash/smetrics"
)

// lexicalSimilarity returns an edit-distance similarity ratio in [0, 1]
// between two strings, case-insensitively. Two empty strings are identical
// by convention.
func lexicalSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	distance := smetrics.WagnerFischer(a, b, 1, 1, 1)
	longest := max(len(a), len(b))
	return 1.0 - float64(distance)/float64(longest)
}
