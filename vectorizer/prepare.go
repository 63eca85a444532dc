package vectorizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// prepareText joins vendor name and address with a single space, lowercases
// the result, and strips diacritics. OCR and encoding noise often drops
// accents, so "Champs-Élysées" and "Champs-Elysees" must prepare to the same
// text.
func prepareText(vendorName, address string) string {
	return stripDiacritics(strings.ToLower(vendorName + " " + address))
}

// stripDiacritics removes combining marks after NFD decomposition.
// A chained transformer is stateful, so one is built per call; prepared text
// can then be computed concurrently from a shared fitted vectorizer.
func stripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return stripped
}

// wordBoundedNGrams extracts overlapping character n-grams with lengths in
// [minN, maxN] from the prepared text.
//
// Boundary rule (fixed forever; embeddings from other rules are not
// comparable): n-grams never span whitespace. Each whitespace-delimited
// token is padded with one leading and one trailing space and n-grams are
// slid over the padded token. A token shorter than n contributes its padded
// form exactly once, truncated to its own length for the smallest n and not
// revisited for larger n.
func wordBoundedNGrams(text string, minN, maxN int) []string {
	var grams []string
	for _, word := range strings.Fields(text) {
		padded := []rune(" " + word + " ")
		wLen := len(padded)
		for n := minN; n <= maxN; n++ {
			end := n
			if end > wLen {
				end = wLen
			}
			grams = append(grams, string(padded[:end]))
			offset := 0
			for offset+n < wLen {
				offset++
				grams = append(grams, string(padded[offset:offset+n]))
			}
			if offset == 0 {
				// Token shorter than n; counting it once is enough.
				break
			}
		}
	}
	return grams
}
