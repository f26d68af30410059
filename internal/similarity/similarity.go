// Package similarity provides the string-distance primitive shared by
// merchant resolution and duplicate detection.
package similarity

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Score returns a normalized similarity in [0,1] between two strings.
// Both inputs are case-folded and trimmed before comparison. Equal strings
// score 1.0; otherwise the score is (maxLen - editDistance) / maxLen using
// unit-cost insert/delete/substitute edits. The function is pure and
// symmetric.
func Score(a, b string) float64 {
	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))

	if s1 == s2 {
		return 1.0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)

	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	if maxLen == 0 {
		return 1.0
	}

	distance := levenshtein.DistanceForStrings(r1, r2, levenshtein.DefaultOptionsWithSub)
	return float64(maxLen-distance) / float64(maxLen)
}
