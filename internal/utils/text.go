package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// searchNormalizer decomposes to NFD, strips combining marks and recomposes,
// so "João" and "joao" compare equal after lowercasing
var searchNormalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeSearchTerm lowercases a string and strips diacritics for
// accent-insensitive substring matching
func NormalizeSearchTerm(s string) string {
	normalized, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		// Fall back to plain lowercasing on malformed input
		return strings.ToLower(s)
	}
	return strings.ToLower(normalized)
}

// ContainsNormalized reports whether needle occurs in haystack under
// case- and diacritic-insensitive comparison
func ContainsNormalized(haystack, needle string) bool {
	return strings.Contains(NormalizeSearchTerm(haystack), NormalizeSearchTerm(needle))
}
