// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Only the Spanish diacritics are folded; other accented letters pass through.
var diacritics = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
	"ñ", "n",
)

// Normalize lower-cases s, strips the Spanish diacritics and collapses
// whitespace runs into single spaces.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Compose first so "á" folds the same way as "á"
	s = norm.NFC.String(s)

	// Casers are stateful, build one per call
	s = cases.Lower(language.Und).String(s)
	s = diacritics.Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

// Equal reports whether a and b match after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
