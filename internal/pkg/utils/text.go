package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldName lowercases s, strips diacritics and collapses runs of whitespace,
// so "  PÉREZ,  Juan " and "perez, juan" fold to the same value.
func FoldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)
	return strings.Join(strings.Fields(folded), " ")
}

// NameWords folds s and splits it into alphanumeric runs.
func NameWords(s string) []string {
	return strings.FieldsFunc(FoldName(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Slug folds s and joins its alphanumeric runs with '-'.
func Slug(s string) string {
	return strings.Join(NameWords(s), "-")
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayName title-cases a raw imported name for reports.
func DisplayName(s string) string {
	return cases.Title(language.Spanish).String(strings.Join(strings.Fields(s), " "))
}
