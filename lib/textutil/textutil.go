package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and removes all of its whitespace,
// food names on the source site are inconsistently spaced.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// CleanNumber strips thousands separators and whitespace, non breaking
// spaces included, from a numeric cell.
func CleanNumber(text string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}
