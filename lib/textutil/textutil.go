package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name, trims it and collapses runs of whitespace
// into a single space so "  American   League" and "american league"
// compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	return whitespaceRegex.ReplaceAllString(name, " ")
}
