package refonte

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// CleanText normalizes scraped text: collapses runs of whitespace to a
// single space and strips leading/trailing whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// Truncate hard-cuts s to at most n characters (runes), with no attempt at
// word-boundary correctness.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
