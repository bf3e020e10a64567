package scrape

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gisti-refonte/refonte"
)

// placeholderTitle is the generic title SPIP emits for untitled articles.
const placeholderTitle = "Sans titre"

// DatestampTitle matches titles that are pure year-prefixed date stamps
// (e.g., "2026" listing headers in the formations section).
var DatestampTitle = regexp.MustCompile(`^20\d{2}`)

// Filter holds the per-collection quality rules applied before persisting.
type Filter struct {
	// MinTitle is the minimum title length in runes, exclusive: a title
	// must be strictly longer to survive.
	MinTitle int

	// Denylist drops known boilerplate/navigation titles, compared
	// case-insensitively.
	Denylist []string

	// Exclude drops titles matching the pattern.
	Exclude *regexp.Regexp
}

// Keep reports whether an item passes the quality rules.
func (f Filter) Keep(it *refonte.Item) bool {
	if it == nil || it.Validate() != nil {
		return false
	}
	if it.Title == placeholderTitle {
		return false
	}
	if utf8.RuneCountInString(it.Title) <= f.MinTitle {
		return false
	}
	lower := strings.ToLower(it.Title)
	for _, deny := range f.Denylist {
		if lower == deny {
			return false
		}
	}
	if f.Exclude != nil && f.Exclude.MatchString(it.Title) {
		return false
	}
	return true
}

// Build applies the filter and deduplicates by canonical URL, first
// occurrence winning. Source traversal order is preserved; nothing is
// sorted.
func Build(items []*refonte.Item, f Filter) []*refonte.Item {
	seen := make(map[string]bool)
	out := make([]*refonte.Item, 0, len(items))
	for _, it := range items {
		if !f.Keep(it) {
			continue
		}
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		out = append(out, it)
	}
	return out
}

// Pattern sub-extraction over free-text bodies. Absence is silent: the
// helpers return "" and callers omit the field.
var (
	longDateRE = regexp.MustCompile(`(?i)\d{1,2}\s+(?:janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+\d{4}`)
	priceRE    = regexp.MustCompile(`\d+\s*€`)
	durationRE = regexp.MustCompile(`(?i)\d+\s*jours?`)
	countRE    = regexp.MustCompile(`\((\d+)\)`)
)

// FindDate returns the first French long-form date in text, or "".
func FindDate(text string) string {
	return longDateRE.FindString(text)
}

// FindPrice returns the first euro amount in text, or "".
func FindPrice(text string) string {
	return priceRE.FindString(text)
}

// FindDuration returns the first day-count duration in text, or "".
func FindDuration(text string) string {
	return durationRE.FindString(text)
}

// FindCount parses a trailing "(N)" occurrence count, returning 0 when
// absent.
func FindCount(text string) int {
	m := countRE.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n := 0
	for _, r := range m[1] {
		n = n*10 + int(r-'0')
	}
	return n
}

// DetectFormat classifies a formation as distanciel or presentiel from its
// title.
func DetectFormat(title string) string {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "webinaire") ||
		strings.Contains(lower, "distanciel") ||
		strings.Contains(lower, "en ligne") {
		return "distanciel"
	}
	return "presentiel"
}
