// Package inject splices stored content records into the redesigned static
// HTML pages. Injection is constrained string surgery, not DOM rewriting:
// each replaceable region is delimited by a start/end marker pair, and only
// the interior of the region ever changes, so the operation can be re-run
// on an already-injected document.
package inject

import (
	"regexp"
	"strings"
)

// Outcome reports what Apply did to the document.
type Outcome int

const (
	// OutcomeNoMatch means the anchor was absent and the document was
	// returned unchanged.
	OutcomeNoMatch Outcome = iota

	// OutcomeApplied means the anchor matched exactly once and its interior
	// was rewritten.
	OutcomeApplied

	// OutcomeMultiple means the anchor matched more than once; the first
	// match was rewritten and the rest left alone.
	OutcomeMultiple
)

// Anchor is a named replaceable region inside a target document, delimited
// by a start and an end marker pattern. The markers themselves are
// preserved byte-identical across Apply calls.
type Anchor struct {
	Name string
	re   *regexp.Regexp
}

// MustAnchor compiles the marker pair into a single non-greedy,
// multiline-spanning pattern. Panics on an invalid pattern, so anchors are
// declared as package-level vars.
func MustAnchor(name, start, end string) Anchor {
	return Anchor{
		Name: name,
		re:   regexp.MustCompile(`(?s)(` + start + `)(.*?)(` + end + `)`),
	}
}

// Apply replaces the interior of the anchor region with block. A document
// without the anchor is returned unchanged; when the anchor matches more
// than once only the first region is rewritten, and the caller is told via
// OutcomeMultiple so it can warn.
func (a Anchor) Apply(doc, block string) (string, Outcome) {
	matches := a.re.FindAllStringSubmatchIndex(doc, 2)
	if len(matches) == 0 {
		return doc, OutcomeNoMatch
	}
	m := matches[0]
	// m[2:4] is the start marker, m[6:8] the end marker.
	out := doc[:m[3]] + block + doc[m[6]:]
	if len(matches) > 1 {
		return out, OutcomeMultiple
	}
	return out, OutcomeApplied
}

// Replace substitutes the first match of re in doc with the expansion of
// repl (a ${n} template). It reports whether anything matched; a
// non-matching pattern leaves the document unchanged.
//
// Sourced text spliced into repl must pass through Literal first, or any
// "$" it carries is expanded as a capture reference.
func Replace(doc string, re *regexp.Regexp, repl string) (string, bool) {
	m := re.FindStringSubmatchIndex(doc)
	if m == nil {
		return doc, false
	}
	expanded := re.ExpandString(nil, repl, doc, m)
	return doc[:m[0]] + string(expanded) + doc[m[1]:], true
}

// Literal quotes s for use inside a Replace template, so that "$" in
// sourced text stays a dollar sign instead of becoming a capture reference.
func Literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
