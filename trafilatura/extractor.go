// Package trafilatura provides the last-resort body text extractor,
// used when no structural CSS locator matches a page.
package trafilatura

import (
	"strings"

	"github.com/gisti-refonte/refonte"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements refonte.TextExtractor at compile time.
var _ refonte.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main text content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns its main plain text with
// boilerplate (nav, footer, sidebar) removed.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", refonte.Errorf(refonte.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return result.ContentText, nil
}
