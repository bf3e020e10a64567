package goquery

import (
	"github.com/gisti-refonte/refonte"
)

// Per-field locator lists, ranked from the most specific SPIP markup to the
// most generic legacy fallback. The extractor returns the first non-empty
// match and degrades to "absent" when every locator misses.
var (
	TitleLocators       = []string{"h1.titre", ".titre-article", "h1.entry-title", "#contenu h1", "h1"}
	BodyLocators        = []string{".texte", ".article-texte", ".entry-content", "#contenu .texte"}
	DateLocators        = []string{".date", ".date-publication", "time", ".post-date"}
	RubriqueLocators    = []string{".rubrique a", ".fil-ariane a", "nav.breadcrumb a"}
	KeywordLocators     = []string{".mots-cles a", ".tags a", ".mot-cle a", ".groupe-mots a"}
	DescriptionLocators = []string{".texte p", ".descriptif", ".description"}
)

// bodyTextLimit bounds the stored plain-text excerpt; consumers re-truncate
// to their own display lengths.
const bodyTextLimit = 1000

// Ensure Extractor implements refonte.ArticleExtractor at compile time.
var _ refonte.ArticleExtractor = (*Extractor)(nil)

// Extractor assembles Items from raw article pages by applying the ordered
// locator lists per field. An optional fallback text extractor supplies the
// body when no structural locator matches.
type Extractor struct {
	fallback refonte.TextExtractor
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithFallback sets the last-resort body text extractor, consulted only
// when every CSS body locator misses.
func WithFallback(te refonte.TextExtractor) ExtractorOption {
	return func(e *Extractor) {
		e.fallback = te
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Article extracts the structured fields of one article page. Returns nil
// when the page has no usable title; every other missing field degrades
// silently to its zero value.
func (e *Extractor) Article(html string, pageURL string) (*refonte.Item, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}

	title, ok := doc.First(TitleLocators)
	if !ok {
		return nil, nil
	}

	item := &refonte.Item{
		URL:   pageURL,
		Title: title,
	}

	if body, ok := doc.First(BodyLocators); ok {
		item.BodyText = refonte.Truncate(body, bodyTextLimit)
	} else if e.fallback != nil {
		if text, err := e.fallback.ExtractText(html); err == nil {
			item.BodyText = refonte.Truncate(refonte.CleanText(text), bodyTextLimit)
		}
	}
	if fragment, ok := doc.FirstHTML(BodyLocators); ok {
		item.BodyHTML = fragment
	}

	if date, ok := doc.First(DateLocators); ok {
		item.Date = date
	}
	if rubrique, ok := doc.First(RubriqueLocators); ok {
		item.Rubrique = rubrique
	}
	item.Keywords = doc.All(KeywordLocators)

	return item, nil
}
