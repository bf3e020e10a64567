// Package goquery implements structured-field extraction over the site's
// inconsistently marked-up SPIP pages using ordered fallback CSS locators.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gisti-refonte/refonte"
)

// Document wraps a parsed HTML page for field extraction.
type Document struct {
	doc *goquery.Document
}

// Parse parses raw HTML into a Document.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, refonte.Errorf(refonte.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// First tries each locator in order and returns the cleaned text of the
// first non-empty match. A higher-ranked locator always wins; lower-ranked
// locators are never consulted once one matches.
func (d *Document) First(locators []string) (string, bool) {
	for _, locator := range locators {
		sel := d.doc.Find(locator).First()
		if sel.Length() == 0 {
			continue
		}
		if text := refonte.CleanText(sel.Text()); text != "" {
			return text, true
		}
	}
	return "", false
}

// FirstHTML is like First but returns the raw outer HTML of the matched
// element, for fragments kept for potential re-rendering.
func (d *Document) FirstHTML(locators []string) (string, bool) {
	for _, locator := range locators {
		sel := d.doc.Find(locator).First()
		if sel.Length() == 0 {
			continue
		}
		if html, err := goquery.OuterHtml(sel); err == nil && strings.TrimSpace(html) != "" {
			return html, true
		}
	}
	return "", false
}

// All collects the cleaned text of every match across all locators,
// deduplicated while preserving first-seen order. Unlike First, it does not
// stop at the first matching locator.
func (d *Document) All(locators []string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, locator := range locators {
		d.doc.Find(locator).Each(func(_ int, sel *goquery.Selection) {
			text := refonte.CleanText(sel.Text())
			if text == "" || seen[text] {
				return
			}
			seen[text] = true
			values = append(values, text)
		})
	}
	return values
}

// Links extracts anchors matching the selector, resolving hrefs against
// baseURL into canonical absolute URLs. Non-HTTP links and links whose
// text is empty after cleaning keep document order; no deduplication is
// applied here (callers dedup by canonical URL).
func (d *Document) Links(selector string, baseURL string) ([]refonte.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, refonte.Errorf(refonte.EINVALID, "invalid base URL: %v", err)
	}

	var links []refonte.Link
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		links = append(links, refonte.Link{
			URL:   resolved,
			Title: refonte.CleanText(sel.Text()),
		})
	})
	return links, nil
}

// Match pairs a matched element's cleaned text with the cleaned text of its
// parent element, for trailing annotations like keyword counts "(12)".
type Match struct {
	Text   string
	Around string
}

// Matches returns the cleaned text of every element matching the selector
// together with its surrounding parent text, in document order.
func (d *Document) Matches(selector string) []Match {
	var matches []Match
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		text := refonte.CleanText(sel.Text())
		if text == "" {
			return
		}
		matches = append(matches, Match{
			Text:   text,
			Around: refonte.CleanText(sel.Parent().Text()),
		})
	})
	return matches
}

// resolveURL resolves a relative URL against a base URL.
// Fragments are stripped so that anchor variants of the same page share one
// canonical URL; anchor-only links resolving to the base page are dropped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
