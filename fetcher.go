package refonte

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations are expected to be cache-backed and rate-limited;
// a fetch failure is a skippable condition, never fatal to a run.
type Fetcher interface {
	// Fetch returns the raw response body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// CacheStore is content-addressed storage of raw fetched documents,
// keyed by source URL. Entries never expire; deletion is manual.
type CacheStore interface {
	// Get returns the cached body for a URL.
	// Returns ENOTFOUND if the URL has never been fetched.
	Get(url string) (string, error)

	// Put stores the body for a URL, creating the store on demand.
	Put(url string, body string) error
}

// ArticleExtractor assembles an Item from a raw article page.
type ArticleExtractor interface {
	// Article extracts the structured fields of one article page.
	// Returns nil (and no error) when the page has no usable title;
	// absence of any other field is silent degradation.
	Article(html string, pageURL string) (*Item, error)
}

// TextExtractor extracts the main plain text of a page, removing
// boilerplate. Used as the last-resort body locator when every
// structural selector misses.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}
