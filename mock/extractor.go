package mock

import "github.com/gisti-refonte/refonte"

var _ refonte.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of refonte.ArticleExtractor.
type ArticleExtractor struct {
	ArticleFn func(html string, pageURL string) (*refonte.Item, error)
}

func (e *ArticleExtractor) Article(html string, pageURL string) (*refonte.Item, error) {
	return e.ArticleFn(html, pageURL)
}

var _ refonte.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of refonte.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
