// Package scrape orchestrates the harvest: it walks the fixed entry pages
// of the origin, extracts structured records, filters and deduplicates
// them, and persists one JSON collection per content type.
package scrape

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gisti-refonte/refonte"
	"github.com/gisti-refonte/refonte/goquery"
)

// Entry paths into the SPIP site. Rubrique numbers are stable section IDs
// of the current gisti.org structure.
var (
	articleEntryPaths   = []string{"/spip.php?rubrique3", "/spip.php?rubrique19", "/spip.php?rubrique77", "/"}
	dossierEntryPaths   = []string{"/spip.php?rubrique77", "/spip.php?rubrique3", "/"}
	formationEntryPaths = []string{"/formations", "/spip.php?rubrique20", "/spip.php?page=formations"}
	pratiqueEntryPaths  = []string{"/spip.php?rubrique3", "/spip.php?rubrique1", "/spip.php?article136"}
	motsEntryPaths      = []string{"/spip.php?page=mots", "/spip.php?rubrique50"}
)

const (
	// articlesPerSection caps how many new articles each entry page
	// contributes, to keep runs bounded.
	articlesPerSection = 8

	// dossierEnrichLimit and formationEnrichLimit bound the expensive
	// per-item detail fetches.
	dossierEnrichLimit   = 19
	formationEnrichLimit = 13

	featuredTitleLimit = 200
	descriptionLimit   = 300
	formationDescLimit = 400
)

// Scraper runs the fetch-and-extract pipeline. Execution is sequential:
// one fetch completes (or fails) before the next begins, and each phase
// rewrites its collection wholesale at the end.
type Scraper struct {
	BaseURL  string
	Fetcher  refonte.Fetcher
	Articles refonte.ArticleExtractor
	Store    refonte.ContentStore
	Logger   *slog.Logger
}

// Summary holds per-collection record counts for one run.
type Summary struct {
	Featured     int
	Articles     int
	Dossiers     int
	Publications int
	Formations   int
	Pratique     int
	Keywords     int
}

// Run executes every scrape phase in order. A failing phase is logged and
// skipped; no phase failure aborts the run.
func (s *Scraper) Run(ctx context.Context) Summary {
	var sum Summary

	if hp, err := s.Homepage(ctx); err != nil {
		s.logger().Warn("homepage phase failed", "error", err)
	} else {
		sum.Featured = len(hp.FeaturedArticles)
	}

	phases := []struct {
		name string
		fn   func(context.Context) ([]*refonte.Item, error)
		out  *int
	}{
		{refonte.CollectionArticles, s.ScrapeArticles, &sum.Articles},
		{refonte.CollectionDossiers, s.ScrapeDossiers, &sum.Dossiers},
		{refonte.CollectionPublications, s.ScrapePublications, &sum.Publications},
		{refonte.CollectionFormations, s.ScrapeFormations, &sum.Formations},
		{refonte.CollectionPratique, s.ScrapePratique, &sum.Pratique},
	}
	for _, phase := range phases {
		items, err := phase.fn(ctx)
		if err != nil {
			s.logger().Warn("phase failed", "collection", phase.name, "error", err)
			continue
		}
		*phase.out = len(items)
	}

	counts, err := s.BuildKeywords(ctx)
	if err != nil {
		s.logger().Warn("keywords phase failed", "error", err)
	} else {
		sum.Keywords = len(counts)
	}

	return sum
}

// Homepage scrapes the front page for its title, featured article links,
// and navigation links, and persists the summary object.
func (s *Scraper) Homepage(ctx context.Context) (*refonte.Homepage, error) {
	s.logger().Info("scraping homepage")

	html, err := s.Fetcher.Fetch(ctx, s.BaseURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.Parse(html)
	if err != nil {
		return nil, err
	}

	hp := &refonte.Homepage{
		FeaturedArticles: []refonte.Link{},
		NavigationLinks:  []refonte.Link{},
	}
	if title, ok := doc.First([]string{"h1", ".site-title", "#logo"}); ok {
		hp.Title = title
	}

	seen := make(map[string]bool)
	links, err := doc.Links("#contenu a, .une a, .articles a, main a", s.BaseURL)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if utf8.RuneCountInString(link.Title) <= 5 || !strings.Contains(link.URL, "article") {
			continue
		}
		if seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		hp.FeaturedArticles = append(hp.FeaturedArticles, refonte.Link{
			URL:   link.URL,
			Title: refonte.Truncate(link.Title, featuredTitleLimit),
		})
	}

	nav, err := doc.Links("nav a, .menu a, #nav a", s.BaseURL)
	if err != nil {
		return nil, err
	}
	for _, link := range nav {
		if link.Title == "" {
			continue
		}
		hp.NavigationLinks = append(hp.NavigationLinks, link)
	}

	if err := s.Store.SaveHomepage(hp); err != nil {
		return nil, err
	}
	return hp, nil
}

// ScrapeArticles walks the article entry pages, scrapes up to
// articlesPerSection new articles per page, and persists the deduplicated
// collection.
func (s *Scraper) ScrapeArticles(ctx context.Context) ([]*refonte.Item, error) {
	s.logger().Info("scraping articles")

	seen := make(map[string]bool)
	var raw []*refonte.Item

	for _, path := range articleEntryPaths {
		doc, pageURL, ok := s.entryPage(ctx, path)
		if !ok {
			continue
		}
		links, err := doc.Links("a[href*='article']", pageURL)
		if err != nil {
			continue
		}

		fetched := 0
		for _, link := range links {
			if seen[link.URL] {
				continue
			}
			seen[link.URL] = true
			if fetched >= articlesPerSection {
				continue
			}
			fetched++

			if item := s.articlePage(ctx, link.URL); item != nil {
				raw = append(raw, item)
			}
		}
	}

	items := Build(raw, Filter{})
	if err := s.Store.SaveItems(refonte.CollectionArticles, items); err != nil {
		return nil, err
	}
	return items, nil
}

// articlePage fetches and extracts a single article; failures are logged
// and reported as nil so one bad page never aborts the batch.
func (s *Scraper) articlePage(ctx context.Context, url string) *refonte.Item {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger().Warn("skipping article", "url", url, "error", err)
		return nil
	}
	item, err := s.Articles.Article(html, url)
	if err != nil {
		s.logger().Warn("extraction failed", "url", url, "error", err)
		return nil
	}
	return item
}

// ScrapeDossiers collects thematic rubrique links and enriches the first
// few with an article count and a short description.
func (s *Scraper) ScrapeDossiers(ctx context.Context) ([]*refonte.Item, error) {
	s.logger().Info("scraping dossiers")

	seen := make(map[string]bool)
	var found []refonte.Link

	for _, path := range dossierEntryPaths {
		doc, pageURL, ok := s.entryPage(ctx, path)
		if !ok {
			continue
		}
		// Fragment-bearing rubrique hrefs are in-page anchors (pagination,
		// forum jumps), not dossiers; exclude them before canonicalization
		// would strip the fragment.
		links, err := doc.Links("a[href*='rubrique']:not([href*='#'])", pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			if utf8.RuneCountInString(link.Title) < 3 {
				continue
			}
			if seen[link.URL] {
				continue
			}
			seen[link.URL] = true
			found = append(found, link)
		}
	}

	if len(found) > dossierEnrichLimit {
		found = found[:dossierEnrichLimit]
	}

	items := make([]*refonte.Item, 0, len(found))
	for _, d := range found {
		it := &refonte.Item{URL: d.URL, Title: d.Title}
		if html, err := s.Fetcher.Fetch(ctx, d.URL); err == nil {
			if doc, err := goquery.Parse(html); err == nil {
				if links, err := doc.Links("a[href*='article']", d.URL); err == nil {
					distinct := make(map[string]bool)
					for _, link := range links {
						distinct[link.URL] = true
					}
					it.ArticleCount = len(distinct)
				}
				if desc, ok := doc.First(goquery.DescriptionLocators); ok {
					it.Description = refonte.Truncate(desc, descriptionLimit)
				}
			}
		}
		items = append(items, it)
	}

	if err := s.Store.SaveItems(refonte.CollectionDossiers, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ScrapePublications harvests the publications catalog: the Plein Droit
// listing, the notes pratiques, and the general publications section.
func (s *Scraper) ScrapePublications(ctx context.Context) ([]*refonte.Item, error) {
	s.logger().Info("scraping publications")

	var raw []*refonte.Item

	// Plein Droit listing: every link qualifies, typed by title or URL.
	if doc, pageURL, ok := s.entryPage(ctx, "/spip.php?rubrique38"); ok {
		if links, err := doc.Links("a", pageURL); err == nil {
			for _, link := range links {
				if utf8.RuneCountInString(link.Title) <= 3 {
					continue
				}
				pubType := "Publication"
				if strings.Contains(strings.ToLower(link.Title), "plein") ||
					strings.Contains(link.URL, "rubrique38") {
					pubType = "Plein Droit"
				}
				raw = append(raw, &refonte.Item{URL: link.URL, Title: link.Title, Type: pubType})
			}
		}
	}

	typed := []struct {
		path    string
		pubType string
	}{
		{"/spip.php?rubrique47", "Note pratique"},
		{"/spip.php?rubrique19", "Publication"},
	}
	for _, section := range typed {
		doc, pageURL, ok := s.entryPage(ctx, section.path)
		if !ok {
			continue
		}
		links, err := doc.Links("a[href*='article']", pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			if utf8.RuneCountInString(link.Title) <= 5 {
				continue
			}
			raw = append(raw, &refonte.Item{URL: link.URL, Title: link.Title, Type: section.pubType})
		}
	}

	items := Build(raw, Filter{MinTitle: 3})
	if err := s.Store.SaveItems(refonte.CollectionPublications, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ScrapeFormations harvests the training catalog and enriches the first
// few entries with description, date, price and duration extracted from
// the detail page text.
func (s *Scraper) ScrapeFormations(ctx context.Context) ([]*refonte.Item, error) {
	s.logger().Info("scraping formations")

	seen := make(map[string]bool)
	var items []*refonte.Item

	for _, path := range formationEntryPaths {
		doc, pageURL, ok := s.entryPage(ctx, path)
		if !ok {
			continue
		}
		links, err := doc.Links("a", pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			if !strings.Contains(link.URL, "article") {
				continue
			}
			if utf8.RuneCountInString(link.Title) <= 10 {
				continue
			}
			if DatestampTitle.MatchString(link.Title) {
				continue
			}
			if seen[link.URL] {
				continue
			}
			seen[link.URL] = true
			items = append(items, &refonte.Item{
				URL:    link.URL,
				Title:  link.Title,
				Format: DetectFormat(link.Title),
			})
		}
	}

	for i, it := range items {
		if i >= formationEnrichLimit {
			break
		}
		html, err := s.Fetcher.Fetch(ctx, it.URL)
		if err != nil {
			continue
		}
		doc, err := goquery.Parse(html)
		if err != nil {
			continue
		}
		text, ok := doc.First([]string{".texte", ".article-texte"})
		if !ok {
			continue
		}
		it.Description = refonte.Truncate(text, formationDescLimit)
		it.Date = FindDate(text)
		it.Price = FindPrice(text)
		it.Duration = FindDuration(text)
	}

	if err := s.Store.SaveItems(refonte.CollectionFormations, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ScrapePratique collects practical resources (modèles de recours, guides).
func (s *Scraper) ScrapePratique(ctx context.Context) ([]*refonte.Item, error) {
	s.logger().Info("scraping practical resources")

	var raw []*refonte.Item
	for _, path := range pratiqueEntryPaths {
		doc, pageURL, ok := s.entryPage(ctx, path)
		if !ok {
			continue
		}
		links, err := doc.Links("a", pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			if utf8.RuneCountInString(link.Title) <= 5 {
				continue
			}
			raw = append(raw, &refonte.Item{URL: link.URL, Title: link.Title})
		}
	}

	items := Build(raw, Filter{MinTitle: 5})
	if err := s.Store.SaveItems(refonte.CollectionPratique, items); err != nil {
		return nil, err
	}
	return items, nil
}

// BuildKeywords aggregates keyword frequencies from the stored article
// collection, merged (max wins) with the counts advertised on the site's
// keyword index pages.
func (s *Scraper) BuildKeywords(ctx context.Context) (map[string]int, error) {
	s.logger().Info("building keywords")

	counts := make(map[string]int)

	articles, err := s.Store.LoadItems(refonte.CollectionArticles)
	if err == nil {
		for _, a := range articles {
			for _, kw := range a.Keywords {
				kw = strings.TrimSpace(kw)
				if kw != "" {
					counts[kw]++
				}
			}
		}
	}

	for _, path := range motsEntryPaths {
		doc, _, ok := s.entryPage(ctx, path)
		if !ok {
			continue
		}
		for _, m := range doc.Matches("a[href*='mot'], a[href*='keyword']") {
			n := utf8.RuneCountInString(m.Text)
			if n < 2 || n >= 80 {
				continue
			}
			// The advertised count "(N)" trails the link text.
			after := m.Around
			if i := strings.Index(after, m.Text); i >= 0 {
				after = after[i+len(m.Text):]
			}
			count := FindCount(after)
			if count == 0 {
				count = 1
			}
			if count > counts[m.Text] {
				counts[m.Text] = count
			}
		}
	}

	if err := s.Store.SaveKeywords(counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// entryPage fetches and parses one entry path; failures are logged and
// reported as a skip.
func (s *Scraper) entryPage(ctx context.Context, path string) (*goquery.Document, string, bool) {
	pageURL := s.abs(path)
	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.logger().Warn("skipping entry page", "url", pageURL, "error", err)
		return nil, "", false
	}
	doc, err := goquery.Parse(html)
	if err != nil {
		s.logger().Warn("unparseable entry page", "url", pageURL, "error", err)
		return nil, "", false
	}
	return doc, pageURL, true
}

func (s *Scraper) abs(path string) string {
	if path == "/" {
		return s.BaseURL
	}
	return strings.TrimRight(s.BaseURL, "/") + path
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
