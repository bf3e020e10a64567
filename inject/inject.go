package inject

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gisti-refonte/refonte"
)

// Anchors of the redesigned page templates. Start/end markers are literal
// structural landmarks of the hand-written HTML; each pattern is expected
// to match at most once per page.
var (
	featuredAnchor = MustAnchor("featured-articles",
		`class="grid grid-3 reveal">\s*\n`,
		`</div>\s*</div>\s*</section>\s*\n\s*<!-- Dossiers actifs`)

	formationsMiniAnchor = MustAnchor("formations-mini",
		`class="flex flex-col gap-sm">\s*\n`,
		`</div>\s*</div>\s*</div>\s*</div>\s*</section>\s*\n\s*<!-- CTA Soutenir`)

	pubGridAnchor = MustAnchor("publications-grid",
		`data-filter-container[^>]*>\s*\n`,
		`</div>\s*\n\s*<!-- Pagination`)

	formationGridAnchor = MustAnchor("formations-grid",
		`class="grid-auto"[^>]*data-filter-container[^>]*>\s*\n`,
		`</div>\s*\n\s*</div>\s*\n\s*</section>`)

	// Older revisions of formations.html lack the grid-auto class.
	formationGridAltAnchor = MustAnchor("formations-grid-alt",
		`data-filter-container[^>]*>\s*\n`,
		`</div>\s*\n\s*</section>`)

	tagListAnchor = MustAnchor("article-tags",
		`class="tag-list">\s*\n`,
		`</div>\s*\n\s*</div>\s*\n\s*<!-- Related`)
)

// Single-span substitutions (titles, issue numbers, counters).
var (
	pdCoverNumRE     = regexp.MustCompile(`Plein Droit<br>n°\d+`)
	pdDernierRE      = regexp.MustCompile(`(Dernier numéro — )[^<]+`)
	pdPanelTitleRE   = regexp.MustCompile(`(<h3 class="h4 mt-sm" style="color:var\(--color-primary-dark\)">)[^<]+(</h3>)`)
	pubDetailTitleRE = regexp.MustCompile(`(<h1[^>]*class="pub-detail__title"[^>]*>)[^<]+(</h1>)`)
	pubDetailNumRE   = regexp.MustCompile(`(Plein Droit n°)\d+`)
	articleTitleRE   = regexp.MustCompile(`(?s)(<h1 class="article-header__title">)(.*?)(</h1>)`)
	dossierCountRE   = regexp.MustCompile(`\d+ dossiers thématiques`)
)

// Per-page record limits of the fixed templates.
const (
	featuredLimit      = 3
	miniLimit          = 4
	pubCardLimit       = 12
	formationCardLimit = 6
	tagLimit           = 10

	// richBodyMin is the minimum body length for the article showcased on
	// article.html.
	richBodyMin = 200
)

// Boilerplate titles never worth showcasing, compared lowercased.
var (
	featuredDenylist  = []string{"faire un don", "abonnez-vous", "nous contacter"}
	pubDenylist       = []string{"plein droit", "abonnez-vous", "faire un don", "nous contacter", "mentions légales"}
	formationDenylist = []string{"inscription individuelle", "formations intra-structures", "catalogue des formations du gisti"}
)

// Injector rewrites the site's HTML pages in place from the stored JSON
// collections. It never talks to the network or the page cache: the content
// directory is its only input.
type Injector struct {
	Store   refonte.ContentStore
	SiteDir string
	Logger  *slog.Logger
}

// Run injects every page. A missing page file, an absent anchor, or an
// empty collection degrades that page to a logged no-op; Run itself never
// fails.
func (in *Injector) Run() {
	pages := []struct {
		name      string
		transform func(string) string
	}{
		{"index.html", in.IndexPage},
		{"publications.html", in.PublicationsPage},
		{"publication-detail.html", in.PublicationDetailPage},
		{"formations.html", in.FormationsPage},
		{"article.html", in.ArticlePage},
		{"dossiers.html", in.DossiersPage},
	}
	for _, p := range pages {
		in.injectFile(p.name, p.transform)
	}
}

func (in *Injector) injectFile(name string, transform func(string) string) {
	path := filepath.Join(in.SiteDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		in.logger().Warn("skipping page", "page", name, "error", err)
		return
	}
	doc := string(data)
	out := transform(doc)
	if out == doc {
		in.logger().Info("no changes", "page", name)
		return
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		in.logger().Warn("write failed", "page", name, "error", err)
		return
	}
	in.logger().Info("injected", "page", name)
}

// IndexPage rewrites the homepage: featured article cards, the Plein Droit
// panel, and the upcoming-formations column.
func (in *Injector) IndexPage(doc string) string {
	if featured := in.featuredArticles(); len(featured) > 0 {
		if len(featured) > featuredLimit {
			featured = featured[:featuredLimit]
		}
		cards := make([]string, len(featured))
		for i, a := range featured {
			cards[i] = ArticleCard(a, i)
		}
		doc = in.apply(doc, featuredAnchor, strings.Join(cards, "\n\n")+"\n")
	}

	if issues := in.pleinDroitIssues(); len(issues) > 0 {
		doc, _ = Replace(doc, pdCoverNumRE, fmt.Sprintf("Plein Droit<br>n&deg;%d", latestIssueNum))
		doc, _ = Replace(doc, pdDernierRE, "${1}2025")
		doc, _ = Replace(doc, pdPanelTitleRE, "${1}"+Literal(esc(issues[0].Title))+"${2}")
	}

	if formations := in.formations(); len(formations) > 0 {
		if len(formations) > miniLimit {
			formations = formations[:miniLimit]
		}
		minis := make([]string, len(formations))
		for i, f := range formations {
			minis[i] = FormationMini(f)
		}
		doc = in.apply(doc, formationsMiniAnchor, strings.Join(minis, "\n\n")+"\n")
	}

	return doc
}

// PublicationsPage fills the publications grid with Plein Droit issue cards.
func (in *Injector) PublicationsPage(doc string) string {
	issues := in.pleinDroitIssues()
	if len(issues) == 0 {
		return doc
	}
	if len(issues) > pubCardLimit {
		issues = issues[:pubCardLimit]
	}
	cards := make([]string, len(issues))
	for i, issue := range issues {
		cards[i] = PubCard(issue, i)
	}
	return in.apply(doc, pubGridAnchor, strings.Join(cards, "\n\n")+"\n")
}

// PublicationDetailPage points the detail page at the latest issue.
func (in *Injector) PublicationDetailPage(doc string) string {
	issues := in.pleinDroitIssues()
	if len(issues) == 0 {
		return doc
	}
	doc, _ = Replace(doc, pubDetailTitleRE, "${1}"+Literal(esc(issues[0].Title))+"${2}")
	doc, _ = Replace(doc, pubDetailNumRE, fmt.Sprintf("${1}%d", latestIssueNum))
	return doc
}

// FormationsPage fills the catalog grid. The primary anchor targets the
// grid-auto container; older template revisions fall back to the bare
// filter container.
func (in *Injector) FormationsPage(doc string) string {
	formations := in.formations()
	if len(formations) == 0 {
		return doc
	}
	if len(formations) > formationCardLimit {
		formations = formations[:formationCardLimit]
	}
	cards := make([]string, len(formations))
	for i, f := range formations {
		cards[i] = FormationCard(f)
	}
	block := strings.Join(cards, "\n\n") + "\n"

	out, outcome := formationGridAnchor.Apply(doc, block)
	if outcome == OutcomeNoMatch {
		return in.apply(doc, formationGridAltAnchor, block)
	}
	if outcome == OutcomeMultiple {
		in.logger().Warn("anchor matched multiple times, rewrote first", "anchor", formationGridAnchor.Name)
	}
	return out
}

// ArticlePage showcases the richest stored article: its title in the header
// and its keywords as the tag list.
func (in *Injector) ArticlePage(doc string) string {
	articles, _ := in.Store.LoadItems(refonte.CollectionArticles)

	var best *refonte.Item
	for _, a := range articles {
		if len(a.BodyText) <= richBodyMin {
			continue
		}
		if best == nil || len(a.BodyText) > len(best.BodyText) {
			best = a
		}
	}
	if best == nil {
		return doc
	}

	doc, _ = Replace(doc, articleTitleRE, "${1}"+Literal(esc(best.Title))+"${3}")

	if len(best.Keywords) > 0 {
		keywords := best.Keywords
		if len(keywords) > tagLimit {
			keywords = keywords[:tagLimit]
		}
		tags := make([]string, len(keywords))
		for i, kw := range keywords {
			tags[i] = TagLink(kw)
		}
		doc = in.apply(doc, tagListAnchor, strings.Join(tags, "\n")+"\n")
	}

	return doc
}

// DossiersPage refreshes the dossier count in the page intro.
func (in *Injector) DossiersPage(doc string) string {
	dossiers, _ := in.Store.LoadItems(refonte.CollectionDossiers)
	count := 0
	for _, d := range dossiers {
		if utf8.RuneCountInString(d.Title) > 3 && d.Title != "Aider le Gisti" {
			count++
		}
	}
	if count == 0 {
		return doc
	}
	doc, _ = Replace(doc, dossierCountRE, fmt.Sprintf("%d dossiers thématiques", count))
	return doc
}

// featuredArticles selects homepage-worthy records: scraped articles first,
// homepage featured links as a fallback when no article qualifies.
func (in *Injector) featuredArticles() []*refonte.Item {
	articles, _ := in.Store.LoadItems(refonte.CollectionArticles)
	var featured []*refonte.Item
	for _, a := range articles {
		if keepTitle(a.Title, 15, featuredDenylist) {
			featured = append(featured, a)
		}
	}
	if len(featured) > 0 {
		return featured
	}

	hp, _ := in.Store.LoadHomepage()
	for _, link := range hp.FeaturedArticles {
		if keepTitle(link.Title, 15, featuredDenylist) {
			featured = append(featured, &refonte.Item{URL: link.URL, Title: link.Title})
		}
	}
	return featured
}

// pleinDroitIssues selects the Plein Droit records from the publications
// collection, newest first per scrape order.
func (in *Injector) pleinDroitIssues() []*refonte.Item {
	pubs, _ := in.Store.LoadItems(refonte.CollectionPublications)
	var issues []*refonte.Item
	for _, p := range pubs {
		if p.Type != "Plein Droit" {
			continue
		}
		if keepTitle(p.Title, 3, pubDenylist) {
			issues = append(issues, p)
		}
	}
	return issues
}

// formations selects the catalog-worthy formation records.
func (in *Injector) formations() []*refonte.Item {
	all, _ := in.Store.LoadItems(refonte.CollectionFormations)
	var kept []*refonte.Item
	for _, f := range all {
		if strings.HasPrefix(f.Title, "20") {
			continue
		}
		if keepTitle(f.Title, 10, formationDenylist) {
			kept = append(kept, f)
		}
	}
	return kept
}

func keepTitle(title string, minLen int, denylist []string) bool {
	if utf8.RuneCountInString(title) <= minLen {
		return false
	}
	lower := strings.ToLower(title)
	for _, deny := range denylist {
		if lower == deny {
			return false
		}
	}
	return true
}

func (in *Injector) apply(doc string, a Anchor, block string) string {
	out, outcome := a.Apply(doc, block)
	switch outcome {
	case OutcomeNoMatch:
		in.logger().Warn("anchor not found", "anchor", a.Name)
	case OutcomeMultiple:
		in.logger().Warn("anchor matched multiple times, rewrote first", "anchor", a.Name)
	}
	return out
}

func (in *Injector) logger() *slog.Logger {
	if in.Logger != nil {
		return in.Logger
	}
	return slog.Default()
}
