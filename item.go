package refonte

// Item is one extracted content record: an article, a publication, a
// training course (formation), a thematic section (dossier/rubrique), or a
// practical resource. The JSON field names match the collection artifacts
// consumed by the injector, so they must not change.
//
// Every field is optional except URL and Title; items failing Validate are
// dropped by the record builder rather than surfaced as errors.
type Item struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Date     string   `json:"date,omitempty"`
	Rubrique string   `json:"rubrique,omitempty"`
	BodyText string   `json:"body_text,omitempty"`
	BodyHTML string   `json:"body_html,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	// Publication extras.
	Type string `json:"type,omitempty"`

	// Formation extras, pattern-extracted from free text.
	Format   string `json:"format,omitempty"`
	Price    string `json:"price,omitempty"`
	Duration string `json:"duration,omitempty"`

	// Dossier extras.
	Description  string `json:"description,omitempty"`
	ArticleCount int    `json:"article_count,omitempty"`
}

// Validate returns an error if the item is missing its required fields.
func (it *Item) Validate() error {
	if it.URL == "" {
		return Errorf(EINVALID, "item URL required")
	}
	if it.Title == "" {
		return Errorf(EINVALID, "item title required")
	}
	return nil
}

// Link is a bare URL/title pair, used by the homepage summary lists.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Homepage is the single-object summary of the site's front page.
type Homepage struct {
	Title            string `json:"title"`
	Tagline          string `json:"tagline"`
	FeaturedArticles []Link `json:"featured_articles"`
	NavigationLinks  []Link `json:"navigation_links"`
}

// Collection names. Each persists as <name>/all.json under the content root.
const (
	CollectionArticles     = "articles"
	CollectionDossiers     = "dossiers"
	CollectionPublications = "publications"
	CollectionFormations   = "formations"
	CollectionPratique     = "pratique"
)
