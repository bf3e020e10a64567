package refonte

// ContentStore persists collections as JSON artifacts.
//
// Writes are whole-file rewrites (no incremental merge). Loads of missing
// or corrupt artifacts return empty values, never errors: the injector
// treats "no prior data" as an empty collection.
type ContentStore interface {
	// SaveItems rewrites the collection artifact for the named type.
	SaveItems(name string, items []*Item) error

	// LoadItems returns the stored collection, or an empty slice when the
	// artifact is missing or malformed.
	LoadItems(name string) ([]*Item, error)

	// SaveHomepage rewrites the homepage summary object.
	SaveHomepage(hp *Homepage) error

	// LoadHomepage returns the stored summary, or a zero-valued one.
	LoadHomepage() (*Homepage, error)

	// SaveKeywords rewrites the aggregated keyword frequency map.
	SaveKeywords(counts map[string]int) error

	// LoadKeywords returns the stored frequency map, or an empty one.
	LoadKeywords() (map[string]int, error)
}
