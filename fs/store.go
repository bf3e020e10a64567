package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gisti-refonte/refonte"
)

// Ensure ContentStore implements refonte.ContentStore at compile time.
var _ refonte.ContentStore = (*ContentStore)(nil)

// ContentStore persists collections as indented JSON files under a content
// root: <name>/all.json per collection, homepage.json, keywords.json.
// Writes are whole-file rewrites; loads of missing or corrupt artifacts
// return empty values.
type ContentStore struct {
	dir string
}

// NewContentStore creates a ContentStore rooted at dir.
func NewContentStore(dir string) *ContentStore {
	return &ContentStore{dir: dir}
}

func (s *ContentStore) collectionPath(name string) string {
	return filepath.Join(s.dir, name, "all.json")
}

// SaveItems rewrites the collection artifact for the named type.
func (s *ContentStore) SaveItems(name string, items []*refonte.Item) error {
	if items == nil {
		items = []*refonte.Item{}
	}
	return s.writeJSON(s.collectionPath(name), items)
}

// LoadItems returns the stored collection, or an empty slice when the
// artifact is missing or malformed.
func (s *ContentStore) LoadItems(name string) ([]*refonte.Item, error) {
	data, err := os.ReadFile(s.collectionPath(name))
	if err != nil {
		return []*refonte.Item{}, nil
	}
	var items []*refonte.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return []*refonte.Item{}, nil
	}
	return items, nil
}

// SaveHomepage rewrites the homepage summary object.
func (s *ContentStore) SaveHomepage(hp *refonte.Homepage) error {
	return s.writeJSON(filepath.Join(s.dir, "homepage.json"), hp)
}

// LoadHomepage returns the stored summary, or a zero-valued one.
func (s *ContentStore) LoadHomepage() (*refonte.Homepage, error) {
	hp := &refonte.Homepage{}
	data, err := os.ReadFile(filepath.Join(s.dir, "homepage.json"))
	if err != nil {
		return hp, nil
	}
	if err := json.Unmarshal(data, hp); err != nil {
		return &refonte.Homepage{}, nil
	}
	return hp, nil
}

// SaveKeywords rewrites the aggregated keyword frequency map.
func (s *ContentStore) SaveKeywords(counts map[string]int) error {
	if counts == nil {
		counts = map[string]int{}
	}
	return s.writeJSON(filepath.Join(s.dir, "keywords.json"), counts)
}

// LoadKeywords returns the stored frequency map, or an empty one.
func (s *ContentStore) LoadKeywords() (map[string]int, error) {
	counts := map[string]int{}
	data, err := os.ReadFile(filepath.Join(s.dir, "keywords.json"))
	if err != nil {
		return counts, nil
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return map[string]int{}, nil
	}
	return counts, nil
}

// writeJSON marshals v with human-readable indentation and rewrites the
// file in one shot, creating parent directories on demand.
func (s *ContentStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
