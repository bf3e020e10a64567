// Package fs provides file-based storage: the raw page cache and the
// JSON collection artifacts.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/gisti-refonte/refonte"
)

// Ensure CacheStore implements refonte.CacheStore at compile time.
var _ refonte.CacheStore = (*CacheStore)(nil)

// CacheStore stores one file per cached URL, named by a hash of the URL.
// Entries are created on first fetch and never expire.
type CacheStore struct {
	dir string
}

// NewCacheStore creates a CacheStore rooted at dir.
// The directory is created on demand by the first Put.
func NewCacheStore(dir string) *CacheStore {
	return &CacheStore{dir: dir}
}

// Path returns the cache file path for a URL.
func (s *CacheStore) Path(url string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%x.html", xxhash.Sum64String(url)))
}

// Get returns the cached body for a URL.
func (s *CacheStore) Get(url string) (string, error) {
	body, err := os.ReadFile(s.Path(url))
	if os.IsNotExist(err) {
		return "", refonte.Errorf(refonte.ENOTFOUND, "no cache entry for %q", url)
	}
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Put stores the body for a URL, creating the cache directory if needed.
func (s *CacheStore) Put(url string, body string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.Path(url), []byte(body), 0644)
}
