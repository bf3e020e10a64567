package slog

import (
	"log/slog"

	"github.com/gisti-refonte/refonte"
)

// Ensure LoggingCacheStore implements refonte.CacheStore.
var _ refonte.CacheStore = (*LoggingCacheStore)(nil)

// LoggingCacheStore wraps a CacheStore with hit/miss logging at debug level.
type LoggingCacheStore struct {
	next   refonte.CacheStore
	logger *slog.Logger
}

// NewLoggingCacheStore creates a new LoggingCacheStore.
func NewLoggingCacheStore(next refonte.CacheStore, logger *slog.Logger) *LoggingCacheStore {
	return &LoggingCacheStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs the outcome.
func (c *LoggingCacheStore) Get(url string) (string, error) {
	body, err := c.next.Get(url)
	if err != nil {
		c.logger.Debug("cache miss", "url", url)
		return body, err
	}
	c.logger.Debug("cache hit", "url", url, "bytes", len(body))
	return body, nil
}

// Put delegates to the wrapped store.
func (c *LoggingCacheStore) Put(url string, body string) error {
	return c.next.Put(url, body)
}
