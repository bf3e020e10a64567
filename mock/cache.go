package mock

import "github.com/gisti-refonte/refonte"

var _ refonte.CacheStore = (*CacheStore)(nil)

// CacheStore is a mock implementation of refonte.CacheStore.
type CacheStore struct {
	GetFn func(url string) (string, error)
	PutFn func(url string, body string) error
}

func (c *CacheStore) Get(url string) (string, error) {
	return c.GetFn(url)
}

func (c *CacheStore) Put(url string, body string) error {
	return c.PutFn(url, body)
}
