// Package mock provides function-field mocks of the domain interfaces.
package mock

import (
	"context"

	"github.com/gisti-refonte/refonte"
)

var _ refonte.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of refonte.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
