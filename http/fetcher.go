// Package http provides the HTTP-based implementation of refonte.Fetcher:
// a cache-backed, rate-limited GET client for the fixed origin.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gisti-refonte/refonte"
	"golang.org/x/time/rate"
)

const (
	// DefaultFetchTimeout is the default timeout for HTTP requests.
	DefaultFetchTimeout = 45 * time.Second

	// DefaultInterval is the default minimum delay between outbound
	// network requests, process-wide.
	DefaultInterval = 2 * time.Second

	// DefaultUserAgent identifies the scraper to the origin.
	DefaultUserAgent = "GISTI-Redesign-Scraper/2.0 (educational prototype)"
)

// Ensure Fetcher implements refonte.Fetcher at compile time.
var _ refonte.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML over HTTP. Before any network call it consults
// the cache store; on a miss it waits for the rate limiter, issues a single
// GET, and writes the body back to the cache. Cache hits never touch the
// limiter, so the "last request" marker only advances on real network calls.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	cache     refonte.CacheStore
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithInterval sets the minimum delay between outbound requests.
// Defaults to DefaultInterval if not specified.
func WithInterval(d time.Duration) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithUserAgent sets the identifying user-agent string.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithCache sets the cache store consulted before network calls.
// Without a cache every Fetch goes to the network.
func WithCache(cache refonte.CacheStore) Option {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

// NewFetcher creates a new rate-limited Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		limiter:   rate.NewLimiter(rate.Every(DefaultInterval), 1),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch returns the body for the URL, from cache when possible.
// Network failures (transport errors, non-2xx statuses) return an
// EUNAVAILABLE error; callers treat that as "skip this URL".
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.cache != nil {
		if body, err := f.cache.Get(url); err == nil {
			return body, nil
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", refonte.Errorf(refonte.EINVALID, "invalid request for %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", refonte.Errorf(refonte.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", refonte.Errorf(refonte.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", refonte.Errorf(refonte.EUNAVAILABLE, "read %s: %v", url, err)
	}

	if f.cache != nil {
		if err := f.cache.Put(url, string(body)); err != nil {
			return "", err
		}
	}

	return string(body), nil
}
