// Package http provides an HTTP implementation of resworb.Fetcher used by
// formatters that look up page details.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/resworb"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Fetcher implements resworb.Fetcher at compile time.
var _ resworb.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content from URLs using HTTP GET requests.
// Failed attempts are retried after each of the configured delays.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
	limiter *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the delays between attempts. An empty slice
// disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRateLimit limits requests to rps per host.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = NewHostLimiter(rps)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the content at rawURL, retrying failed attempts.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", resworb.Errorf(resworb.EINVALID, "invalid URL %q", rawURL)
	}

	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, u); err != nil {
				return "", err
			}
		}

		body, err := f.fetch(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
