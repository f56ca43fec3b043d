package http

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces requests to the same host. Article pages from one
// publisher share a bucket whatever their path, scheme or port.
type HostLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter returns a limiter allowing rps requests per second to
// each host, with no burst.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		rps:     rps,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to u's host may be sent, or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, u *url.URL) error {
	return l.bucket(hostKey(u)).Wait(ctx)
}

func (l *HostLimiter) bucket(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[host]
	if !ok {
		b = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.buckets[host] = b
	}
	return b
}

// hostKey is the lower-cased host name without the port.
func hostKey(u *url.URL) string {
	return strings.ToLower(u.Hostname())
}
