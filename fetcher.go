package resworb

import "context"

// Fetcher retrieves the HTML of a web page.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
