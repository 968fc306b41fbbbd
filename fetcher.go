package gpuprice

import "context"

// Fetcher retrieves raw page text from URLs.
// Transport failures (non-2xx status, timeout) surface with the original
// cause; they are never retried at this layer.
type Fetcher interface {
	// Fetch retrieves the document at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
