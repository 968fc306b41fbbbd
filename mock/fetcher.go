// Package mock provides hand-rolled mock implementations of the domain
// interfaces for testing.
package mock

import (
	"context"

	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gpuprice.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
