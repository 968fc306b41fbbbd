package slog

import (
	"context"
	"log/slog"
	"time"

	gpuprice "github.com/becloudready/gpu-price"
)

// Ensure LoggingFetcher implements gpuprice.Fetcher.
var _ gpuprice.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of fetch outcomes.
type LoggingFetcher struct {
	next   gpuprice.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next gpuprice.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch failed",
			"url", url,
			"message", gpuprice.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return "", err
	}
	f.logger.Info("fetched page",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
