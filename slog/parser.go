// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"log/slog"
	"time"

	gpuprice "github.com/becloudready/gpu-price"
)

// Ensure LoggingParser implements gpuprice.Parser.
var _ gpuprice.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with structured logging of parse outcomes.
type LoggingParser struct {
	next   gpuprice.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next gpuprice.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Provider delegates to the wrapped parser.
func (p *LoggingParser) Provider() gpuprice.Provider {
	return p.next.Provider()
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse(html string) ([]gpuprice.Row, error) {
	begin := time.Now()
	rows, err := p.next.Parse(html)
	if err != nil {
		p.logger.Error("parse failed",
			"provider", p.next.Provider(),
			"code", gpuprice.ErrorCode(err),
			"message", gpuprice.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}
	p.logger.Info("parsed pricing page",
		"provider", p.next.Provider(),
		"rows", len(rows),
		"duration", time.Since(begin),
	)
	return rows, nil
}
