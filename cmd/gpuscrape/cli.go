package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Parsers gpuprice.ParserRegistry
	Fetcher gpuprice.Fetcher
	Reader  *fs.Reader
	Writer  gpuprice.RowWriter
	Logger  *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape pricing for one provider"`
	All    AllCmd    `cmd:"" help:"Scrape pricing for every provider"`
}

// ScrapeCmd is the "scrape" subcommand: one provider, from a live URL or a
// saved page snapshot.
type ScrapeCmd struct {
	Provider string `arg:"" help:"Provider to scrape (coreweave, crusoe, denvr, lambda, nebius, runpod)"`
	File     string `xor:"source" required:"" help:"Path to a saved HTML file"`
	URL      string `xor:"source" required:"" help:"URL to scrape (live page)"`
	OutCSV   string `help:"Output CSV filename (default: <provider>_gpu_prices.csv)"`
	OutJSON  string `help:"Output JSON filename (default: <provider>_gpu_prices.json)"`
}

// AllCmd is the "all" subcommand: the standard six-provider batch.
type AllCmd struct {
	OutDir      string `default:"data" help:"Directory for per-provider artifacts"`
	Concurrency int    `short:"c" default:"6" help:"Concurrent provider limit"`
}
