package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/becloudready/gpu-price/fs"
	"github.com/becloudready/gpu-price/goquery"
	gphttp "github.com/becloudready/gpu-price/http"
	gpslog "github.com/becloudready/gpu-price/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gpuscrape"),
		kong.Description("Scrape GPU rental pricing pages into normalized CSV/JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gpuscrape --help' to see available commands")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = gphttp.DefaultFetchTimeout
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	fetcher := gphttp.NewFetcher(gphttp.WithTimeout(timeout))
	defer fetcher.Close()

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Parsers: goquery.DefaultRegistry(),
		Fetcher: gpslog.NewLoggingFetcher(fetcher, logger),
		Reader:  fs.NewReader(),
		Writer:  fs.NewWriter(),
		Logger:  logger,
	}

	return kongCtx.Run(deps)
}
