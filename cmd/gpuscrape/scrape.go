package main

import (
	"fmt"

	gpuprice "github.com/becloudready/gpu-price"
	gpslog "github.com/becloudready/gpu-price/slog"
)

// Run executes the scrape command for a single provider.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	parser := deps.Parsers.Get(gpuprice.Provider(c.Provider))
	if parser == nil {
		return fmt.Errorf("unknown provider %q (known: %v)", c.Provider, deps.Parsers.List())
	}
	logged := gpslog.NewLoggingParser(parser, deps.Logger)

	var html string
	var err error
	if c.File != "" {
		html, err = deps.Reader.ReadText(c.File)
	} else {
		html, err = deps.Fetcher.Fetch(deps.Ctx, c.URL)
	}
	if err != nil {
		return err
	}

	rows, err := logged.Parse(html)
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %s", c.Provider, gpuprice.ErrorMessage(err))
	}
	if err := gpuprice.ValidateRows(rows); err != nil {
		return fmt.Errorf("%s parser emitted invalid output: %s", c.Provider, gpuprice.ErrorMessage(err))
	}

	outCSV := c.OutCSV
	if outCSV == "" {
		outCSV = fmt.Sprintf("%s_gpu_prices.csv", c.Provider)
	}
	outJSON := c.OutJSON
	if outJSON == "" {
		outJSON = fmt.Sprintf("%s_gpu_prices.json", c.Provider)
	}

	if err := deps.Writer.WriteCSV(outCSV, rows); err != nil {
		return err
	}
	if err := deps.Writer.WriteJSON(outJSON, rows); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Parsed %d pricing rows\n", len(rows))
	fmt.Fprintf(deps.Stdout, "Wrote: %s\n", outCSV)
	fmt.Fprintf(deps.Stdout, "Wrote: %s\n", outJSON)
	return nil
}
