package main

import (
	"fmt"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/scrape"
)

// Run executes the all command: the standard six-provider batch, providers
// scraped concurrently with per-provider failure containment.
func (c *AllCmd) Run(deps *Dependencies) error {
	runner := &scrape.Runner{
		Fetcher:     deps.Fetcher,
		Parsers:     deps.Parsers,
		Writer:      deps.Writer,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}

	results := runner.Run(deps.Ctx, scrape.DefaultJobs(c.OutDir))

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "%s: %s\n", res.Provider, gpuprice.ErrorMessage(res.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s: %d rows\n", res.Provider, res.Rows)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d providers failed", failed, len(results))
	}
	return nil
}
