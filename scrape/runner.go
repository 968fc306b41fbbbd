// Package scrape orchestrates multi-provider scrape batches. It coordinates
// fetching, parsing and artifact writing per provider, with per-provider
// failure containment: one provider's page redesign never blocks the others.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	gpuprice "github.com/becloudready/gpu-price"
)

// Job describes one provider scrape: where to fetch and where to write.
type Job struct {
	Provider gpuprice.Provider
	URL      string
	OutCSV   string
	OutJSON  string
}

// RunResult holds the outcome of one provider's run. A run either succeeds
// with zero-or-more rows or fails entirely with Err set.
type RunResult struct {
	Provider gpuprice.Provider
	Rows     int
	Err      error
}

// Runner executes scrape jobs concurrently. Provider parses are independent
// pure transformations over disjoint documents, so jobs need no coordination
// beyond the concurrency limit.
type Runner struct {
	Fetcher     gpuprice.Fetcher
	Parsers     gpuprice.ParserRegistry
	Writer      gpuprice.RowWriter
	Concurrency int
	Logger      *slog.Logger
}

// Run executes all jobs and returns one result per job, in job order.
// Job failures are recorded in their RunResult, never propagated: the batch
// always runs to completion.
func (r *Runner) Run(ctx context.Context, jobs []Job) []RunResult {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", uuid.NewString())

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = len(jobs)
	}

	results := make([]RunResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = r.runJob(gctx, logger, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runJob fetches, parses and writes one provider.
func (r *Runner) runJob(ctx context.Context, logger *slog.Logger, job Job) RunResult {
	result := RunResult{Provider: job.Provider}

	parser := r.Parsers.Get(job.Provider)
	if parser == nil {
		result.Err = gpuprice.Errorf(gpuprice.ENOTIMPLEMENTED, "no parser registered for provider %q", job.Provider)
		return result
	}

	html, err := r.Fetcher.Fetch(ctx, job.URL)
	if err != nil {
		result.Err = err
		return result
	}
	logger.Info("fetched page",
		"provider", job.Provider,
		"url", job.URL,
		"bytes", len(html),
		"content_hash", fmt.Sprintf("%016x", xxhash.Sum64String(html)),
	)

	rows, err := parser.Parse(html)
	if err != nil {
		result.Err = err
		return result
	}
	if err := gpuprice.ValidateRows(rows); err != nil {
		result.Err = gpuprice.Errorf(gpuprice.EINVALID, "parser %q emitted invalid output: %s", job.Provider, gpuprice.ErrorMessage(err))
		return result
	}
	result.Rows = len(rows)

	if job.OutCSV != "" {
		if err := r.Writer.WriteCSV(job.OutCSV, rows); err != nil {
			result.Err = err
			return result
		}
	}
	if job.OutJSON != "" {
		if err := r.Writer.WriteJSON(job.OutJSON, rows); err != nil {
			result.Err = err
			return result
		}
	}

	logger.Info("scraped provider", "provider", job.Provider, "rows", result.Rows)
	return result
}

// DefaultJobs returns the standard six-provider job table with artifacts
// written under outDir.
func DefaultJobs(outDir string) []Job {
	out := func(name string) string { return filepath.Join(outDir, name) }
	return []Job{
		{Provider: gpuprice.ProviderCoreWeave, URL: "https://www.coreweave.com/pricing", OutCSV: out("coreweave_prices.csv"), OutJSON: out("coreweave_prices.json")},
		{Provider: gpuprice.ProviderNebius, URL: "https://nebius.com/prices", OutCSV: out("nebius_prices.csv"), OutJSON: out("nebius_prices.json")},
		{Provider: gpuprice.ProviderDenvr, URL: "https://www.denvr.com/pricing", OutCSV: out("denvr_gpu_prices.csv"), OutJSON: out("denvr_gpu_prices.json")},
		{Provider: gpuprice.ProviderRunPod, URL: "https://runpod.io/pricing", OutCSV: out("runpod_gpu_prices.csv"), OutJSON: out("runpod_gpu_prices.json")},
		{Provider: gpuprice.ProviderCrusoe, URL: "https://www.crusoe.ai/cloud/pricing", OutCSV: out("crusoe_gpu_prices.csv"), OutJSON: out("crusoe_gpu_prices.json")},
		{Provider: gpuprice.ProviderLambda, URL: "https://lambda.ai/pricing", OutCSV: out("lambda_gpu_prices.csv"), OutJSON: out("lambda_gpu_prices.json")},
	}
}
