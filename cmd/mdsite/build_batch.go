package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Sentinel errors for page operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePage    = errors.New("failed to write page")
)

// PageConverter is the interface for the conversion service.
type PageConverter interface {
	Convert(ctx context.Context, input mdsite.Input) (*mdsite.Page, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*mdsite.Converter)(nil)

// BuildResult holds the outcome of a single page build.
type BuildResult struct {
	SourcePath string
	OutputPath string
	Title      string
	Bytes      int
	Err        error
	Duration   time.Duration
}

// buildBatch renders pages concurrently. The converter is shared: it holds no
// per-call state. Results keep the order of pages.
func buildBatch(ctx context.Context, conv PageConverter, pages []PageToBuild, workers int, logger *slog.Logger) []BuildResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(pages))

	results := make([]BuildResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						SourcePath: pages[idx].SourcePath,
						Err:        ctx.Err(),
					}
					continue
				}
				results[idx] = buildPage(ctx, conv, pages[idx])
				logResult(logger, results[idx])
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildPage processes a single page and returns the result.
func buildPage(ctx context.Context, conv PageConverter, p PageToBuild) BuildResult {
	start := time.Now()
	result := BuildResult{
		SourcePath: p.SourcePath,
		OutputPath: p.OutputPath,
	}

	content, err := os.ReadFile(p.SourcePath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	page, err := conv.Convert(ctx, mdsite.Input{Markdown: string(content)})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(p.OutputPath, page.HTML); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Title = page.Title
	result.Bytes = len(page.HTML)
	result.Duration = time.Since(start)
	return result
}

func logResult(logger *slog.Logger, r BuildResult) {
	if r.Err != nil {
		logger.Debug("page failed", logPage(r.SourcePath), logDuration(r.Duration), logError(r.Err))
		return
	}
	logger.Debug("page built", logPage(r.SourcePath), logOutput(r.OutputPath), logDuration(r.Duration))
}

// ResultSummary holds the tallies of a batch.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Bytes     int64
	FirstErr  error // First failure in page order
}

// countResults tallies succeeded and failed builds.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = r.Err
			}
			continue
		}
		summary.Succeeded++
		summary.Bytes += int64(r.Bytes)
	}
	return summary
}

// printResults outputs build results using the environment writers.
// Returns the number of failed pages.
func printResults(results []BuildResult, opts buildOptions, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.SourcePath, r.Err)
			continue
		}

		if opts.quiet {
			continue
		}

		if opts.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %s)\n", r.SourcePath, r.OutputPath,
				r.Duration.Round(time.Millisecond), formatBytes(int64(r.Bytes)))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !opts.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
