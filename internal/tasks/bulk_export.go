package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/algox/internal/formatter"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	"golang.org/x/time/rate"
)

const manifestName = "export_manifest.json"

// BulkExportOpts contains configuration for bulk entry exports.
type BulkExportOpts struct {
	Format     formatter.Format // text writes raw source; markdown and json wrap the entry
	OutputDir  string           // Base output directory (default: algox_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
	RateLimit  float64          // Requests per second (default: 5)
}

// ExportResult is the outcome for a single entry.
type ExportResult struct {
	ID      models.ID
	Title   string
	File    string
	Success bool
	Error   error

	index int
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	Total           int
	Succeeded       int
	Failed          int
	OutputDirectory string
	ManifestPath    string
	Results         []ExportResult // in the order the ids were given
}

type exportJob struct {
	index int
	id    models.ID
}

// BulkExport fetches every id and writes it to its own file in opts.OutputDir.
//
// Failures are recorded per entry. The returned error is non-nil only when
// the output directory or manifest cannot be written, or ctx ends early.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []models.ID,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: nothing to export", shared.ErrMissingArgument)
	}
	if opts.Format == formatter.FormatCSV {
		return nil, fmt.Errorf("%w: csv is not an export format, use text, json or markdown", shared.ErrInvalidFlag)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("algox_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Total:           len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan exportJob, len(ids))
	results := make(chan ExportResult, len(ids))

	for i, id := range ids {
		jobs <- exportJob{index: i, id: id}
	}
	close(jobs)

	sendProgress(prog, prepareExportUpdate(len(ids), opts.OutputDir))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.Succeeded++
			sendProgress(prog, exportCompletedUpdate(completed, len(ids), res))
		} else {
			result.Failed++
			e.logger.Warn("export failed", "id", res.ID, "error", res.Error)
			sendProgress(prog, exportFailedUpdate(completed, len(ids), res.ID, res.Error))
		}
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].index < result.Results[j].index
	})

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	if err := formatter.WriteManifest(result.Manifest(), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	e.logger.Info("export finished", "dir", opts.OutputDir, "succeeded", result.Succeeded, "failed", result.Failed)
	return result, ctx.Err()
}

// Manifest converts the result to its on-disk summary.
func (r *BulkExportResult) Manifest() formatter.ExportManifest {
	m := formatter.ExportManifest{
		ExportedAt: time.Now().UTC(),
		Directory:  r.OutputDirectory,
		Total:      r.Total,
		Succeeded:  r.Succeeded,
		Failed:     r.Failed,
		Entries:    make([]formatter.ManifestEntry, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		entry := formatter.ManifestEntry{ID: res.ID, Title: res.Title}
		if res.Success {
			entry.File = filepath.Base(res.File)
		} else if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}

// exportWorker is a worker goroutine that exports entries from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan exportJob,
	results chan<- ExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		results <- e.exportSingleEntry(ctx, limiter, job, opts)
	}
}

// exportSingleEntry fetches one entry and writes it in the requested format.
func (e *Exporter) exportSingleEntry(ctx context.Context, limiter *rate.Limiter, j exportJob, opts BulkExportOpts) ExportResult {
	result := ExportResult{ID: j.id, index: j.index}

	if err := limiter.Wait(ctx); err != nil {
		result.Error = err
		return result
	}

	entry, err := e.catalog.Get(ctx, j.id)
	if err != nil {
		result.Error = fmt.Errorf("failed to fetch entry: %w", err)
		return result
	}
	if entry.ID != j.id {
		result.Error = fmt.Errorf("%w: requested entry %s, catalog returned %s", shared.ErrDataShape, j.id, entry.ID)
		return result
	}
	result.Title = entry.Title

	base := formatter.CodeFilename(entry)
	switch opts.Format {
	case formatter.FormatMarkdown:
		path := filepath.Join(opts.OutputDir, base+".md")
		if err := os.WriteFile(path, formatter.EntryMarkdown(entry), 0644); err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.File = path
	case formatter.FormatJSON:
		path := filepath.Join(opts.OutputDir, base+".json")
		data, err := shared.MarshalJSON(entry, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.File = path
	default:
		path := filepath.Join(opts.OutputDir, base)
		if err := formatter.WriteCodeFile(entry, path); err != nil {
			result.Error = err
			return result
		}
		result.File = path
	}

	result.Success = true
	return result
}
