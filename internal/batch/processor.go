package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itsmostafa/pdfoutline/internal/outline"
)

// ExtractFunc turns the PDF at path into its outline.
type ExtractFunc func(path string) (outline.Result, error)

// Processor writes one JSON outline per PDF in a directory. Documents are
// independent, so they are processed in parallel up to a worker limit.
type Processor struct {
	workers  int
	failFast bool
	extract  ExtractFunc
	logger   *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets how many documents are processed at once. Values below 1
// are ignored.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithFailFast makes the first document error cancel the run.
func WithFailFast(failFast bool) Option {
	return func(p *Processor) {
		p.failFast = failFast
	}
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithExtractor replaces outline.Extract.
func WithExtractor(fn ExtractFunc) Option {
	return func(p *Processor) {
		p.extract = fn
	}
}

// NewProcessor creates a Processor using runtime.NumCPU workers and
// outline.Extract unless overridden.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		workers: runtime.NumCPU(),
		extract: outline.Extract,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Run processes every PDF in inputDir and writes results to outputDir,
// creating it if needed.
//
// A document that fails is recorded in its FileResult and logged; the others
// still run. The returned error is only set when the directories cannot be
// used, ctx is cancelled, or fail-fast is on and a document failed.
func (p *Processor) Run(ctx context.Context, inputDir, outputDir string) (Summary, error) {
	start := time.Now()

	files, err := Discover(inputDir)
	if err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output dir: %w", err)
	}

	p.logger.Info("starting batch",
		"input", inputDir,
		"output", outputDir,
		"files", len(files),
		"workers", p.workers,
	)

	results := make([]FileResult, len(files))
	taken := Collisions(outputDir, files)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range files {
		if first, ok := taken[path]; ok {
			results[i] = CollisionResult(outputDir, path, first)
			p.logger.Warn("output path collision, skipping file",
				"file", filepath.Base(path),
				"kept", filepath.Base(first),
				"output", results[i].Output,
			)
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{
					Input:   path,
					Output:  OutputPath(outputDir, path),
					Skipped: true,
					Err:     err,
				}
				return err
			}

			res := p.ProcessFile(path, outputDir)
			results[i] = res

			if res.Err != nil {
				p.logger.Error("extraction failed", "file", path, "error", res.Err)
				if p.failFast {
					return res.Err
				}
				return nil
			}

			p.logger.Info("wrote outline",
				"file", filepath.Base(path),
				"entries", res.Entries,
				"duration", res.Duration.Round(time.Millisecond),
			)
			return nil
		})
	}

	err = g.Wait()
	summary := summarize(results, time.Since(start))

	p.logger.Info("batch complete",
		"ok", summary.OK,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"elapsed", summary.Elapsed.Round(time.Millisecond),
	)

	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}

// ProcessFile extracts the outline of one PDF and writes it to its JSON file
// in outputDir. The JSON file is only replaced once the whole result has been
// written.
func (p *Processor) ProcessFile(path, outputDir string) FileResult {
	start := time.Now()
	res := FileResult{Input: path, Output: OutputPath(outputDir, path)}

	result, err := p.extract(path)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	if err := writeResult(res.Output, result); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", res.Output, err)
		res.Duration = time.Since(start)
		return res
	}

	res.Title = result.Title
	res.Entries = len(result.Outline)
	res.Duration = time.Since(start)
	return res
}

func writeResult(path string, result outline.Result) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdfoutline-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := result.WriteJSON(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
