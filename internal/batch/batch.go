package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotDirectory is returned when the input path exists but is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrOutputCollision is recorded for a PDF whose JSON path is already taken
// by another PDF in the same directory, such as a.PDF next to a.pdf.
var ErrOutputCollision = errors.New("output path already used")

// IsPDF reports whether name ends in .pdf, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// Discover lists the PDF files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsPDF(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath returns where the JSON result for inputPath is written: the
// input's base name inside outputDir with its .pdf extension replaced by
// .json.
func OutputPath(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	if IsPDF(base) {
		base = base[:len(base)-len(".pdf")]
	}
	return filepath.Join(outputDir, base+".json")
}

// Collisions finds inputs that map to the same output path. Inputs are
// claimed in order; the result maps each later input to the earlier one
// that owns its output.
func Collisions(outputDir string, inputs []string) map[string]string {
	owner := make(map[string]string, len(inputs))
	lost := make(map[string]string)
	for _, in := range inputs {
		out := OutputPath(outputDir, in)
		if first, ok := owner[out]; ok {
			lost[in] = first
			continue
		}
		owner[out] = in
	}
	return lost
}

// CollisionResult is the FileResult recorded for input when first already
// owns its output path.
func CollisionResult(outputDir, input, first string) FileResult {
	return FileResult{
		Input:  input,
		Output: OutputPath(outputDir, input),
		Err:    fmt.Errorf("%w by %s", ErrOutputCollision, filepath.Base(first)),
	}
}

// FileResult records the outcome of processing one PDF.
type FileResult struct {
	Input    string
	Output   string
	Title    string
	Entries  int
	Duration time.Duration
	// Skipped is set when the run was cancelled before the file was
	// processed.
	Skipped bool
	Err     error
}

// OK reports whether the file was processed and its result written.
func (r FileResult) OK() bool {
	return !r.Skipped && r.Err == nil
}

// Summary aggregates a batch run.
type Summary struct {
	Files   int
	OK      int
	Failed  int
	Skipped int
	Entries int
	Elapsed time.Duration
	Results []FileResult
}

func summarize(results []FileResult, elapsed time.Duration) Summary {
	s := Summary{Files: len(results), Elapsed: elapsed, Results: results}
	for _, r := range results {
		switch {
		case r.OK():
			s.OK++
			s.Entries += r.Entries
		case r.Skipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}
