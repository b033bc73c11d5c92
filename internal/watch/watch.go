package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/itsmostafa/pdfoutline/internal/batch"
)

// DefaultDebounce is how long a PDF must stay unmodified before it is
// processed.
const DefaultDebounce = 500 * time.Millisecond

// Watcher keeps an output directory in sync with the PDFs in an input
// directory.
type Watcher struct {
	input    string
	output   string
	proc     *batch.Processor
	debounce time.Duration
	logger   *slog.Logger
	onResult func(batch.FileResult)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the settle time for modified files. Zero or negative
// values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// OnResult registers fn to be called after every processed file, including
// those handled by the initial pass.
func OnResult(fn func(batch.FileResult)) Option {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// New creates a Watcher that runs proc over files in input and writes to
// output.
func New(input, output string, proc *batch.Processor, opts ...Option) *Watcher {
	w := &Watcher{
		input:    input,
		output:   output,
		proc:     proc,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// Run processes the PDFs already in the input directory, then reprocesses
// any PDF that is created or written until ctx is cancelled. Per-file errors
// are logged and reported through OnResult; Run only returns an error when
// the directories cannot be watched or the initial pass fails to start.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	// Watch before the initial pass so files added during it are not missed
	if err := fsw.Add(w.input); err != nil {
		return fmt.Errorf("watching %s: %w", w.input, err)
	}

	summary, err := w.proc.Run(ctx, w.input, w.output)
	if err != nil && ctx.Err() == nil {
		return err
	}
	for _, r := range summary.Results {
		w.report(r)
	}

	w.logger.Info("watching for changes", "input", w.input, "debounce", w.debounce)

	pending := newDebouncer(w.debounce)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			idle := pending.empty()
			pending.touch(ev.Name, time.Now())
			if idle {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			now := time.Now()
			for _, path := range pending.due(now) {
				w.process(path)
			}
			if wait, ok := pending.next(now); ok {
				timer.Reset(wait)
			}
		}
	}
}

func (w *Watcher) process(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	if files, err := batch.Discover(w.input); err == nil {
		if first, ok := batch.Collisions(w.output, files)[path]; ok {
			w.logger.Warn("output path collision, skipping file", "file", path, "kept", first)
			w.report(batch.CollisionResult(w.output, path, first))
			return
		}
	}

	res := w.proc.ProcessFile(path, w.output)
	if res.Err != nil {
		w.logger.Error("extraction failed", "file", path, "error", res.Err)
	} else {
		w.logger.Info("wrote outline", "file", path, "entries", res.Entries)
	}
	w.report(res)
}

func (w *Watcher) report(r batch.FileResult) {
	if w.onResult != nil {
		w.onResult(r)
	}
}

func relevant(ev fsnotify.Event) bool {
	if !batch.IsPDF(ev.Name) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
}

// debouncer tracks the last modification time of each pending path.
type debouncer struct {
	delay   time.Duration
	pending map[string]time.Time
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, pending: make(map[string]time.Time)}
}

func (d *debouncer) touch(path string, at time.Time) {
	d.pending[path] = at
}

func (d *debouncer) empty() bool {
	return len(d.pending) == 0
}

// due removes and returns, sorted, the paths untouched for at least delay.
func (d *debouncer) due(now time.Time) []string {
	var paths []string
	for path, at := range d.pending {
		if now.Sub(at) >= d.delay {
			paths = append(paths, path)
			delete(d.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// next returns how long until the earliest pending path becomes due.
func (d *debouncer) next(now time.Time) (time.Duration, bool) {
	if len(d.pending) == 0 {
		return 0, false
	}
	var earliest time.Time
	for _, at := range d.pending {
		if earliest.IsZero() || at.Before(earliest) {
			earliest = at
		}
	}
	wait := d.delay - now.Sub(earliest)
	if wait < 0 {
		wait = 0
	}
	return wait, true
}
