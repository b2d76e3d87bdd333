// Package runner drives formatting over a set of template files.
//
// The formatting core is a pure function, so files are processed through a
// bounded worker pool and written back only when the content changed. The
// runner owns all I/O: reading sources (including stdin via "-"), writing
// results, per-file error reporting, and the run summary on stderr.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	djerrors "github.com/djade-fmt/djade/internal/errors"
	"github.com/djade-fmt/djade/internal/format"
	"github.com/djade-fmt/djade/internal/logging"
	"github.com/djade-fmt/djade/internal/target"
	"github.com/djade-fmt/djade/internal/template"
)

// StdinName is the path argument that selects stdin as a source. Outside
// check mode the formatted result goes to stdout; nothing is written to disk.
const StdinName = "-"

// Exit codes of a formatting run.
const (
	ExitOK    = 0
	ExitDirty = 1
	ExitError = 2
)

// Options configures a formatting run.
type Options struct {
	// Target enables the version-gated fixers; the zero value disables them.
	Target target.Version
	// Check reports files that would change without writing anything.
	Check bool
	// Workers bounds the worker pool; zero means one worker per CPU.
	Workers int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Summary aggregates the per-file outcomes of a run.
type Summary struct {
	Reformatted int
	Unchanged   int
	Failed      int
}

// ExitCode maps the summary to the process exit code: 2 on any per-file
// error, 1 when check mode found work to do, 0 otherwise.
func (s Summary) ExitCode(check bool) int {
	switch {
	case s.Failed > 0:
		return ExitError
	case check && s.Reformatted > 0:
		return ExitDirty
	default:
		return ExitOK
	}
}

// Runner formats template files according to its options.
type Runner struct {
	opts      Options
	logger    logging.Logger
	collector *djerrors.Collector
}

// New creates a runner. Missing streams default to the process streams.
func New(opts Options, logger logging.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{
		opts:      opts,
		logger:    logger.WithComponent("runner"),
		collector: djerrors.NewCollector(),
	}
}

// fileResult is the outcome of formatting a single path.
type fileResult struct {
	path    string
	changed bool
	err     *djerrors.DjadeError
}

// Run formats every path and returns the run summary with its exit code.
// Regular files are processed concurrently; stdin entries run inline so
// their output order on stdout is deterministic.
func (r *Runner) Run(ctx context.Context, paths []string) (Summary, int) {
	var summary Summary

	var files []string
	for _, path := range paths {
		if path == StdinName {
			r.tally(&summary, r.processStdin())
			continue
		}
		files = append(files, path)
	}

	jobs := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- r.processFile(ctx, path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		r.tally(&summary, res)
	}

	r.printSummary(summary)
	return summary, summary.ExitCode(r.opts.Check)
}

// tally folds one result into the summary and emits its per-file reporting.
func (r *Runner) tally(summary *Summary, res fileResult) {
	switch {
	case res.err != nil:
		summary.Failed++
		r.collector.Add(res.err)
		fmt.Fprintln(r.opts.Stderr, res.err.Error())
	case res.changed:
		summary.Reformatted++
		if r.opts.Check {
			fmt.Fprintf(r.opts.Stderr, "Would reformat: %s\n", res.path)
		}
	default:
		summary.Unchanged++
	}
}

// FormatFile formats a single file in place and reports whether it changed.
// Watch mode uses this to react to individual write events.
func (r *Runner) FormatFile(ctx context.Context, path string) (bool, error) {
	res := r.processFile(ctx, path)
	if res.err != nil {
		return false, res.err
	}
	return res.changed, nil
}

func (r *Runner) processFile(ctx context.Context, path string) fileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileResult{path: path, err: djerrors.NewIOError(path, "cannot read file", err)}
	}

	out, changed, err := format.Format(src, r.opts.Target)
	if err != nil {
		return fileResult{path: path, err: parseFailure(path, err)}
	}

	r.logger.Debug(ctx, "formatted file", "path", path, "changed", changed)

	if changed && !r.opts.Check {
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fileResult{path: path, err: djerrors.NewIOError(path, "cannot write file", err)}
		}
	}
	return fileResult{path: path, changed: changed}
}

func (r *Runner) processStdin() fileResult {
	src, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		return fileResult{path: "stdin", err: djerrors.NewIOError("stdin", "cannot read stdin", err)}
	}

	out, changed, err := format.Format(src, r.opts.Target)
	if err != nil {
		return fileResult{path: "stdin", err: parseFailure("stdin", err)}
	}

	if !r.opts.Check {
		if _, err := r.opts.Stdout.Write(out); err != nil {
			return fileResult{path: "stdin", err: djerrors.NewIOError("stdin", "cannot write stdout", err)}
		}
	}
	return fileResult{path: "stdin", changed: changed}
}

// parseFailure converts a tokenizer error into the per-file error form.
func parseFailure(path string, err error) *djerrors.DjadeError {
	if pe, ok := err.(*template.ParseError); ok {
		return djerrors.NewParseError(path, fmt.Sprintf("unclosed %q", pe.Opener), pe.Offset)
	}
	return djerrors.NewParseError(path, err.Error(), -1)
}

// printSummary writes the aggregate counts to stderr in the order
// reformatted, already formatted, failed, skipping zero counts.
func (r *Runner) printSummary(s Summary) {
	if s.Reformatted > 0 {
		if r.opts.Check {
			fmt.Fprintf(r.opts.Stderr, "%d %s would be reformatted\n", s.Reformatted, plural(s.Reformatted))
		} else {
			fmt.Fprintf(r.opts.Stderr, "%d %s reformatted\n", s.Reformatted, plural(s.Reformatted))
		}
	}
	if s.Unchanged > 0 {
		fmt.Fprintf(r.opts.Stderr, "%d %s already formatted\n", s.Unchanged, plural(s.Unchanged))
	}
	if s.Failed > 0 {
		fmt.Fprintf(r.opts.Stderr, "%d %s failed to format\n", s.Failed, plural(s.Failed))
	}
}

func plural(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}

// Errors returns the per-file errors collected during the run.
func (r *Runner) Errors() []*djerrors.DjadeError {
	return r.collector.All()
}
