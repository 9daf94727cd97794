package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	katexpdf "github.com/alnah/go-katexpdf"
)

// FileConverter converts one Markdown file to one PDF.
type FileConverter interface {
	ConvertFile(ctx context.Context, source, destination string, opts katexpdf.ConversionOptions) error
}

// Compile-time interface implementation check.
var _ FileConverter = (*katexpdf.Converter)(nil)

// runSettings controls batch execution and console output.
type runSettings struct {
	workers   int // concurrent conversions, >= 1
	keepGoing bool
	quiet     bool
	verbose   bool
}

// stoppedError is returned when a failure stopped a batch early.
type stoppedError struct {
	display string
	skipped int // jobs never started
	err     error
}

func (e *stoppedError) Error() string {
	return fmt.Sprintf("%s: %v", e.display, e.err)
}

func (e *stoppedError) Unwrap() error {
	return e.err
}

// progress serializes console output from concurrent conversions.
type progress struct {
	mu       sync.Mutex
	env      *Environment
	settings runSettings
}

func (p *progress) building(job conversionJob) {
	if p.settings.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.env.Stdout, "Building %s...\n", job.display)
}

func (p *progress) finished(job conversionJob, elapsed time.Duration) {
	if !p.settings.verbose {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.env.Stderr, "  %s -> %s (%v)\n", job.source, job.destination, elapsed.Round(time.Millisecond))
}

func (p *progress) failed(job conversionJob, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.env.Stderr, "FAILED %s: %v\n", job.source, err)
}

func (p *progress) println(msg string) {
	if p.settings.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.env.Stdout, msg)
}

// processInput converts a single file or every pending file of a directory.
func processInput(ctx context.Context, conv FileConverter, inputPath string, opts katexpdf.ConversionOptions, settings runSettings, env *Environment) error {
	out := &progress{env: env, settings: settings}

	isDir, files, err := discoverSources(inputPath)
	if err != nil {
		return err
	}

	if !isDir {
		job := planSingle(inputPath, opts)
		if err := convertJob(ctx, conv, job, opts, out); err != nil {
			return fmt.Errorf("%s: %w", job.display, err)
		}
		return nil
	}

	if len(files) == 0 {
		out.println("No markdown files found.")
		return nil
	}

	// OutputPath only applies to a single file.
	opts.OutputPath = ""
	jobs := planDirectory(inputPath, files, opts.Refresh)

	if settings.keepGoing {
		return runKeepGoing(ctx, conv, jobs, opts, settings, out)
	}
	return runFailFast(ctx, conv, jobs, opts, settings, out)
}

// convertJob announces and runs one conversion.
func convertJob(ctx context.Context, conv FileConverter, job conversionJob, opts katexpdf.ConversionOptions, out *progress) error {
	out.building(job)
	start := time.Now()
	if err := conv.ConvertFile(ctx, job.source, job.destination, opts); err != nil {
		return err
	}
	out.finished(job, time.Since(start))
	return nil
}

// runFailFast stops at the first failure. Conversions already running are
// canceled through the group context and jobs not yet started are skipped.
func runFailFast(ctx context.Context, conv FileConverter, jobs []conversionJob, opts katexpdf.ConversionOptions, settings runSettings, out *progress) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(settings.workers, 1))

	var started atomic.Int64

	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// The slot may have been freed by a failure.
			if err := gctx.Err(); err != nil {
				return err
			}
			started.Add(1)
			if err := convertJob(gctx, conv, job, opts, out); err != nil {
				return &stoppedError{display: job.display, err: err}
			}
			return nil
		})
	}

	err := g.Wait()
	var se *stoppedError
	if errors.As(err, &se) {
		se.skipped = len(jobs) - int(started.Load())
	}
	return err
}

// runKeepGoing attempts every job, reports each failure and returns an
// error summarizing them. Only cancellation of ctx stops it early.
func runKeepGoing(ctx context.Context, conv FileConverter, jobs []conversionJob, opts katexpdf.ConversionOptions, settings runSettings, out *progress) error {
	var g errgroup.Group
	g.SetLimit(max(settings.workers, 1))

	var succeeded, failed atomic.Int64

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := convertJob(ctx, conv, job, opts, out); err != nil {
				failed.Add(1)
				out.failed(job, err)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	if len(jobs) > 0 {
		out.println(fmt.Sprintf("%d succeeded, %d failed", succeeded.Load(), failed.Load()))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed", n, len(jobs))
	}
	return nil
}
