package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	katexpdf "github.com/alnah/go-katexpdf"
)

// Sentinel errors for argument validation. All are reported with
// katexpdf.ErrArgument.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	input     string
	output    string
	refresh   bool
	header    bool
	config    string
	timeout   time.Duration
	workers   int
	keepGoing bool
	assetPath string
	quiet     bool
	verbose   bool
	version   bool
	help      bool

	// changed records flags given explicitly, so zero values can still
	// override the environment and config file.
	changed map[string]bool
}

// newFlagSet registers all flags on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("katexpdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.input, "input", "i", ".", "markdown file or directory")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (single file only)")
	fs.BoolVarP(&f.refresh, "refresh", "r", false, "regenerate PDFs that already exist")
	fs.BoolVar(&f.header, "header", false, "print title header and page-number footer")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.DurationVarP(&f.timeout, "timeout", "t", katexpdf.DefaultTimeout, "PDF export timeout per file")
	fs.IntVarP(&f.workers, "workers", "w", 1, "parallel conversions (0 = auto)")
	fs.BoolVar(&f.keepGoing, "keep-going", false, "convert remaining files after a failure")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding the document template and style")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	return fs
}

// parseFlags parses args, excluding the program name.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{changed: make(map[string]bool)}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", katexpdf.ErrArgument, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %w: %s (use --input)", katexpdf.ErrArgument, ErrUnexpectedArgument, strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})

	return f, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %w: %d (must be >= 0, 0 means auto)", katexpdf.ErrArgument, ErrInvalidWorkerCount, n)
	}
	if n > katexpdf.MaxPoolSize {
		return fmt.Errorf("%w: %w: %d (maximum is %d)", katexpdf.ErrArgument, ErrInvalidWorkerCount, n, katexpdf.MaxPoolSize)
	}
	return nil
}

// validateTimeout rejects non-positive durations.
func validateTimeout(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %w: %s (must be positive)", katexpdf.ErrArgument, ErrInvalidTimeout, d)
	}
	return nil
}
