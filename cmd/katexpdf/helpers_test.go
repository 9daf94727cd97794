package main

// Notes:
// - Test infrastructure shared by the command tests: a recording fake
//   converter, an injectable environment and markdown tree helpers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	katexpdf "github.com/alnah/go-katexpdf"
)

// ---------------------------------------------------------------------------
// fakeConverter - Records calls and writes placeholder PDFs
// ---------------------------------------------------------------------------

var errFakeConversion = errors.New("fake conversion failed")

type fakeConverter struct {
	mu       sync.Mutex
	calls    []string // sources, in call order
	dests    map[string]string
	opts     []katexpdf.ConversionOptions
	failOn   map[string]bool // base names that fail
	inFlight int
	maxSeen  int
	delay    time.Duration
}

func newFakeConverter(failOn ...string) *fakeConverter {
	f := &fakeConverter{
		dests:  make(map[string]string),
		failOn: make(map[string]bool),
	}
	for _, name := range failOn {
		f.failOn[name] = true
	}
	return f
}

func (f *fakeConverter) ConvertFile(ctx context.Context, source, destination string, opts katexpdf.ConversionOptions) error {
	f.mu.Lock()
	f.calls = append(f.calls, source)
	f.dests[source] = destination
	f.opts = append(f.opts, opts)
	f.inFlight++
	f.maxSeen = max(f.maxSeen, f.inFlight)
	fail := f.failOn[filepath.Base(source)]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if fail {
		return errFakeConversion
	}
	return os.WriteFile(destination, []byte("%PDF-fake"), 0o644)
}

func (f *fakeConverter) sources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeConverter) destination(source string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dests[source]
}

// ---------------------------------------------------------------------------
// Environment helpers
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	conv    *fakeConverter
	options []katexpdf.Option
	timeout time.Duration
}

// newTestEnv returns an environment backed by buffers and conv. The real
// Converter is built from the options so tests can read back its timeout.
func newTestEnv(conv *fakeConverter) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   conv,
	}
	fixed := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	te.Environment = &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewConverter: func(opts ...katexpdf.Option) (FileConverter, error) {
			te.options = opts
			c, err := katexpdf.NewConverter(opts...)
			if err != nil {
				return nil, err
			}
			te.timeout = c.Timeout()
			return conv, nil
		},
		LoadDotEnv: func() error { return nil },
	}
	return te
}

// writeTree creates files under dir. Parent directories are created.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}
