package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	katexpdf "github.com/alnah/go-katexpdf"
	"github.com/alnah/go-katexpdf/internal/fileutil"
)

// conversionJob is one planned conversion.
type conversionJob struct {
	source      string
	destination string
	display     string // name shown in progress lines
}

// discoverSources stats inputPath and, for a directory, collects every
// .md file below it in lexical walk order. A file input is returned as is.
func discoverSources(inputPath string) (isDir bool, files []string, err error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return false, nil, fmt.Errorf("%w: %w", katexpdf.ErrRead, err)
	}

	if !info.IsDir() {
		return false, []string{inputPath}, nil
	}

	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: scanning %s: %w", katexpdf.ErrRead, path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return true, nil, err
	}

	return true, files, nil
}

// planSingle builds the job for a file input: the explicit output path if
// given, the sibling .pdf otherwise. Single files are always converted.
func planSingle(source string, opts katexpdf.ConversionOptions) conversionJob {
	destination := opts.OutputPath
	if destination == "" {
		destination = fileutil.PDFPath(source)
	}
	return conversionJob{
		source:      source,
		destination: destination,
		display:     filepath.Base(source),
	}
}

// planDirectory builds jobs for discovered files. Without refresh, a file
// whose PDF already exists is dropped here, once per run.
func planDirectory(root string, files []string, refresh bool) []conversionJob {
	jobs := make([]conversionJob, 0, len(files))
	for _, source := range files {
		destination := fileutil.PDFPath(source)
		if !refresh && fileutil.Exists(destination) {
			continue
		}

		display := source
		if rel, err := filepath.Rel(root, source); err == nil {
			display = rel
		}

		jobs = append(jobs, conversionJob{
			source:      source,
			destination: destination,
			display:     display,
		})
	}
	return jobs
}
