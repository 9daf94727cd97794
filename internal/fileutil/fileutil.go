// Package fileutil provides file and path helpers shared by the converter
// and the command-line orchestrator.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// Source and output extensions.
const (
	MarkdownExt = ".md"
	PDFExt      = ".pdf"
)

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function that removes the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "katexpdf-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// PDFPath maps a source document to its PDF sibling by replacing the
// extension: "docs/notes.md" becomes "docs/notes.pdf". A path without an
// extension gets ".pdf" appended.
func PDFPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + PDFExt
}

// IsMarkdown reports whether path carries the Markdown extension.
func IsMarkdown(path string) bool {
	return filepath.Ext(path) == MarkdownExt
}

// Exists reports whether anything (file, directory, symlink target) is at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
