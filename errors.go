package katexpdf

import (
	"errors"

	"github.com/alnah/go-katexpdf/internal/pipeline"
)

// Error kinds. Every conversion error matches exactly one of these.
var (
	ErrRead     = errors.New("read error")
	ErrRender   = errors.New("render error")
	ErrExport   = errors.New("export error")
	ErrArgument = errors.New("invalid argument")
)

// Sentinel errors for conversion stages.
var (
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF")

	ErrInvalidAssetPath    = errors.New("invalid asset path")
	ErrOutputWithDirectory = errors.New("--output cannot be used with a directory input")
)

// kindError tags err with a kind while keeping its message.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string   { return e.err.Error() }
func (e *kindError) Unwrap() []error { return []error{e.kind, e.err} }

// withKind returns err tagged with kind, or nil for a nil err.
func withKind(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}
