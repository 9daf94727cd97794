package katexpdf

import (
	"time"

	"github.com/alnah/go-katexpdf/internal/pipeline"
)

// DefaultTimeout bounds one PDF export: browser launch, page load, network
// idle and printing.
const DefaultTimeout = 60 * time.Second

// ConversionOptions are the per-run settings of a batch.
type ConversionOptions struct {
	// Refresh regenerates PDFs that already exist. Only the directory
	// scan reads it; ConvertFile always converts.
	Refresh bool

	// ShowHeaderFooter prints the document title on top of each page and
	// "page / total" at the bottom.
	ShowHeaderFooter bool

	// OutputPath overrides the destination of a single-file run.
	// Ignored in directory mode.
	OutputPath string
}

// RendererConfig selects the Markdown extensions. See DefaultRendererConfig.
type RendererConfig = pipeline.RendererConfig

// DefaultRendererConfig enables raw HTML, linkify, typographer, math and
// highlighting.
func DefaultRendererConfig() RendererConfig {
	return pipeline.DefaultRendererConfig()
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	assetPath string
	renderer  RendererConfig
}

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("katexpdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath loads the document template and style from dir, falling
// back to the embedded assets for files it does not provide.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithRendererConfig replaces the default Markdown extension set.
func WithRendererConfig(cfg RendererConfig) Option {
	return func(c *Converter) {
		c.cfg.renderer = cfg
	}
}
