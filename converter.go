package katexpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-katexpdf/internal/assets"
	"github.com/alnah/go-katexpdf/internal/pipeline"
)

// documentBuilder wraps a rendered body in the full page.
type documentBuilder interface {
	Build(body string) (string, error)
}

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ documentBuilder        = (*pipeline.DocumentBuilder)(nil)
	_ pdfExporter            = (*rodExporter)(nil)
)

// Converter runs the Markdown to PDF pipeline for one file at a time.
// It keeps no browser between calls and may be shared by goroutines.
type Converter struct {
	cfg           converterConfig
	htmlConverter pipeline.HTMLConverter
	document      documentBuilder
	exporter      pdfExporter
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the asset path is invalid or the document template
// cannot be parsed.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:  DefaultTimeout,
			renderer: pipeline.DefaultRendererConfig(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(c.cfg.renderer)
	}

	if c.document == nil {
		var loader assets.AssetLoader = assets.NewEmbeddedLoader()
		if c.cfg.assetPath != "" {
			resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
			}
			loader = resolver
		}

		builder, err := pipeline.NewDocumentBuilder(loader)
		if err != nil {
			return nil, fmt.Errorf("initializing document builder: %w", err)
		}
		c.document = builder
	}

	if c.exporter == nil {
		c.exporter = newRodExporter(c.cfg.timeout)
	}

	return c, nil
}

// Timeout returns the export timeout in effect.
func (c *Converter) Timeout() time.Duration {
	return c.cfg.timeout
}

// ConvertFile renders source and writes the PDF to destination, replacing
// any existing file. It converts unconditionally: skipping up-to-date
// outputs is the caller's decision. Recovers from internal panics.
func (c *Converter) ConvertFile(ctx context.Context, source, destination string, opts ConversionOptions) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = withKind(ErrRender, fmt.Errorf("internal error converting %s: %v", source, r))
		}
	}()

	content, err := os.ReadFile(source) // #nosec G304 -- user-provided or discovered path
	if err != nil {
		return withKind(ErrRead, fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	document, err := c.RenderDocument(ctx, string(content), filepath.Dir(source))
	if err != nil {
		return err
	}

	pdfOpts := &pdfOptions{ShowHeaderFooter: opts.ShowHeaderFooter}
	if err := c.exporter.Export(ctx, document, destination, pdfOpts); err != nil {
		return withKind(ErrExport, err)
	}
	return nil
}

// RenderDocument returns the complete HTML document for markdown. Relative
// image and link paths resolve against sourceDir; an empty sourceDir
// leaves them as written.
func (c *Converter) RenderDocument(ctx context.Context, markdown, sourceDir string) (string, error) {
	body, err := c.htmlConverter.ToHTML(ctx, markdown)
	if err != nil {
		return "", withKind(ErrRender, fmt.Errorf("converting to HTML: %w", err))
	}

	body, err = pipeline.RewriteRelativePaths(body, sourceDir)
	if err != nil {
		return "", withKind(ErrRender, fmt.Errorf("rewriting relative paths: %w", err))
	}

	document, err := c.document.Build(body)
	if err != nil {
		return "", withKind(ErrRender, fmt.Errorf("building document: %w", err))
	}
	return document, nil
}
