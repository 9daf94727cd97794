package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	katex "github.com/FurqanSoftware/goldmark-katex"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// RendererConfig selects the Markdown extensions a GoldmarkConverter enables.
// It is a plain value: a converter copies it at construction and never
// changes it afterwards.
type RendererConfig struct {
	UnsafeHTML     bool   // pass raw inline/block HTML through
	Linkify        bool   // turn bare URLs into links
	Typographer    bool   // smart quotes, dashes, ellipses
	Math           bool   // $inline$ and $$block$$ rendered to KaTeX markup
	Highlight      bool   // syntax-highlight fenced code with inline styles
	HighlightStyle string // chroma style name, "" = DefaultHighlightStyle
}

// DefaultRendererConfig enables every extension.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		UnsafeHTML:     true,
		Linkify:        true,
		Typographer:    true,
		Math:           true,
		Highlight:      true,
		HighlightStyle: DefaultHighlightStyle,
	}
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML body fragment.
type GoldmarkConverter struct {
	cfg RendererConfig
	md  goldmark.Markdown
}

// NewGoldmarkConverter builds a Goldmark instance for cfg. Tables,
// strikethrough, task lists, footnotes and heading IDs are always on.
func NewGoldmarkConverter(cfg RendererConfig) *GoldmarkConverter {
	return newGoldmarkConverter(cfg)
}

// newGoldmarkConverter appends extra extenders after the configured ones.
func newGoldmarkConverter(cfg RendererConfig, extra ...goldmark.Extender) *GoldmarkConverter {
	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote,
	}
	if cfg.Linkify {
		exts = append(exts, extension.Linkify)
	}
	if cfg.Typographer {
		exts = append(exts, extension.Typographer)
	}
	if cfg.Math {
		exts = append(exts, &katex.Extender{})
	}
	if cfg.Highlight {
		style := cfg.HighlightStyle
		if style == "" {
			style = DefaultHighlightStyle
		}
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false), // inline styles: the page has no chroma stylesheet
				chromahtml.TabWidth(4),
			),
		))
	}

	exts = append(exts, extra...)

	var rendererOpts []renderer.Option
	if cfg.UnsafeHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{cfg: cfg, md: md}
}

// Config returns the configuration the converter was built with.
func (c *GoldmarkConverter) Config() RendererConfig {
	return c.cfg
}

// ToHTML converts Markdown content to an HTML fragment (no <html> wrapper).
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation. A panic inside an extension is
// returned as ErrHTMLConversion.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrHTMLConversion, r)}
			}
		}()

		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
