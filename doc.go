// Package katexpdf converts Markdown notes with KaTeX math to PDF using
// headless Chrome.
//
// # Quick Start
//
//	conv, err := katexpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = conv.ConvertFile(ctx, "notes.md", "notes.pdf", katexpdf.ConversionOptions{
//	    ShowHeaderFooter: true,
//	})
//
// # Conversion Pipeline
//
//  1. Markdown to HTML via Goldmark (GFM, linkify, typographer, KaTeX math,
//     syntax highlighting, raw HTML passthrough)
//  2. Relative image and link paths rewritten to file:// URLs
//  3. Body wrapped in the document template (fonts, github-markdown-css,
//     KaTeX stylesheet, embedded style block)
//  4. PDF printing via headless Chrome (go-rod), A4 with fixed margins and
//     an optional title header and page-number footer
//
// Each conversion launches and releases its own browser, so a Converter
// holds no process between calls and is safe for concurrent use.
//
// # Configuration
//
//	conv, err := katexpdf.NewConverter(
//	    katexpdf.WithTimeout(2 * time.Minute),
//	    katexpdf.WithAssetPath("/path/to/assets"),
//	)
//
// A custom asset directory may override templates/document.html and
// styles/default.css; missing files fall back to the embedded copies.
//
// # Errors
//
// Every error returned by ConvertFile matches one of ErrRead, ErrRender or
// ErrExport with errors.Is, plus a more specific sentinel such as
// ErrReadMarkdown or ErrPageLoad.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. go-rod downloads a managed
// Chromium on first run (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use
// a specific binary and ROD_NO_SANDBOX=1 inside containers.
package katexpdf
