package katexpdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-katexpdf/internal/fileutil"
	"github.com/alnah/go-katexpdf/internal/process"
)

// pdfExporter prints a full HTML document to a PDF file.
type pdfExporter interface {
	Export(ctx context.Context, fullHTML, destination string, opts *pdfOptions) error
}

// pdfRenderer renders an HTML file to PDF bytes. Split from the exporter
// so the file handling is testable without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

var _ pdfRenderer = (*rodRenderer)(nil)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	ShowHeaderFooter bool
}

// A4 page with margins given in CSS pixels.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	cssPixelsPerInch  = 96.0
	marginTopPx       = 60
	marginBottomPx    = 60
	marginSidePx      = 40
)

// Chrome fills the title, pageNumber and totalPages spans itself.
const (
	headerTemplate = `<div style="font-size: 10px; margin: 0 auto;"> <span class="title"></span> </div>`
	footerTemplate = `<div style="font-size: 10px; margin: 0 auto;"> <span class="pageNumber"></span> / <span class="totalPages"></span> </div>`
	emptyTemplate  = "<span></span>"
)

// networkIdleWindow is how long the page must go without requests before
// fonts and stylesheets count as loaded.
const networkIdleWindow = 500 * time.Millisecond

const filePermissions = 0o644 // rw-r--r--

// rodExporter writes the document to a temp file and prints it with
// headless Chrome.
type rodExporter struct {
	renderer pdfRenderer
}

func newRodExporter(timeout time.Duration) *rodExporter {
	return &rodExporter{renderer: &rodRenderer{timeout: timeout}}
}

// Export renders fullHTML and writes the PDF to destination.
func (e *rodExporter) Export(ctx context.Context, fullHTML, destination string, opts *pdfOptions) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile(fullHTML, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	data, err := e.renderer.RenderFromFile(ctx, tmpPath, opts)
	if err != nil {
		return err
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(destination, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	return nil
}

// rodRenderer launches one browser per call and releases it before
// returning. Rod downloads Chromium on first run if none is found.
type rodRenderer struct {
	timeout time.Duration
}

// browserSession is one launched Chrome and its connection.
type browserSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func launchBrowser(ctx context.Context) (*browserSession, error) {
	l := launcher.New().Context(ctx)

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	s := &browserSession{launcher: l}

	u, err := l.Launch()
	if err != nil {
		s.release()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u).Context(ctx)
	if err := b.Connect(); err != nil {
		s.release()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	s.browser = b
	return s, nil
}

// release runs on success and failure. Chrome helpers can outlive the
// parent, so the whole process group is killed before the launcher
// removes its user-data dir.
func (s *browserSession) release() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	// Cleanup waits for the process to exit, so it only runs once started.
	pid := s.launcher.PID()
	if pid <= 0 {
		return
	}
	process.KillProcessGroup(pid)
	s.launcher.Kill()
	s.launcher.Cleanup()
}

// RenderFromFile opens a local HTML file, waits for load and network idle,
// and prints it. The renderer timeout covers the whole call.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	session, err := launchBrowser(tctx)
	if err != nil {
		return nil, r.stageError(tctx, err)
	}
	defer session.release()

	page, err := session.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, r.stageError(tctx, fmt.Errorf("%w: %v", ErrPageCreate, err))
	}
	page = page.Context(tctx)

	// Armed before navigating so early font and stylesheet requests count.
	waitIdle := page.WaitRequestIdle(networkIdleWindow, nil, nil, nil)

	if err := page.Navigate("file://" + filePath); err != nil {
		return nil, r.stageError(tctx, fmt.Errorf("%w: %v", ErrPageLoad, err))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, r.stageError(tctx, fmt.Errorf("%w: %v", ErrPageLoad, err))
	}
	waitIdle()

	// waitIdle returns silently when tctx expires.
	if err := tctx.Err(); err != nil {
		return nil, r.stageError(tctx, err)
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, r.stageError(tctx, fmt.Errorf("%w: %v", ErrPDFGeneration, err))
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, r.stageError(tctx, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err))
	}

	return pdfBuf, nil
}

// stageError reports an expired deadline as a page load timeout, whatever
// stage was running. Other errors pass through.
func (r *rodRenderer) stageError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: timed out after %s: %w", ErrPageLoad, r.timeout, context.DeadlineExceeded)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w", err, ctxErr)
	}
	return err
}

// buildPDFOptions returns the A4 print settings, with header and footer
// templates when requested.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	showHeaderFooter := opts != nil && opts.ShowHeaderFooter

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(pxToInches(marginTopPx)),
		MarginBottom:        floatPtr(pxToInches(marginBottomPx)),
		MarginLeft:          floatPtr(pxToInches(marginSidePx)),
		MarginRight:         floatPtr(pxToInches(marginSidePx)),
		PrintBackground:     true,
		DisplayHeaderFooter: showHeaderFooter,
		HeaderTemplate:      emptyTemplate,
		FooterTemplate:      emptyTemplate,
	}

	if showHeaderFooter {
		pdfOpts.HeaderTemplate = headerTemplate
		pdfOpts.FooterTemplate = footerTemplate
	}

	return pdfOpts
}

func pxToInches(px float64) float64 {
	return px / cssPixelsPerInch
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
