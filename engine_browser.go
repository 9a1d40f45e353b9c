package mpe2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// scriptSettleTimeout bounds the best-effort wait for Mermaid/MathJax/KaTeX
// to finish typesetting after the page is idle. Failures here are ignored:
// a document without those libraries would otherwise stall the render.
const scriptSettleTimeout = 5 * time.Second

// browserEngine renders through headless Chromium via go-rod. Scripts
// execute, so Mermaid diagrams and math typesetting appear in the output.
// Rod downloads a Chromium build on first use when none is found.
type browserEngine struct {
	browser *rod.Browser
	timeout time.Duration
}

// newBrowserEngine creates a browserEngine with the given render timeout.
// The browser process is launched lazily on first render.
func newBrowserEngine(timeout time.Duration) *browserEngine {
	return &browserEngine{timeout: timeout}
}

func (e *browserEngine) Name() string { return string(EngineBrowser) }

// ensureBrowser lazily launches and connects to the browser.
func (e *browserEngine) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close shuts down the browser process.
func (e *browserEngine) Close() error {
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}

// Render loads the assembled document as an in-memory payload (not a file
// URL, avoiding path and permission issues), waits for script-driven
// content to settle, and prints to PDF with the configured page geometry.
// The page is closed on every exit path.
func (e *browserEngine) Render(ctx context.Context, doc document, page PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.ensureBrowser(); err != nil {
		return nil, err
	}

	p, err := e.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer p.Close()

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := p.Timeout(timeout).SetDocumentContent(doc.HTML); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Event-based readiness, not a fixed sleep: WaitIdle waits for the
	// page's JavaScript queue to drain, then the awaited evaluations give
	// the typesetters a bounded chance to finish. Both are best-effort so
	// plain documents render without delay.
	_ = p.Timeout(timeout).WaitIdle(timeout)
	settled := p.Timeout(scriptSettleTimeout)
	_, _ = settled.Eval(`() => window.MathJax && MathJax.typesetPromise ? MathJax.typesetPromise() : null`)
	_, _ = settled.Eval(`() => { try { if (window.mermaid) { return mermaid.run(); } } catch (e) {} }`)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width, height := page.paper()
	reader, err := p.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margins.Top),
		MarginRight:     floatPtr(page.Margins.Right),
		MarginBottom:    floatPtr(page.Margins.Bottom),
		MarginLeft:      floatPtr(page.Margins.Left),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
