package mpe2pdf

import (
	"context"
	"fmt"
)

// document is what the engines render: the assembled HTML for the browser
// path, and the normalized Markdown for the static path, which lays out
// text directly and never executes scripts.
type document struct {
	HTML          string
	Markdown      string // normalized body Markdown
	CoverMarkdown string // normalized cover Markdown, empty when no cover
	BaseDir       string // directory of the input file, for relative resources
	UsesScripts   bool   // Mermaid or math requested; lost on the static path
}

// staticDegradationNotice is emitted whenever the static engine ends up
// rendering a document that asked for script-driven features, whether by
// explicit selection or by the auto fallback.
const staticDegradationNotice = "static engine does not execute scripts; Mermaid diagrams and math render as source text"

// renderEngine is one PDF-production strategy.
type renderEngine interface {
	Name() string
	Render(ctx context.Context, doc document, page PageSettings) ([]byte, error)
	Close() error
}

// engineDispatcher selects between the browser and static engines.
// An explicitly requested engine is mandatory: its failure is fatal.
// EngineAuto tries the browser first and falls back to the static engine
// only when the browser is unavailable (cannot launch or connect), never
// on a render error. One rendering attempt per engine per run, no retries.
type engineDispatcher struct {
	browser renderEngine
	static  renderEngine
	warnf   func(format string, args ...any)
}

func (d *engineDispatcher) render(ctx context.Context, engine Engine, doc document, page PageSettings) ([]byte, error) {
	switch engine {
	case EngineBrowser:
		return d.browser.Render(ctx, doc, page)
	case EngineStatic:
		return d.static.Render(ctx, doc, page)
	}

	pdf, err := d.browser.Render(ctx, doc, page)
	if err == nil {
		return pdf, nil
	}
	if !IsEngineUnavailable(err) {
		return nil, err
	}

	d.warnf("browser engine unavailable (%v), falling back to static engine", err)
	if doc.UsesScripts {
		d.warnf(staticDegradationNotice)
	}
	pdf, staticErr := d.static.Render(ctx, doc, page)
	if staticErr != nil {
		return nil, fmt.Errorf("%w: browser: %v; static: %v", ErrNoEngine, err, staticErr)
	}
	return pdf, nil
}

// close releases both engines. The static engine's Close is a no-op; the
// browser engine shuts down its Chromium process.
func (d *engineDispatcher) close() error {
	err := d.browser.Close()
	if staticErr := d.static.Close(); err == nil {
		err = staticErr
	}
	return err
}
