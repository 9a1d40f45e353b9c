// Package mpe2pdf converts Markdown documents into paginated PDFs that
// approximate the Markdown Preview Enhanced (MPE) live-preview rendering.
//
// The pipeline is: list normalization, goldmark HTML conversion, theme CSS
// composition, document assembly (cover page, Mermaid and math script tags),
// and finally PDF rendering through one of two engines: a headless Chromium
// browser (scripts execute) or a static fpdf-based layout engine (scripts are
// skipped). With EngineAuto the browser is tried first and the
// static engine is used when the browser cannot launch.
//
// Basic usage:
//
//	svc := mpe2pdf.New()
//	defer svc.Close()
//
//	pdf, err := svc.Convert(ctx, mpe2pdf.Input{
//		Markdown: "# Hello\n\nWorld",
//	})
package mpe2pdf
