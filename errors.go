package mpe2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Browser engine errors. ErrBrowserConnect marks the engine as
	// unavailable, which is the only condition that triggers the auto
	// fallback to the static engine.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// ErrNoEngine is returned when EngineAuto finds no usable engine.
	ErrNoEngine = errors.New("no PDF engine available")

	// Render configuration validation errors.
	ErrInvalidEngine   = errors.New("invalid engine")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidMathMode = errors.New("invalid math mode")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")
)

// IsEngineUnavailable reports whether err means the engine could not start
// at all, as opposed to failing while rendering. The dispatcher falls back
// only on unavailability.
func IsEngineUnavailable(err error) bool {
	return errors.Is(err, ErrBrowserConnect)
}
