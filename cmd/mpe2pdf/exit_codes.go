package main

import (
	"errors"
	"os"

	mpe2pdf "github.com/mpetools/mpe2pdf"
	"github.com/mpetools/mpe2pdf/internal/assets"
	"github.com/mpetools/mpe2pdf/internal/config"
)

// Exit codes for the mpe2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser and render errors (exit 4)
	if errors.Is(err, mpe2pdf.ErrBrowserConnect) ||
		errors.Is(err, mpe2pdf.ErrPageCreate) ||
		errors.Is(err, mpe2pdf.ErrPageLoad) ||
		errors.Is(err, mpe2pdf.ErrPDFGeneration) ||
		errors.Is(err, mpe2pdf.ErrNoEngine) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCover) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, mpe2pdf.ErrEmptyMarkdown) ||
		errors.Is(err, mpe2pdf.ErrInvalidEngine) ||
		errors.Is(err, mpe2pdf.ErrInvalidTheme) ||
		errors.Is(err, mpe2pdf.ErrInvalidMathMode) ||
		errors.Is(err, mpe2pdf.ErrInvalidPageSize) ||
		errors.Is(err, mpe2pdf.ErrInvalidMargin) ||
		errors.Is(err, assets.ErrStyleNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
