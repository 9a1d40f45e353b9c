package main

import (
	"fmt"
	"os"
	"testing"

	mpe2pdf "github.com/mpetools/mpe2pdf"
	"github.com/mpetools/mpe2pdf/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"browser connect", mpe2pdf.ErrBrowserConnect, ExitBrowser},
		{"page load wrapped", fmt.Errorf("render: %w", mpe2pdf.ErrPageLoad), ExitBrowser},
		{"pdf generation", mpe2pdf.ErrPDFGeneration, ExitBrowser},
		{"no engine", mpe2pdf.ErrNoEngine, ExitBrowser},
		{"file missing", os.ErrNotExist, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read cover", ErrReadCover, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"no input", ErrNoInput, ExitUsage},
		{"bad extension", ErrInvalidExtension, ExitUsage},
		{"bad timeout", ErrInvalidTimeout, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},
		{"empty markdown", mpe2pdf.ErrEmptyMarkdown, ExitUsage},
		{"invalid engine", mpe2pdf.ErrInvalidEngine, ExitUsage},
		{"invalid margin", mpe2pdf.ErrInvalidMargin, ExitUsage},
		{"unknown error", fmt.Errorf("something else"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
