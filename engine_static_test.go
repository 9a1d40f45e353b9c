package mpe2pdf

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestPaperName(t *testing.T) {
	tests := []struct {
		size string
		want string
	}{
		{PageSizeA4, "A4"},
		{PageSizeLetter, "Letter"},
		{PageSizeLegal, "Legal"},
		{"LETTER", "Letter"},
		{"", "A4"},
	}

	for _, tt := range tests {
		if got := paperName(tt.size); got != tt.want {
			t.Errorf("paperName(%q) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestStaticEngine_Render(t *testing.T) {
	e := newStaticEngine()
	ctx := context.Background()
	page := DefaultPageSettings()

	t.Run("produces a pdf", func(t *testing.T) {
		doc := document{Markdown: "# Title\n\nsome body text\n\n- a\n- b"}

		got, err := e.Render(ctx, doc, page)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !bytes.HasPrefix(got, []byte("%PDF")) {
			t.Errorf("output does not start with %%PDF: %q", got[:min(16, len(got))])
		}
	})

	t.Run("byte deterministic", func(t *testing.T) {
		doc := document{Markdown: "# Same\n\ninput every time"}

		first, err := e.Render(ctx, doc, page)
		if err != nil {
			t.Fatalf("first Render() error = %v", err)
		}
		second, err := e.Render(ctx, doc, page)
		if err != nil {
			t.Fatalf("second Render() error = %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Error("same input produced different PDF bytes")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := e.Render(cctx, document{Markdown: "x"}, page)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("close is a no-op", func(t *testing.T) {
		if err := e.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}
