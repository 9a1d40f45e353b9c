package mpe2pdf

import (
	"strings"
	"testing"
)

// Distinctive snippets from each embedded layer.
const (
	baseMarker   = "page-break-before: always"
	githubMarker = "word-wrap: break-word"
	mpeMarker    = "font-weight: 800"
)

func TestLayeredComposer_Compose(t *testing.T) {
	c := newLayeredComposer()

	tests := []struct {
		name     string
		theme    Theme
		contains []string
		excludes []string
	}{
		{
			name:     "minimal is base only",
			theme:    ThemeMinimal,
			contains: []string{baseMarker},
			excludes: []string{githubMarker, mpeMarker},
		},
		{
			name:     "github layers on base",
			theme:    ThemeGitHub,
			contains: []string{baseMarker, githubMarker},
			excludes: []string{mpeMarker},
		},
		{
			name:     "mpe layers on github and base",
			theme:    ThemeMPE,
			contains: []string{baseMarker, githubMarker, mpeMarker},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Compose(tt.theme, "")
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Compose(%q) missing %q", tt.theme, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Compose(%q) unexpectedly contains %q", tt.theme, bad)
				}
			}
		})
	}
}

func TestLayeredComposer_LayerOrder(t *testing.T) {
	c := newLayeredComposer()

	got, err := c.Compose(ThemeMPE, "")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	base := strings.Index(got, baseMarker)
	github := strings.Index(got, githubMarker)
	mpe := strings.Index(got, mpeMarker)

	if !(base < github && github < mpe) {
		t.Errorf("layer order wrong: base=%d github=%d mpe=%d", base, github, mpe)
	}
}

func TestLayeredComposer_UserCSSLast(t *testing.T) {
	c := newLayeredComposer()
	userCSS := ".custom { color: hotpink; }"

	got, err := c.Compose(ThemeMPE, userCSS)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if !strings.HasSuffix(got, userCSS) {
		t.Errorf("user CSS must be the final layer, got tail %q", got[len(got)-60:])
	}
}

func TestLayeredComposer_ChromaStylesheetIncluded(t *testing.T) {
	c := newLayeredComposer()

	got, err := c.Compose(ThemeMinimal, "")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !strings.Contains(got, ".chroma") {
		t.Error("expected chroma class stylesheet in every bundle")
	}
}
