package mpe2pdf

import (
	"bytes"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/mpetools/mpe2pdf/internal/assets"
)

// styleComposer assembles the final CSS bundle for a theme.
type styleComposer interface {
	Compose(theme Theme, userCSS string) (string, error)
}

// layeredComposer concatenates embedded CSS layers in increasing precedence:
// base, then the theme layers, then user CSS last so it always wins the
// cascade. Later layers override by cascade, never by removal, and no
// validation is performed; engines handle malformed CSS themselves.
type layeredComposer struct{}

func newLayeredComposer() *layeredComposer { return &layeredComposer{} }

// layersFor maps a theme to its embedded layer names, in order.
func layersFor(theme Theme) []string {
	switch theme {
	case ThemeGitHub:
		return []string{"base", "github"}
	case ThemeMinimal:
		return []string{"base"}
	default: // ThemeMPE
		return []string{"base", "github", "mpe"}
	}
}

// Compose returns the style bundle for the given theme plus optional user
// CSS. The chroma class stylesheet rides with the base layer so fenced code
// highlighting works under every theme.
func (c *layeredComposer) Compose(theme Theme, userCSS string) (string, error) {
	var bundle strings.Builder

	bundle.WriteString(chromaStylesheet())

	for _, name := range layersFor(theme) {
		layer, err := assets.LoadStyle(name)
		if err != nil {
			return "", err
		}
		bundle.WriteString("\n")
		bundle.WriteString(layer)
	}

	if userCSS != "" {
		bundle.WriteString("\n")
		bundle.WriteString(userCSS)
	}

	return bundle.String(), nil
}

var (
	chromaCSSOnce sync.Once
	chromaCSS     string
)

// chromaStylesheet generates the class-based highlighting stylesheet once.
// The converter emits chroma classes (WithClasses), so the colors live here
// in the bundle instead of inline on every token.
func chromaStylesheet() string {
	chromaCSSOnce.Do(func() {
		var buf bytes.Buffer
		formatter := chromahtml.New(chromahtml.WithClasses(true))
		if err := formatter.WriteCSS(&buf, styles.Get("github")); err != nil {
			return
		}
		chromaCSS = buf.String()
	})
	return chromaCSS
}
