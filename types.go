package mpe2pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Engine selects the PDF rendering strategy.
type Engine string

// Engines. EngineBrowser drives headless Chromium and executes page scripts
// (Mermaid, MathJax, KaTeX). EngineStatic lays out the document without a
// browser; script-driven content is skipped. EngineAuto prefers the browser
// and falls back to static when the browser cannot launch.
const (
	EngineAuto    Engine = "auto"
	EngineBrowser Engine = "browser"
	EngineStatic  Engine = "static"
)

// Validate checks that the engine is a known value.
func (e Engine) Validate() error {
	switch e {
	case EngineAuto, EngineBrowser, EngineStatic:
		return nil
	}
	return fmt.Errorf("%w: %q (must be auto, browser, or static)", ErrInvalidEngine, string(e))
}

// Theme selects the CSS layering preset.
type Theme string

// Themes. ThemeMinimal uses the base stylesheet only, ThemeGitHub adds the
// GitHub layer, ThemeMPE (default) adds the MPE enhancement layer on top.
const (
	ThemeMPE     Theme = "mpe"
	ThemeGitHub  Theme = "github"
	ThemeMinimal Theme = "minimal"
)

// Validate checks that the theme is a known value.
func (t Theme) Validate() error {
	switch t {
	case ThemeMPE, ThemeGitHub, ThemeMinimal:
		return nil
	}
	return fmt.Errorf("%w: %q (must be mpe, github, or minimal)", ErrInvalidTheme, string(t))
}

// MathMode selects the math typesetting library included in the document.
type MathMode string

// Math modes. MathNone omits both script tags.
const (
	MathNone  MathMode = "none"
	MathJax   MathMode = "mathjax"
	MathKaTeX MathMode = "katex"
)

// Validate checks that the math mode is a known value.
func (m MathMode) Validate() error {
	switch m {
	case MathNone, MathJax, MathKaTeX:
		return nil
	}
	return fmt.Errorf("%w: %q (must be none, mathjax, or katex)", ErrInvalidMathMode, string(m))
}

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// paperDimensions maps page sizes to width and height in inches.
var paperDimensions = map[string][2]float64{
	PageSizeA4:     {8.27, 11.69},
	PageSizeLetter: {8.5, 11},
	PageSizeLegal:  {8.5, 14},
}

// Margins holds the four page margins in inches.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns the default 20mm margins on all sides.
func DefaultMargins() Margins {
	m := mmToInches(20)
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// ParseMargins parses a CSS-style margin shorthand: one value applies to all
// sides, two values are vertical/horizontal, four are top right bottom left.
// Each value is a length with an optional unit (mm, cm, in, pt, px); bare
// numbers are millimeters.
func ParseMargins(shorthand string) (Margins, error) {
	parts := strings.Fields(shorthand)
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := parseLength(p)
		if err != nil {
			return Margins{}, err
		}
		values = append(values, v)
	}

	switch len(values) {
	case 1:
		return Margins{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}, nil
	case 2:
		return Margins{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 4:
		return Margins{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	}
	return Margins{}, fmt.Errorf("%w: %q (expected 1, 2, or 4 values)", ErrInvalidMargin, shorthand)
}

// parseLength converts a CSS length to inches.
func parseLength(s string) (float64, error) {
	unit := "mm"
	num := s
	for _, u := range []string{"mm", "cm", "in", "pt", "px"} {
		if strings.HasSuffix(s, u) {
			unit = u
			num = strings.TrimSuffix(s, u)
			break
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}

	switch unit {
	case "mm":
		return mmToInches(v), nil
	case "cm":
		return mmToInches(v * 10), nil
	case "in":
		return v, nil
	case "pt":
		return v / 72, nil
	case "px":
		return v / 96, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
}

func mmToInches(mm float64) float64 { return mm / 25.4 }

// PageSettings configures PDF page dimensions. A nil Margins means the
// 20mm default; an explicit zero value means zero margins.
type PageSettings struct {
	Size    string // "a4", "letter", "legal"
	Margins *Margins
}

// DefaultPageSettings returns A4 with 20mm margins, matching the MPE
// preview's print defaults.
func DefaultPageSettings() PageSettings {
	m := DefaultMargins()
	return PageSettings{Size: PageSizeA4, Margins: &m}
}

// Validate checks that page settings are valid.
func (p PageSettings) Validate() error {
	if _, ok := paperDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidPageSize, p.Size)
	}
	return nil
}

// paper returns the page width and height in inches.
func (p PageSettings) paper() (width, height float64) {
	d := paperDimensions[strings.ToLower(p.Size)]
	return d[0], d[1]
}

// Input is the resolved render configuration for one conversion: a single
// immutable snapshot consumed by the assembler and the renderer.
type Input struct {
	Markdown string // Markdown content (required)
	Cover    string // Cover page Markdown, rendered before a page break (optional)
	Title    string // Document title for the HTML head (optional)
	CSS      string // User CSS, appended after the theme layer (optional)
	BaseURL  string // Base URL for relative resources, e.g. file:///dir/ (optional)

	Theme   Theme    // Defaults to ThemeMPE
	Math    MathMode // Defaults to MathJax
	Mermaid bool     // Include Mermaid script tags

	Engine Engine       // Defaults to EngineAuto
	Page   PageSettings // Zero value means DefaultPageSettings

	// DebugHTMLPath, when set, persists the assembled HTML document to this
	// path before rendering. A failed write is reported but does not abort
	// PDF production.
	DebugHTMLPath string
}

// withDefaults fills unset fields with their documented defaults. Margins
// use a nil check, not the zero value, so explicit zero margins survive.
func (in Input) withDefaults() Input {
	if in.Theme == "" {
		in.Theme = ThemeMPE
	}
	if in.Math == "" {
		in.Math = MathJax
	}
	if in.Engine == "" {
		in.Engine = EngineAuto
	}
	if in.Page.Size == "" {
		in.Page.Size = PageSizeA4
	}
	if in.Page.Margins == nil {
		m := DefaultMargins()
		in.Page.Margins = &m
	}
	return in
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	warnf   func(format string, args ...any)
}

// defaultTimeout bounds the browser render (page load, script execution,
// PDF printing).
const defaultTimeout = 30 * time.Second

// WithTimeout sets the browser rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mpe2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithWarnings routes non-fatal warnings (engine fallback, degraded script
// features, debug-HTML write failures) to fn. The default discards them.
func WithWarnings(fn func(format string, args ...any)) Option {
	return func(s *Service) {
		if fn != nil {
			s.cfg.warnf = fn
		}
	}
}

// WithEngines injects the browser and static engines, e.g. fakes in tests.
// Nil leaves the production engine in place.
func WithEngines(browser, static renderEngine) Option {
	return func(s *Service) {
		if browser != nil {
			s.browser = browser
		}
		if static != nil {
			s.static = static
		}
	}
}
