package mpe2pdf

import (
	"context"
	"os"
	"strings"
)

// Service converts Markdown to PDF. It is safe to reuse across conversions
// but not for concurrent use; the browser engine holds a single Chromium
// session. Close releases the browser when one was launched.
type Service struct {
	cfg serviceConfig

	normalizer markdownNormalizer
	converter  htmlConverter
	composer   styleComposer
	assembler  documentAssembler
	browser    renderEngine
	static     renderEngine
}

// Compile-time checks that the production components satisfy their
// interfaces.
var (
	_ markdownNormalizer = (*listNormalizer)(nil)
	_ htmlConverter      = (*goldmarkConverter)(nil)
	_ styleComposer      = (*layeredComposer)(nil)
	_ documentAssembler  = (*htmlAssembler)(nil)
	_ renderEngine       = (*browserEngine)(nil)
	_ renderEngine       = (*staticEngine)(nil)
)

// New creates a Service with the production pipeline. Use options to adjust
// the timeout, capture warnings, or inject engines.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			warnf:   func(string, ...any) {},
		},
		normalizer: newListNormalizer(),
		converter:  newGoldmarkConverter(),
		composer:   newLayeredComposer(),
		assembler:  &htmlAssembler{},
		static:     newStaticEngine(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.browser == nil {
		s.browser = newBrowserEngine(s.cfg.timeout)
	}

	return s
}

// Convert runs the full pipeline: normalize, convert to HTML, compose
// styles, assemble the document, and render to PDF bytes.
func (s *Service) Convert(ctx context.Context, in Input) ([]byte, error) {
	if strings.TrimSpace(in.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	in = in.withDefaults()
	if err := s.validate(in); err != nil {
		return nil, err
	}

	body := s.normalizer.Normalize(in.Markdown)
	cover := ""
	if strings.TrimSpace(in.Cover) != "" {
		cover = s.normalizer.Normalize(in.Cover)
	}

	bodyHTML, err := s.converter.ToHTML(ctx, body)
	if err != nil {
		return nil, err
	}
	coverHTML := ""
	if cover != "" {
		coverHTML, err = s.converter.ToHTML(ctx, cover)
		if err != nil {
			return nil, err
		}
	}

	css, err := s.composer.Compose(in.Theme, in.CSS)
	if err != nil {
		return nil, err
	}

	usesScripts := in.Mermaid || in.Math != MathNone

	doc := document{
		HTML: s.assembler.Assemble(assembleInput{
			Body:    bodyHTML,
			Cover:   coverHTML,
			CSS:     css,
			Title:   in.Title,
			BaseURL: in.BaseURL,
			Mermaid: in.Mermaid,
			Math:    in.Math,
		}),
		Markdown:      body,
		CoverMarkdown: cover,
		BaseDir:       baseDirFromURL(in.BaseURL),
		UsesScripts:   usesScripts,
	}

	if in.DebugHTMLPath != "" {
		if werr := os.WriteFile(in.DebugHTMLPath, []byte(doc.HTML), 0o644); werr != nil {
			s.cfg.warnf("could not write debug HTML to %s: %v", in.DebugHTMLPath, werr)
		}
	}

	// The auto fallback path emits the same notice from the dispatcher.
	if in.Engine == EngineStatic && usesScripts {
		s.cfg.warnf(staticDegradationNotice)
	}

	d := engineDispatcher{browser: s.browser, static: s.static, warnf: s.cfg.warnf}
	return d.render(ctx, in.Engine, doc, in.Page)
}

// Close releases engine resources. Safe to call when Convert was never
// called or the browser was never launched.
func (s *Service) Close() error {
	d := engineDispatcher{browser: s.browser, static: s.static, warnf: s.cfg.warnf}
	return d.close()
}

// validate rejects invalid enum values before any work is done.
func (s *Service) validate(in Input) error {
	if err := in.Engine.Validate(); err != nil {
		return err
	}
	if err := in.Theme.Validate(); err != nil {
		return err
	}
	if err := in.Math.Validate(); err != nil {
		return err
	}
	return in.Page.Validate()
}

// baseDirFromURL extracts a filesystem directory from a file:// base URL for
// the static engine, which resolves relative resources on disk rather than
// through a document base href. Non-file URLs yield an empty base.
func baseDirFromURL(baseURL string) string {
	if !strings.HasPrefix(baseURL, "file://") {
		return ""
	}
	dir := strings.TrimPrefix(baseURL, "file://")
	return strings.TrimSuffix(dir, "/")
}

// NormalizeMarkdown exposes the list-indentation and highlight normalization
// on its own, without rendering. Useful for inspecting what the converter
// will actually parse.
func NormalizeMarkdown(md string) string {
	return newListNormalizer().Normalize(md)
}
