package mpe2pdf

import (
	"html"
	"strings"
)

// CDN locations for the script-driven features. The assembler only emits
// references; nothing is bundled or cached locally.
const (
	mermaidJS    = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
	mathjaxJS    = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"
	katexCSS     = "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.css"
	katexJS      = "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/katex.min.js"
	katexAutoJS  = "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist/contrib/auto-render.min.js"
	defaultTitle = "Document"
)

// mermaidInit rewrites goldmark's fenced mermaid blocks into div.mermaid
// elements and kicks off rendering once the page has loaded.
const mermaidInit = `<script>
function transformMermaidBlocks(){
  const blocks = Array.from(document.querySelectorAll('pre > code.language-mermaid'));
  for (const code of blocks) {
    const pre = code.parentElement;
    const div = document.createElement('div');
    div.className = 'mermaid';
    div.textContent = code.textContent;
    pre.replaceWith(div);
  }
}
window.addEventListener('load', function(){
  transformMermaidBlocks();
  if (window.mermaid) { mermaid.initialize({startOnLoad: true}); }
});
</script>`

const mathjaxInit = `<script>
window.addEventListener('load', function(){
  if (window.MathJax && MathJax.typesetPromise) { MathJax.typesetPromise(); }
});
</script>`

const katexInit = `<script>
window.addEventListener('load', function(){
  if (window.renderMathInElement) {
    renderMathInElement(document.body, {
      delimiters: [
        {left: '$$', right: '$$', display: true},
        {left: '$', right: '$', display: false},
        {left: '\\(', right: '\\)', display: false},
        {left: '\\[', right: '\\]', display: true}
      ]
    });
  }
});
</script>`

// pageBreak separates the cover fragment from the body. The base stylesheet
// turns the class into a forced page break in print.
const pageBreak = `<div class="page-break"></div>`

// assembleInput carries everything the assembler needs for one document.
type assembleInput struct {
	Body    string // HTML fragment for the main document (required)
	Cover   string // HTML fragment emitted before the page break (optional)
	CSS     string // Composed style bundle
	Title   string
	BaseURL string // Emitted as <base href>, resolves relative resources
	Mermaid bool
	Math    MathMode
}

// documentAssembler wraps HTML fragments into one standalone document.
type documentAssembler interface {
	Assemble(in assembleInput) string
}

// htmlAssembler builds the assembled document string. Cover scripts execute
// identically to body scripts: the cover is part of the same document, so
// Mermaid and math apply to both.
type htmlAssembler struct{}

// Assemble produces the complete HTML document. The cover fragment, when
// present, precedes a page-break marker and then the body. Script tags for
// Mermaid are included iff mermaid is enabled; MathJax or KaTeX per the
// math mode; MathNone omits both.
func (a *htmlAssembler) Assemble(in assembleInput) string {
	title := in.Title
	if title == "" {
		title = defaultTitle
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title>\n")

	if in.BaseURL != "" {
		b.WriteString(`<base href="` + html.EscapeString(in.BaseURL) + "\">\n")
	}
	if in.Math == MathKaTeX {
		b.WriteString(`<link rel="stylesheet" href="` + katexCSS + "\">\n")
	}

	b.WriteString("<style>\n")
	b.WriteString(in.CSS)
	b.WriteString("\n</style>\n</head>\n<body>\n")

	b.WriteString(`<main class="markdown-body">` + "\n")
	if in.Cover != "" {
		b.WriteString(in.Cover)
		b.WriteString("\n")
		b.WriteString(pageBreak)
		b.WriteString("\n")
	}
	b.WriteString(in.Body)
	b.WriteString("\n</main>\n")

	if in.Mermaid {
		b.WriteString(`<script src="` + mermaidJS + "\"></script>\n")
		b.WriteString(mermaidInit)
		b.WriteString("\n")
	}

	switch in.Math {
	case MathJax:
		b.WriteString(`<script src="` + mathjaxJS + "\"></script>\n")
		b.WriteString(mathjaxInit)
		b.WriteString("\n")
	case MathKaTeX:
		b.WriteString(`<script src="` + katexJS + "\"></script>\n")
		b.WriteString(`<script src="` + katexAutoJS + "\"></script>\n")
		b.WriteString(katexInit)
		b.WriteString("\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
