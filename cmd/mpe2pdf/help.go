package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mpe2pdf <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file to PDF, styled like the MPE live preview.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file (.md or .markdown)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>     Output PDF path (default: input with .pdf)")
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path")
	fmt.Fprintln(w, "      --debug-html        Also write the assembled HTML next to the PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -e, --engine <s>        PDF engine: auto, browser, static (default: auto)")
	fmt.Fprintln(w, "      --theme <s>         CSS theme: mpe, github, minimal (default: mpe)")
	fmt.Fprintln(w, "      --math <s>          Math typesetting: none, mathjax, katex (default: mathjax)")
	fmt.Fprintln(w, "      --no-mermaid        Disable Mermaid diagram rendering")
	fmt.Fprintln(w, "  -t, --timeout <d>       Browser render timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>     Page size: a4, letter, legal (default: a4)")
	fmt.Fprintln(w, "      --margin <s>        Margins, CSS shorthand: \"20mm\", \"1in 15mm\",")
	fmt.Fprintln(w, "                          \"10mm 20mm 10mm 20mm\" (default: 20mm)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --cover <path>      Cover page Markdown file, own page before the body")
	fmt.Fprintln(w, "      --css <path>        Custom CSS file, appended after the theme")
	fmt.Fprintln(w, "      --title <s>         Document title (default: input filename)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Show detailed progress")
}
