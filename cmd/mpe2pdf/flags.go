package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags selecting how the document is rendered.
type renderFlags struct {
	engine    string
	theme     string
	math      string
	noMermaid bool
}

// pageFlags holds page geometry flags.
type pageFlags struct {
	size   string
	margin string
}

// contentFlags holds flags that add or alter document content.
type contentFlags struct {
	cover string
	css   string
	title string
}

// outputFlags holds output destination and debugging flags.
type outputFlags struct {
	output    string
	debugHTML bool
	timeout   string
}

// convertFlags holds all CLI flags.
type convertFlags struct {
	common  commonFlags
	render  renderFlags
	page    pageFlags
	content contentFlags
	out     outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: auto, browser, static")
	fs.StringVar(&f.theme, "theme", "", "CSS theme: mpe, github, minimal")
	fs.StringVar(&f.math, "math", "", "math typesetting: none, mathjax, katex")
	fs.BoolVar(&f.noMermaid, "no-mermaid", false, "disable Mermaid diagram rendering")
}

// addPageFlags adds page geometry flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.StringVar(&f.margin, "margin", "", "margins, CSS shorthand (e.g. \"20mm\", \"1in 15mm\")")
}

// addContentFlags adds content flags to a FlagSet.
func addContentFlags(fs *flag.FlagSet, f *contentFlags) {
	fs.StringVar(&f.cover, "cover", "", "cover page markdown file")
	fs.StringVar(&f.css, "css", "", "custom CSS file, appended after the theme")
	fs.StringVar(&f.title, "title", "", "document title (default: input filename)")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: input with .pdf)")
	fs.BoolVar(&f.debugHTML, "debug-html", false, "also write the assembled HTML next to the PDF")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser render timeout (e.g. 30s, 2m)")
}

// parseFlags parses all CLI flags and returns positional arguments.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("mpe2pdf", flag.ContinueOnError)
	f := &convertFlags{}

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addPageFlags(fs, &f.page)
	addContentFlags(fs, &f.content)
	addOutputFlags(fs, &f.out)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
