package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mpe2pdf "github.com/mpetools/mpe2pdf"
	"github.com/mpetools/mpe2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input file specified")
	ErrTooManyArgs      = errors.New("expected exactly one input file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrReadCover        = errors.New("failed to read cover file")
	ErrReadCSS          = errors.New("failed to read CSS file")
	ErrWritePDF         = errors.New("failed to write PDF file")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

// filePermissions for the written PDF: rw-r--r--.
const filePermissions = 0o644

// Converter is the interface the CLI needs from the conversion service.
type Converter interface {
	Convert(ctx context.Context, input mpe2pdf.Input) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*mpe2pdf.Service)(nil)

// newService builds the production service from resolved settings.
// Swapped out in tests.
var newService = func(timeout time.Duration, warnf func(format string, args ...any)) Converter {
	return mpe2pdf.New(
		mpe2pdf.WithTimeout(timeout),
		mpe2pdf.WithWarnings(warnf),
	)
}

// run orchestrates a single conversion: resolve settings, read inputs,
// convert, write the PDF.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		printUsage(env.Stderr)
		return err
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	in, err := buildInput(inputPath, flags, cfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.out.timeout, cfg)
	if err != nil {
		return err
	}

	warnf := func(format string, args ...any) {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "[WARN] "+format+"\n", args...)
		}
	}

	svc := newService(timeout, warnf)
	defer svc.Close()

	outputPath := resolveOutputPath(inputPath, flags.out.output)
	if flags.out.debugHTML {
		in.DebugHTMLPath = strings.TrimSuffix(outputPath, ".pdf") + ".html"
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "engine=%s theme=%s math=%s mermaid=%t page=%s\n",
			in.Engine, in.Theme, in.Math, in.Mermaid, in.Page.Size)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pdfBytes, err := svc.Convert(ctx, in)
	if err != nil {
		return err
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(outputPath, pdfBytes, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	if !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "[OK] %s -> %s (%v)\n",
				inputPath, outputPath, time.Since(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "[OK] Created %s\n", outputPath)
		}
	}

	return nil
}

// resolveInputPath validates the positional arguments.
func resolveInputPath(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrNoInput
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: got %d", ErrTooManyArgs, len(args))
	}
	if err := validateMarkdownExtension(args[0]); err != nil {
		return "", err
	}
	return args[0], nil
}

// validateMarkdownExtension checks for a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// resolveOutputPath derives the PDF path: explicit flag wins, otherwise the
// input path with its extension swapped for .pdf.
func resolveOutputPath(inputPath, flagOutput string) string {
	if flagOutput != "" {
		return flagOutput
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".pdf"
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.render.engine != "" {
		cfg.Engine = flags.render.engine
	}
	if flags.render.theme != "" {
		cfg.Theme = flags.render.theme
	}
	if flags.render.math != "" {
		cfg.Math = flags.render.math
	}
	if flags.render.noMermaid {
		disabled := false
		cfg.Mermaid = &disabled
	}
	if flags.page.size != "" {
		cfg.PageSize = flags.page.size
	}
	if flags.page.margin != "" {
		cfg.Margin = flags.page.margin
	}
	if flags.content.css != "" {
		cfg.CSSPath = flags.content.css
	}
}

// resolveTimeout parses the timeout flag, falling back to the config value
// in seconds.
func resolveTimeout(flagTimeout string, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	if cfg.Timeout > 0 {
		return time.Duration(cfg.Timeout) * time.Second, nil
	}
	return 30 * time.Second, nil
}

// buildInput assembles the library input from the resolved settings and the
// files on disk.
func buildInput(inputPath string, flags *convertFlags, cfg *config.Config) (mpe2pdf.Input, error) {
	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return mpe2pdf.Input{}, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	in := mpe2pdf.Input{
		Markdown: string(content),
		Title:    flags.content.title,
		Engine:   mpe2pdf.Engine(cfg.Engine),
		Theme:    mpe2pdf.Theme(cfg.Theme),
		Math:     mpe2pdf.MathMode(cfg.Math),
		Mermaid:  cfg.MermaidEnabled(),
	}

	if in.Title == "" {
		base := filepath.Base(inputPath)
		in.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if flags.content.cover != "" {
		cover, err := os.ReadFile(flags.content.cover) // #nosec G304 -- user-provided path
		if err != nil {
			return mpe2pdf.Input{}, fmt.Errorf("%w: %v", ErrReadCover, err)
		}
		in.Cover = string(cover)
	}

	if cfg.CSSPath != "" {
		css, err := os.ReadFile(cfg.CSSPath) // #nosec G304 -- user-provided path
		if err != nil {
			return mpe2pdf.Input{}, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		in.CSS = string(css)
	}

	margins, err := mpe2pdf.ParseMargins(cfg.Margin)
	if err != nil {
		return mpe2pdf.Input{}, err
	}
	in.Page = mpe2pdf.PageSettings{Size: cfg.PageSize, Margins: &margins}

	// Relative images and links resolve against the input's directory.
	absDir, err := filepath.Abs(filepath.Dir(inputPath))
	if err == nil {
		in.BaseURL = "file://" + filepath.ToSlash(absDir) + "/"
	}

	return in, nil
}
