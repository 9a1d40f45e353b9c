package mpe2pdf

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/mpetools/mpe2pdf/internal/fileutil"
)

// staticCreationDate pins the PDF metadata clock so the static engine is
// byte-deterministic: the same input always produces the same file.
var staticCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// staticEngine renders through the fpdf-based mdtopdf layout engine. No
// browser and no script execution: Mermaid diagrams and math expressions
// stay as their source text. This is the documented degradation of the
// fallback path, not an error. Because the engine lays out Markdown
// directly, it consumes the normalized Markdown rather than the assembled
// HTML, and the CSS bundle does not apply.
type staticEngine struct{}

func newStaticEngine() *staticEngine { return &staticEngine{} }

func (e *staticEngine) Name() string { return string(EngineStatic) }

func (e *staticEngine) Close() error { return nil }

// paperName maps page sizes to the names fpdf expects.
func paperName(size string) string {
	switch strings.ToLower(size) {
	case PageSizeLetter:
		return "Letter"
	case PageSizeLegal:
		return "Legal"
	default:
		return "A4"
	}
}

// Render lays out the normalized Markdown into a PDF. A cover, when
// present, is joined to the body with a horizontal rule and rules are
// promoted to page breaks, so the cover ends up alone on the first page.
func (e *staticEngine) Render(ctx context.Context, doc document, page PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := doc.Markdown
	if doc.CoverMarkdown != "" {
		md = doc.CoverMarkdown + "\n\n---\n\n" + md
	}

	outPath, cleanup, err := fileutil.TempFilePath("pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	renderer := mdtopdf.NewPdfRenderer("P", paperName(page.Size), outPath, "", nil, mdtopdf.LIGHT)
	renderer.InputBaseURL = doc.BaseDir
	if doc.CoverMarkdown != "" {
		renderer.HorizontalRuleNewPage = true
	}

	renderer.Pdf.SetCreationDate(staticCreationDate)
	renderer.Pdf.SetMargins(
		page.Margins.Left*pointsPerInch,
		page.Margins.Top*pointsPerInch,
		page.Margins.Right*pointsPerInch,
	)
	renderer.Pdf.SetAutoPageBreak(true, page.Margins.Bottom*pointsPerInch)

	if err := renderer.Process([]byte(md)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := os.ReadFile(outPath) // #nosec G304 -- temp path created above
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// pointsPerInch converts the inch-based page settings to fpdf's point unit.
const pointsPerInch = 72.0
