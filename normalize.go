package mpe2pdf

import (
	"regexp"
	"strings"
)

// Precompiled patterns for the normalizer.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.+?)==`)

	// Fenced code block delimiter (backticks or tildes)
	fencedCodeBlock = regexp.MustCompile("^\\s*(```|~~~)")

	// List item: captures indent, marker, and the space after the marker
	listItemPattern = regexp.MustCompile(`^([ \t]*)([-*+]|\d+[.)])([ \t]+)`)

	// Header pattern (ATX style)
	headerPattern = regexp.MustCompile(`^#{1,6}\s`)

	// Indented code block (4 spaces or tab), only meaningful outside lists
	indentedCodeBlock = regexp.MustCompile(`^(    |\t)`)
)

// Highlight placeholders use Unicode Private Use Area characters so the
// ==text== syntax survives goldmark without enabling raw HTML. The
// assembler converts them to <mark> tags after HTML generation.
const (
	markStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	markEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// markdownNormalizer defines the contract for Markdown preprocessing.
type markdownNormalizer interface {
	Normalize(content string) string
}

// listNormalizer repairs nested-list indentation so the parser's native
// nesting rules reproduce the source's visual hierarchy. It is a pure text
// transform: unrecognized constructs pass through unchanged and no input
// can make it fail.
type listNormalizer struct{}

func newListNormalizer() *listNormalizer { return &listNormalizer{} }

// Normalize applies all transformations in order: line endings first, then
// list repair, then blank-line insertion before list starts, then highlight
// placeholders and blank-line compression.
func (n *listNormalizer) Normalize(content string) string {
	content = normalizeLineEndings(content)
	content = normalizeListIndentation(content)
	content = ensureBlankBeforeLists(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, markStartPlaceholder+"$1"+markEndPlaceholder)
}

// convertMarkPlaceholders converts placeholder markers to <mark> tags.
// Called after goldmark HTML conversion.
func convertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, markStartPlaceholder, "<mark>"),
		markEndPlaceholder, "</mark>",
	)
}

// listLevel records one observed nesting level while scanning a list.
type listLevel struct {
	rawIndent int // indentation width as written in the source
	canonical int // indentation width in the rewritten output
	content   int // width of marker plus following space, for child alignment
}

// normalizeListIndentation rewrites list-item indentation to a canonical
// form. Raw column counts are not trusted: a stack of observed indentation
// widths maps each item to its semantic depth, so 2- and 4-space indents
// mixed within one list, and ordered/unordered markers at adjacent levels,
// all nest the way they look in the source. Each depth is indented to its
// parent's content column, which is what the CommonMark nesting rules
// require for both marker kinds.
func normalizeListIndentation(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	var stack []listLevel
	inCode := false

	for _, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCode = !inCode
			out = append(out, line)
			continue
		}
		if inCode {
			out = append(out, line)
			continue
		}

		m := listItemPattern.FindStringSubmatch(line)
		if m == nil {
			// Blank lines keep the stack alive: a list interrupted by a
			// blank line and continued afterwards is still the same list.
			// Any other unindented text ends the list.
			if isBlankLine(line) || (len(stack) > 0 && leadingWidth(line) >= stack[len(stack)-1].canonical) {
				out = append(out, line)
				continue
			}
			stack = nil
			out = append(out, line)
			continue
		}

		indent := displayWidth(m[1])
		marker := canonicalMarker(m[2])
		rest := line[len(m[0]):]

		// Pop levels deeper than this item, then push a new level if the
		// item is more indented than the current one.
		for len(stack) > 0 && indent < stack[len(stack)-1].rawIndent {
			stack = stack[:len(stack)-1]
		}
		switch {
		case len(stack) == 0:
			stack = append(stack, listLevel{rawIndent: indent, canonical: 0})
		case indent > stack[len(stack)-1].rawIndent:
			parent := stack[len(stack)-1]
			stack = append(stack, listLevel{
				rawIndent: indent,
				canonical: parent.canonical + parent.content,
			})
		}

		top := &stack[len(stack)-1]
		top.content = len(marker) + 1

		out = append(out, strings.Repeat(" ", top.canonical)+marker+" "+rest)
	}

	return strings.Join(out, "\n")
}

// canonicalMarker normalizes bullet markers to "-" and ordered markers to
// trailing-dot form, so adjacent levels never flip bullet style mid-list.
func canonicalMarker(marker string) string {
	switch marker {
	case "*", "+", "-":
		return "-"
	}
	if strings.HasSuffix(marker, ")") {
		return strings.TrimSuffix(marker, ")") + "."
	}
	return marker
}

// displayWidth counts indentation columns, expanding tabs to 4.
func displayWidth(indent string) int {
	w := 0
	for _, r := range indent {
		if r == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

// leadingWidth returns the indentation width of a line.
func leadingWidth(line string) int {
	trimmed := strings.TrimLeft(line, " \t")
	return displayWidth(line[:len(line)-len(trimmed)])
}

// ensureBlankBeforeLists adds a blank line before the first item of a list
// when the previous line is plain text, so the parser starts a new list
// instead of folding the item into the paragraph. Skips fenced and indented
// code blocks.
func ensureBlankBeforeLists(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	inCode := false
	prev := ""

	for i, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCode = !inCode
		}
		if inCode || indentedCodeBlock.MatchString(line) || i == 0 {
			out = append(out, line)
			prev = line
			continue
		}

		if isListItem(line) && !isBlankLine(prev) && !isListItem(prev) && !headerPattern.MatchString(prev) {
			out = append(out, "")
		}
		out = append(out, line)
		prev = line
	}

	return strings.Join(out, "\n")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isListItem returns true if the line starts with a list marker.
func isListItem(line string) bool {
	return listItemPattern.MatchString(line)
}
