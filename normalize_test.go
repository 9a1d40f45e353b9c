package mpe2pdf

import (
	"strings"
	"testing"
)

func TestNormalizeListIndentation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "two space nesting kept",
			input: "- a\n  - b\n    - c",
			want:  "- a\n  - b\n    - c",
		},
		{
			name:  "four space nesting mapped to semantic depth",
			input: "- a\n    - b\n        - c",
			want:  "- a\n  - b\n    - c",
		},
		{
			name:  "mixed indent widths in one list",
			input: "- a\n    - b\n  - c",
			want:  "- a\n  - b\n  - c",
		},
		{
			name:  "bullet markers canonicalized to dash",
			input: "* a\n+ b\n- c",
			want:  "- a\n- b\n- c",
		},
		{
			name:  "paren ordered markers become dot form",
			input: "1) a\n2) b",
			want:  "1. a\n2. b",
		},
		{
			name:  "child under ordered parent aligns to content column",
			input: "1. a\n  - b",
			want:  "1. a\n   - b",
		},
		{
			name:  "tab indent expands to one level",
			input: "- a\n\t- b",
			want:  "- a\n  - b",
		},
		{
			name:  "blank line keeps the list alive",
			input: "- a\n\n  - b",
			want:  "- a\n\n  - b",
		},
		{
			name:  "plain text resets the stack",
			input: "- a\n  - b\ndone\n- x\n  - y",
			want:  "- a\n  - b\ndone\n- x\n  - y",
		},
		{
			name:  "fenced code is untouched",
			input: "```\n    - not a list\n```",
			want:  "```\n    - not a list\n```",
		},
		{
			name:  "non list text passes through",
			input: "just a paragraph\nwith two lines",
			want:  "just a paragraph\nwith two lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeListIndentation(tt.input)
			if got != tt.want {
				t.Errorf("normalizeListIndentation(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureBlankBeforeLists(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "blank inserted after paragraph",
			input: "some text\n- a",
			want:  "some text\n\n- a",
		},
		{
			name:  "no insertion when blank already present",
			input: "some text\n\n- a",
			want:  "some text\n\n- a",
		},
		{
			name:  "no insertion between list items",
			input: "- a\n- b",
			want:  "- a\n- b",
		},
		{
			name:  "no insertion after heading",
			input: "# Title\n- a",
			want:  "# Title\n- a",
		},
		{
			name:  "fenced code untouched",
			input: "```\ntext\n- a\n```",
			want:  "```\ntext\n- a\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ensureBlankBeforeLists(tt.input)
			if got != tt.want {
				t.Errorf("ensureBlankBeforeLists(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	n := newListNormalizer()

	t.Run("crlf and cr become lf", func(t *testing.T) {
		got := n.Normalize("a\r\nb\rc")
		if got != "a\nb\nc" {
			t.Errorf("got %q, want %q", got, "a\nb\nc")
		}
	})

	t.Run("blank runs compressed to one blank line", func(t *testing.T) {
		got := n.Normalize("a\n\n\n\n\nb")
		if got != "a\n\nb" {
			t.Errorf("got %q, want %q", got, "a\n\nb")
		}
	})

	t.Run("highlight syntax becomes placeholders", func(t *testing.T) {
		got := n.Normalize("this is ==important== text")
		want := "this is " + markStartPlaceholder + "important" + markEndPlaceholder + " text"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unmatched highlight markers pass through", func(t *testing.T) {
		got := n.Normalize("a == b")
		if got != "a == b" {
			t.Errorf("got %q, want %q", got, "a == b")
		}
	})

	t.Run("all transforms compose", func(t *testing.T) {
		input := "intro\r\n* a\r\n    * b\r\n\r\n\r\n\r\nend"
		got := n.Normalize(input)
		want := "intro\n\n- a\n  - b\n\nend"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestConvertMarkPlaceholders(t *testing.T) {
	in := "<p>" + markStartPlaceholder + "hi" + markEndPlaceholder + "</p>"
	got := convertMarkPlaceholders(in)
	if got != "<p><mark>hi</mark></p>" {
		t.Errorf("got %q", got)
	}
	if strings.ContainsAny(got, markStartPlaceholder+markEndPlaceholder) {
		t.Error("placeholders left in output")
	}
}
