// Package render turns aligned diff rows and their highlight spans into the
// lines of the old and new panes.
package render

import (
	"fmt"
	"strings"

	"github.com/zjrosen/mrdiff/internal/highlight"
)

// PaneKind tags a pane line.
type PaneKind int

const (
	PaneContext PaneKind = iota
	PaneAddition
	PaneDeletion
	PaneBlank   // filler opposite an unpaired addition or removal
	PaneDivider // hunk boundary
)

// String returns a human-readable name for the pane kind.
func (k PaneKind) String() string {
	switch k {
	case PaneContext:
		return "context"
	case PaneAddition:
		return "addition"
	case PaneDeletion:
		return "deletion"
	case PaneBlank:
		return "blank"
	case PaneDivider:
		return "divider"
	default:
		return "unknown"
	}
}

// Gutter layout.
const (
	lineNumberWidth  = 4
	IndicatorComment = "C "
	IndicatorNone    = "  "
	dividerRune      = "─"
	dividerPlain     = "────────"
)

// PaneLine is one line of one pane.
type PaneLine struct {
	Kind      PaneKind
	Number    int
	Indicator string
	Spans     highlight.LineSpans
}

// Text returns the line content without its gutter.
func (l PaneLine) Text() string {
	return stripNewlines(l.Spans.Text())
}

// HasComments reports whether the line carries the comment indicator.
func (l PaneLine) HasComments() bool {
	return l.Indicator == IndicatorComment
}

// Plain returns the unstyled line: the line number left-aligned in four
// columns, the indicator, then the content.
func (l PaneLine) Plain() string {
	switch l.Kind {
	case PaneBlank:
		return ""
	case PaneDivider:
		return dividerPlain
	}
	return fmt.Sprintf("%-*d", lineNumberWidth, l.Number) + l.Indicator + l.Text()
}

func blankLine() PaneLine {
	return PaneLine{Kind: PaneBlank}
}

func dividerLine() PaneLine {
	return PaneLine{Kind: PaneDivider}
}

func stripNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
