package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/diff"
	"github.com/zjrosen/mrdiff/internal/highlight"
	"github.com/zjrosen/mrdiff/internal/log"
)

// tabWidth is how many spaces a tab expands to when styling.
const tabWidth = 4

// Renderer builds pane lines from rows and styles them for the terminal.
type Renderer struct {
	theme  Theme
	marker func(line int, indicator string) string
}

// New creates a renderer using the given theme.
func New(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// SetIndicatorMarker installs a hook that wraps the styled comment indicator
// of a new-pane line, e.g. to make it clickable.
func (r *Renderer) SetIndicatorMarker(fn func(line int, indicator string) string) {
	r.marker = fn
}

// RenderRow produces the old and new pane lines of one row. spans holds the
// highlight spans of the row's content lines: one entry, or old then new for
// a Changed row. Missing entries fall back to plain text.
func (r *Renderer) RenderRow(row diff.Row, spans []highlight.LineSpans, path string, lookup comments.Lookup) (oldPane, newPane PaneLine) {
	switch row.Kind {
	case diff.RowContext:
		s := spanAt(spans, 0, row.NewContent)
		oldPane = PaneLine{Kind: PaneContext, Number: row.OldLine, Indicator: IndicatorNone, Spans: s}
		newPane = PaneLine{Kind: PaneContext, Number: row.NewLine, Indicator: indicator(lookup, path, row.NewLine), Spans: s}

	case diff.RowAdded:
		oldPane = blankLine()
		newPane = PaneLine{
			Kind:      PaneAddition,
			Number:    row.NewLine,
			Indicator: indicator(lookup, path, row.NewLine),
			Spans:     spanAt(spans, 0, row.NewContent),
		}

	case diff.RowRemoved:
		oldPane = PaneLine{Kind: PaneDeletion, Number: row.OldLine, Indicator: IndicatorNone, Spans: spanAt(spans, 0, row.OldContent)}
		newPane = blankLine()

	case diff.RowChanged:
		oldPane = PaneLine{Kind: PaneDeletion, Number: row.OldLine, Indicator: IndicatorNone, Spans: spanAt(spans, 0, row.OldContent)}
		newPane = PaneLine{
			Kind:      PaneAddition,
			Number:    row.NewLine,
			Indicator: indicator(lookup, path, row.NewLine),
			Spans:     spanAt(spans, 1, row.NewContent),
		}

	default:
		oldPane, newPane = dividerLine(), dividerLine()
	}
	return oldPane, newPane
}

// RenderRows renders every row. spans is the flat list returned for
// diff.ContentLines(rows); each row consumes row.SpanCount() entries.
func (r *Renderer) RenderRows(rows []diff.Row, spans []highlight.LineSpans, path string, lookup comments.Lookup) (oldPane, newPane []PaneLine) {
	if need := countSpans(rows); len(spans) < need {
		log.Debug(log.CatRender, "fewer spans than content lines, padding with plain text",
			"path", path, "spans", len(spans), "lines", need)
	}

	oldPane = make([]PaneLine, 0, len(rows))
	newPane = make([]PaneLine, 0, len(rows))
	cursor := 0
	for _, row := range rows {
		n := row.SpanCount()
		var rowSpans []highlight.LineSpans
		if cursor < len(spans) {
			rowSpans = spans[cursor:min(cursor+n, len(spans))]
		}
		cursor += n

		o, nw := r.RenderRow(row, rowSpans, path, lookup)
		oldPane = append(oldPane, o)
		newPane = append(newPane, nw)
	}
	return oldPane, newPane
}

// Style renders a pane line with colors. A positive width truncates or pads
// the result to exactly that many cells, painting the padding with the line
// background. Tabs expand to spaces.
func (r *Renderer) Style(line PaneLine, width int) string {
	if line.Kind == PaneDivider {
		if width <= 0 {
			width = lipgloss.Width(dividerPlain)
		}
		return lipgloss.NewStyle().Foreground(r.theme.Divider).Render(strings.Repeat(dividerRune, width))
	}

	base := lipgloss.NewStyle()
	if bg := r.theme.background(line.Kind); bg != nil {
		base = base.Background(bg)
	}

	var b strings.Builder
	if line.Kind != PaneBlank {
		b.WriteString(base.Foreground(r.theme.LineNumber).Render(fmt.Sprintf("%-*d", lineNumberWidth, line.Number)))
		b.WriteString(r.styleIndicator(base, line))
		for _, f := range line.Spans {
			text := expandTabs(stripNewlines(f.Text))
			if text == "" {
				continue
			}
			b.WriteString(fragmentStyle(base, f).Render(text))
		}
	}

	out := b.String()
	if width <= 0 {
		return out
	}
	if lipgloss.Width(out) > width {
		out = ansi.Truncate(out, width, "")
	}
	if pad := width - lipgloss.Width(out); pad > 0 {
		out += base.Render(strings.Repeat(" ", pad))
	}
	return out
}

// StyleLines styles every line of a pane at the given width.
func (r *Renderer) StyleLines(lines []PaneLine, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Style(l, width)
	}
	return out
}

func (r *Renderer) styleIndicator(base lipgloss.Style, line PaneLine) string {
	if !line.HasComments() {
		return base.Render(line.Indicator)
	}
	s := base.Foreground(r.theme.CommentIndicator).Bold(true).Render(line.Indicator)
	if r.marker != nil {
		s = r.marker(line.Number, s)
	}
	return s
}

func fragmentStyle(base lipgloss.Style, f highlight.Fragment) lipgloss.Style {
	if !f.Styled() {
		return base
	}
	s := base
	if f.Style.Foreground != "" {
		s = s.Foreground(lipgloss.Color(f.Style.Foreground))
	}
	return s.Bold(f.Style.Bold).Italic(f.Style.Italic)
}

func indicator(lookup comments.Lookup, path string, line int) string {
	if lookup != nil && lookup.Has(path, line) {
		return IndicatorComment
	}
	return IndicatorNone
}

func spanAt(spans []highlight.LineSpans, i int, content string) highlight.LineSpans {
	if i < len(spans) && spans[i] != nil {
		return spans[i]
	}
	return highlight.PlainLine(content)
}

func countSpans(rows []diff.Row) int {
	n := 0
	for _, r := range rows {
		n += r.SpanCount()
	}
	return n
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
