package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/mrdiff/internal/comments"
	"github.com/zjrosen/mrdiff/internal/diff"
	"github.com/zjrosen/mrdiff/internal/highlight"
)

func plain(lines ...string) []highlight.LineSpans {
	return highlight.PlainSpans(lines)
}

// ============================================================================
// RenderRow
// ============================================================================

func TestRenderRow_Context(t *testing.T) {
	r := New(DefaultTheme())
	idx := comments.Index{}
	idx.Add("main.go", 20, comments.Comment{Author: "a", Body: "b"})

	oldPane, newPane := r.RenderRow(diff.Context(10, 20, "x := 1"), plain("x := 1"), "main.go", idx)

	require.Equal(t, PaneContext, oldPane.Kind)
	require.Equal(t, 10, oldPane.Number)
	require.Equal(t, IndicatorNone, oldPane.Indicator)
	require.Equal(t, "10    x := 1", oldPane.Plain())

	require.Equal(t, PaneContext, newPane.Kind)
	require.Equal(t, "20  C x := 1", newPane.Plain())
}

func TestRenderRow_Added(t *testing.T) {
	r := New(DefaultTheme())

	oldPane, newPane := r.RenderRow(diff.Added(12, "c"), plain("c"), "a.go", nil)
	require.Equal(t, PaneBlank, oldPane.Kind)
	require.Equal(t, "", oldPane.Plain())
	require.Equal(t, PaneAddition, newPane.Kind)
	require.Equal(t, "12    c", newPane.Plain())
}

func TestRenderRow_Removed(t *testing.T) {
	r := New(DefaultTheme())

	oldPane, newPane := r.RenderRow(diff.Removed(3, "gone"), plain("gone"), "a.go", nil)
	require.Equal(t, PaneDeletion, oldPane.Kind)
	require.Equal(t, "3     gone", oldPane.Plain())
	require.Equal(t, PaneBlank, newPane.Kind)
}

func TestRenderRow_ChangedUsesBothSpans(t *testing.T) {
	r := New(DefaultTheme())
	idx := comments.Index{}
	idx.Add("a.go", 11, comments.Comment{Author: "a", Body: "b"})

	spans := []highlight.LineSpans{
		{{Text: "b", Category: "variable"}},
		{{Text: "bb", Category: "variable"}},
	}
	oldPane, newPane := r.RenderRow(diff.Changed(11, 11, "b", "bb"), spans, "a.go", idx)

	require.Equal(t, PaneDeletion, oldPane.Kind)
	require.Equal(t, spans[0], oldPane.Spans)
	require.Equal(t, "11    b", oldPane.Plain())

	require.Equal(t, PaneAddition, newPane.Kind)
	require.Equal(t, spans[1], newPane.Spans)
	require.Equal(t, "11  C bb", newPane.Plain())
}

func TestRenderRow_Separator(t *testing.T) {
	oldPane, newPane := New(DefaultTheme()).RenderRow(diff.Separator(), nil, "a.go", nil)
	require.Equal(t, PaneDivider, oldPane.Kind)
	require.Equal(t, PaneDivider, newPane.Kind)
	require.Zero(t, oldPane.Number)
	require.Equal(t, dividerPlain, newPane.Plain())
}

func TestRenderRow_MissingSpansFallBackToContent(t *testing.T) {
	r := New(DefaultTheme())

	oldPane, newPane := r.RenderRow(diff.Changed(1, 1, "old", "new"), plain("old"), "a.go", nil)
	require.Equal(t, "old", oldPane.Text())
	require.Equal(t, "new", newPane.Text())

	oldPane, newPane = r.RenderRow(diff.Context(1, 1, "ctx"), nil, "a.go", nil)
	require.Equal(t, "ctx", oldPane.Text())
	require.Equal(t, "ctx", newPane.Text())
}

func TestPlain_StripsNewlines(t *testing.T) {
	line := PaneLine{Kind: PaneContext, Number: 7, Indicator: IndicatorNone, Spans: plain("a\r\n")[0]}
	require.Equal(t, "7     a", line.Plain())
}

func TestPaneKind_String(t *testing.T) {
	require.Equal(t, "addition", PaneAddition.String())
	require.Equal(t, "divider", PaneDivider.String())
	require.Equal(t, "unknown", PaneKind(99).String())
}

// ============================================================================
// RenderRows
// ============================================================================

func TestRenderRows_ConsumesSpansInContentOrder(t *testing.T) {
	rows := diff.AlignHunks(diff.ParseHunks("@@ -10,3 +10,4 @@\n a\n-b\n+bb\n+c\n@@ -40,1 +41,1 @@\n z\n"))
	spans := plain(diff.ContentLines(rows)...)

	oldPane, newPane := New(DefaultTheme()).RenderRows(rows, spans, "f.txt", nil)

	var oldText, newText []string
	for i := range oldPane {
		oldText = append(oldText, oldPane[i].Plain())
		newText = append(newText, newPane[i].Plain())
	}
	require.Equal(t, []string{"10    a", "11    b", "", dividerPlain, "40    z"}, oldText)
	require.Equal(t, []string{"10    a", "11    bb", "12    c", dividerPlain, "41    z"}, newText)
}

func TestRenderRows_ShortSpansDoNotPanic(t *testing.T) {
	rows := []diff.Row{diff.Changed(1, 1, "x", "y"), diff.Added(2, "z")}

	oldPane, newPane := New(DefaultTheme()).RenderRows(rows, plain("x"), "a.go", nil)
	require.Len(t, oldPane, 2)
	require.Len(t, newPane, 2)
	require.Equal(t, "y", newPane[0].Text())
	require.Equal(t, "z", newPane[1].Text())
}

func TestRenderRows_PaneParity(t *testing.T) {
	r := New(DefaultTheme())
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 25).Draw(t, "lines")
		var b strings.Builder
		b.WriteString("@@ -1,1 +1,1 @@\n")
		for i := range n {
			prefix := rapid.SampledFrom([]string{" ", "+", "-", "@@ -5 +5 @@"}).Draw(t, fmt.Sprintf("prefix%d", i))
			if strings.HasPrefix(prefix, "@@") {
				b.WriteString(prefix + "\n")
				continue
			}
			b.WriteString(prefix + rapid.StringMatching(`[a-c ]{0,5}`).Draw(t, fmt.Sprintf("content%d", i)) + "\n")
		}

		rows := diff.AlignHunks(diff.ParseHunks(b.String()))
		lines := diff.ContentLines(rows)
		drop := rapid.IntRange(0, len(lines)).Draw(t, "drop")

		oldPane, newPane := r.RenderRows(rows, plain(lines[:len(lines)-drop]...), "a.txt", nil)
		require.Len(t, oldPane, len(rows))
		require.Len(t, newPane, len(rows))
	})
}

// ============================================================================
// Style / SideBySide
// ============================================================================

func TestStyle_PadsAndTruncatesToWidth(t *testing.T) {
	r := New(DefaultTheme())
	line := PaneLine{Kind: PaneAddition, Number: 3, Indicator: IndicatorNone, Spans: plain("\tvalue := compute()")[0]}

	require.Equal(t, 40, lipgloss.Width(r.Style(line, 40)))
	require.Equal(t, 10, lipgloss.Width(r.Style(line, 10)))
	require.Equal(t, "3         value := compute()", ansi.Strip(r.Style(line, 0)))
	require.Equal(t, 12, lipgloss.Width(r.Style(blankLine(), 12)))
	require.Equal(t, strings.Repeat(dividerRune, 6), ansi.Strip(r.Style(dividerLine(), 6)))
}

func TestStyle_IndicatorMarker(t *testing.T) {
	r := New(DefaultTheme())
	var marked []int
	r.SetIndicatorMarker(func(line int, s string) string {
		marked = append(marked, line)
		return "[" + s + "]"
	})

	commented := PaneLine{Kind: PaneContext, Number: 5, Indicator: IndicatorComment, Spans: plain("x")[0]}
	require.Equal(t, "5   [C ]x", ansi.Strip(r.Style(commented, 0)))

	r.Style(PaneLine{Kind: PaneContext, Number: 6, Indicator: IndicatorNone, Spans: plain("y")[0]}, 0)
	require.Equal(t, []int{5}, marked)
}

func TestSideBySidePlain(t *testing.T) {
	oldPane := []PaneLine{
		{Kind: PaneDeletion, Number: 1, Indicator: IndicatorNone, Spans: plain("old line")[0]},
		dividerLine(),
	}
	newPane := []PaneLine{
		{Kind: PaneAddition, Number: 1, Indicator: IndicatorComment, Spans: plain("new line")[0]},
		dividerLine(),
	}

	got := SideBySidePlain(oldPane, newPane, 14)
	require.Equal(t,
		"1     old line │ 1   C new line\n"+
			strings.Repeat(dividerRune, 14)+" │ "+strings.Repeat(dividerRune, 14)+"\n",
		got)
}

func TestSideBySide_LineCount(t *testing.T) {
	r := New(DefaultTheme())
	oldPane := []PaneLine{blankLine(), blankLine(), blankLine()}
	newPane := []PaneLine{blankLine()}

	out := r.SideBySide(oldPane, newPane, 0)
	require.Equal(t, 3, strings.Count(out, "\n"))
	for _, l := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		require.Equal(t, 2*lipgloss.Width(dividerPlain)+lipgloss.Width(paneSeparator), lipgloss.Width(l))
	}
}
