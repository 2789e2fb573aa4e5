package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// hunk builds a Hunk from a header and prefixed body lines.
func hunk(header string, body ...string) Hunk {
	h := Hunk{Header: header}
	for _, l := range body {
		h.Lines = append(h.Lines, Line{Kind: LineKind(l[0]), Content: l[1:]})
	}
	return h
}

// ============================================================================
// AlignHunk
// ============================================================================

func TestAlignHunk_PairsSimilarLines(t *testing.T) {
	h := hunk("@@ -10,3 +10,4 @@", " a", "-b", "+bb", "+c")

	rows := NewAligner().AlignHunk(h)
	require.Equal(t, []Row{
		Context(10, 10, "a"),
		Changed(11, 11, "b", "bb"),
		Added(12, "c"),
	}, rows)
}

func TestAlignHunk_ThresholdIsExclusive(t *testing.T) {
	// Similarity is exactly 60: not paired.
	rows := NewAligner().AlignHunk(hunk("@@ -1,1 +1,1 @@", "-abcdefg", "+abc"))
	require.Equal(t, []Row{
		Removed(1, "abcdefg"),
		Added(1, "abc"),
	}, rows)

	// Similarity is 61: paired.
	rows = NewAligner().AlignHunk(hunk("@@ -1,1 +1,1 @@", "-abcdefghijklmnopqrstuvwxy", "+abcdefghijk"))
	require.Equal(t, []Row{
		Changed(1, 1, "abcdefghijklmnopqrstuvwxy", "abcdefghijk"),
	}, rows)
}

func TestAlignHunk_GreedyAdvancesRemovalOnly(t *testing.T) {
	h := hunk("@@ -5,2 +5,1 @@", "-alpha beta", "-gamma delta", "+gamma delta")

	rows := NewAligner().AlignHunk(h)
	require.Equal(t, []Row{
		Removed(5, "alpha beta"),
		Changed(6, 5, "gamma delta", "gamma delta"),
	}, rows)
}

func TestAlignHunk_LeftoverAdditions(t *testing.T) {
	h := hunk("@@ -1,1 +1,3 @@", "-value := 1", "+value := 2", "+other := 3", "+third()")

	rows := NewAligner().AlignHunk(h)
	require.Equal(t, []Row{
		Changed(1, 1, "value := 1", "value := 2"),
		Added(2, "other := 3"),
		Added(3, "third()"),
	}, rows)
}

func TestAlignHunk_AdditionsBeforeRemovalsAreNotPaired(t *testing.T) {
	h := hunk("@@ -1,1 +1,1 @@", "+same line", "-same line")

	rows := NewAligner().AlignHunk(h)
	require.Equal(t, []Row{
		Added(1, "same line"),
		Removed(1, "same line"),
	}, rows)
}

func TestAlignHunk_EmptyHunk(t *testing.T) {
	a := NewAligner()
	require.Empty(t, a.AlignHunk(Hunk{Header: "@@ -7,0 +9,0 @@"}))

	oldLine, newLine := a.Counters()
	require.Equal(t, 7, oldLine)
	require.Equal(t, 9, newLine)
}

func TestAlignHunk_MalformedHeaderKeepsCounters(t *testing.T) {
	a := NewAligner()
	a.AlignHunk(hunk("@@ -3,1 +4,1 @@", " x"))

	rows := a.AlignHunk(hunk("@@", " y", "+z"))
	require.Equal(t, []Row{
		Context(4, 5, "y"),
		Added(6, "z"),
	}, rows)
}

func TestAlignHunk_NonNumericHeaderFieldStartsAtZero(t *testing.T) {
	rows := NewAligner().AlignHunk(hunk("@@ -x,1 +3,1 @@", " y"))
	require.Equal(t, []Row{Context(0, 3, "y")}, rows)
}

// ============================================================================
// AlignHunks
// ============================================================================

func TestAlignHunks_SeparatorBetweenHunks(t *testing.T) {
	hunks := ParseHunks("@@ -1,1 +1,1 @@\n a\n@@ -10,1 +10,2 @@\n b\n+c\n")

	rows := AlignHunks(hunks)
	require.Equal(t, []Row{
		Context(1, 1, "a"),
		Separator(),
		Context(10, 10, "b"),
		Added(11, "c"),
	}, rows)
}

func TestAlignHunks_NoHunks(t *testing.T) {
	require.Empty(t, AlignHunks(nil))
	require.Empty(t, AlignHunks(ParseHunks("no hunks here")))
}

func TestAlignHunks_IsDeterministic(t *testing.T) {
	text := "@@ -1,4 +1,4 @@\n a\n-foo(1)\n-bar(2)\n+foo(10)\n+baz()\n b\n"
	first := AlignHunks(ParseHunks(text))
	for range 10 {
		require.Equal(t, first, AlignHunks(ParseHunks(text)))
	}
}

// ============================================================================
// ContentLines / SpanCount
// ============================================================================

func TestContentLines(t *testing.T) {
	rows := []Row{
		Context(1, 1, "ctx"),
		Removed(2, "gone"),
		Changed(3, 2, "old", "new"),
		Separator(),
		Added(3, "fresh"),
	}

	require.Equal(t, []string{"ctx", "gone", "old", "new", "fresh"}, ContentLines(rows))

	total := 0
	for _, r := range rows {
		total += r.SpanCount()
	}
	require.Equal(t, len(ContentLines(rows)), total)
}

func TestRow_Sides(t *testing.T) {
	require.True(t, Context(1, 1, "x").HasOld())
	require.True(t, Context(1, 1, "x").HasNew())
	require.False(t, Added(1, "x").HasOld())
	require.True(t, Added(1, "x").HasNew())
	require.True(t, Removed(1, "x").HasOld())
	require.False(t, Removed(1, "x").HasNew())
	require.True(t, Changed(1, 1, "x", "y").HasOld())
	require.True(t, Changed(1, 1, "x", "y").HasNew())
	require.False(t, Separator().HasOld())
	require.False(t, Separator().HasNew())
}

// ============================================================================
// Properties
// ============================================================================

// genHunkText draws a single-hunk diff with contents from a tiny alphabet so
// that both paired and unpaired change blocks occur.
func genHunkText(t *rapid.T) (text string, oldStart, newStart int) {
	oldStart = rapid.IntRange(1, 500).Draw(t, "oldStart")
	newStart = rapid.IntRange(1, 500).Draw(t, "newStart")
	n := rapid.IntRange(0, 30).Draw(t, "lines")

	var b strings.Builder
	fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, n, newStart, n)
	for i := range n {
		prefix := rapid.SampledFrom([]string{" ", "+", "-"}).Draw(t, fmt.Sprintf("prefix%d", i))
		content := rapid.StringMatching(`[ab ]{0,6}`).Draw(t, fmt.Sprintf("content%d", i))
		b.WriteString(prefix + content + "\n")
	}
	return b.String(), oldStart, newStart
}

func TestAlignHunks_LineNumbersAreGapless(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text, oldStart, newStart := genHunkText(t)
		rows := AlignHunks(ParseHunks(text))

		wantOld, wantNew := oldStart, newStart
		for _, r := range rows {
			if r.HasOld() {
				require.Equal(t, wantOld, r.OldLine)
				wantOld++
			}
			if r.HasNew() {
				require.Equal(t, wantNew, r.NewLine)
				wantNew++
			}
		}
	})
}

func TestAlignHunks_EveryLineAppearsOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text, _, _ := genHunkText(t)
		hunks := ParseHunks(text)
		rows := AlignHunks(hunks)

		var removed, added int
		for _, l := range hunks[0].Lines {
			switch l.Kind {
			case KindRemoved:
				removed++
			case KindAdded:
				added++
			}
		}

		var gotOld, gotNew int
		for _, r := range rows {
			switch r.Kind {
			case RowRemoved:
				gotOld++
			case RowAdded:
				gotNew++
			case RowChanged:
				gotOld++
				gotNew++
			}
		}
		require.Equal(t, removed, gotOld)
		require.Equal(t, added, gotNew)
	})
}
