package diff

import "github.com/zjrosen/mrdiff/internal/log"

// RowKind tags a render row.
type RowKind int

const (
	RowContext   RowKind = iota // unchanged line, shown in both panes
	RowAdded                    // line only in the new file
	RowRemoved                  // line only in the old file
	RowChanged                  // removed line paired with a similar added line
	RowSeparator                // boundary between two hunks
)

// String returns a human-readable name for the row kind.
func (k RowKind) String() string {
	switch k {
	case RowContext:
		return "context"
	case RowAdded:
		return "added"
	case RowRemoved:
		return "removed"
	case RowChanged:
		return "changed"
	case RowSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Row is one logical unit of side-by-side display.
//
// Only the fields meaningful to Kind are set:
//   - Context: OldLine, NewLine, OldContent == NewContent
//   - Added: NewLine, NewContent
//   - Removed: OldLine, OldContent
//   - Changed: all four
//   - Separator: none
type Row struct {
	Kind       RowKind
	OldLine    int
	NewLine    int
	OldContent string
	NewContent string
}

// Context returns a row for an unchanged line.
func Context(oldLine, newLine int, content string) Row {
	return Row{Kind: RowContext, OldLine: oldLine, NewLine: newLine, OldContent: content, NewContent: content}
}

// Added returns a row for a line that exists only in the new file.
func Added(newLine int, content string) Row {
	return Row{Kind: RowAdded, NewLine: newLine, NewContent: content}
}

// Removed returns a row for a line that exists only in the old file.
func Removed(oldLine int, content string) Row {
	return Row{Kind: RowRemoved, OldLine: oldLine, OldContent: content}
}

// Changed returns a row pairing a removed line with the added line replacing it.
func Changed(oldLine, newLine int, oldContent, newContent string) Row {
	return Row{Kind: RowChanged, OldLine: oldLine, NewLine: newLine, OldContent: oldContent, NewContent: newContent}
}

// Separator returns a hunk boundary row.
func Separator() Row {
	return Row{Kind: RowSeparator}
}

// HasOld reports whether the row occupies a line of the old file.
func (r Row) HasOld() bool {
	return r.Kind == RowContext || r.Kind == RowRemoved || r.Kind == RowChanged
}

// HasNew reports whether the row occupies a line of the new file.
func (r Row) HasNew() bool {
	return r.Kind == RowContext || r.Kind == RowAdded || r.Kind == RowChanged
}

// Aligner converts hunks into rows while tracking the old and new line
// counters. The counters carry over between hunks of the same file so a hunk
// with an unreadable header continues numbering from the previous one.
type Aligner struct {
	oldLine int
	newLine int
}

// NewAligner returns an aligner with both counters at zero.
func NewAligner() *Aligner {
	return &Aligner{}
}

// Counters returns the next old and new line numbers.
func (a *Aligner) Counters() (oldLine, newLine int) {
	return a.oldLine, a.newLine
}

// AlignHunk converts one hunk into rows.
//
// Context lines emit Context rows and pure additions emit Added rows. A run
// of removed lines opens a change block together with the added lines that
// immediately follow it; the two runs are walked greedily with one pointer
// each, pairing the current removal with the current addition when their
// Similarity exceeds PairThreshold and otherwise emitting the removal alone.
// Whatever is left of either run is emitted unpaired.
func (a *Aligner) AlignHunk(h Hunk) []Row {
	if header, ok := ParseHeader(h.Header); ok {
		a.oldLine = header.OldStart
		a.newLine = header.NewStart
	} else {
		log.Debug(log.CatDiff, "hunk header unreadable, keeping counters", "header", h.Header)
	}

	if len(h.Lines) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(h.Lines))
	lines := h.Lines
	i := 0

	for i < len(lines) {
		line := lines[i]

		switch line.Kind {
		case KindContext:
			rows = append(rows, Context(a.oldLine, a.newLine, line.Content))
			a.oldLine++
			a.newLine++
			i++

		case KindAdded:
			rows = append(rows, Added(a.newLine, line.Content))
			a.newLine++
			i++

		case KindRemoved:
			removed := collectConsecutive(lines, i, KindRemoved)
			next := i + len(removed)
			added := collectConsecutive(lines, next, KindAdded)

			rows = append(rows, a.pairChangeBlock(removed, added)...)
			i = next + len(added)

		default:
			i++
		}
	}

	return rows
}

// AlignHunks aligns every hunk of one file with a fresh Aligner and puts a
// Separator row between consecutive hunks.
func AlignHunks(hunks []Hunk) []Row {
	a := NewAligner()
	var rows []Row
	for i, h := range hunks {
		if i > 0 {
			rows = append(rows, Separator())
		}
		rows = append(rows, a.AlignHunk(h)...)
	}
	return rows
}

// pairChangeBlock runs the greedy two-pointer pairing over a removal run and
// the addition run that follows it.
func (a *Aligner) pairChangeBlock(removed, added []string) []Row {
	rows := make([]Row, 0, len(removed)+len(added))
	ri, ai := 0, 0

	for ri < len(removed) && ai < len(added) {
		if Similarity(removed[ri], added[ai]) > PairThreshold {
			rows = append(rows, Changed(a.oldLine, a.newLine, removed[ri], added[ai]))
			a.oldLine++
			a.newLine++
			ri++
			ai++
			continue
		}
		rows = append(rows, Removed(a.oldLine, removed[ri]))
		a.oldLine++
		ri++
	}

	for ; ri < len(removed); ri++ {
		rows = append(rows, Removed(a.oldLine, removed[ri]))
		a.oldLine++
	}
	for ; ai < len(added); ai++ {
		rows = append(rows, Added(a.newLine, added[ai]))
		a.newLine++
	}

	return rows
}

// collectConsecutive returns the contents of the run of lines of the given
// kind starting at start.
func collectConsecutive(lines []Line, start int, kind LineKind) []string {
	var run []string
	for i := start; i < len(lines) && lines[i].Kind == kind; i++ {
		run = append(run, lines[i].Content)
	}
	return run
}

// ContentLines flattens rows into the list of source lines to highlight:
// Changed rows contribute their old then new content, Separators nothing, and
// every other row its single content line.
func ContentLines(rows []Row) []string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		switch r.Kind {
		case RowContext, RowRemoved:
			lines = append(lines, r.OldContent)
		case RowAdded:
			lines = append(lines, r.NewContent)
		case RowChanged:
			lines = append(lines, r.OldContent, r.NewContent)
		}
	}
	return lines
}

// SpanCount returns how many content lines a row contributes to ContentLines.
func (r Row) SpanCount() int {
	switch r.Kind {
	case RowChanged:
		return 2
	case RowSeparator:
		return 0
	default:
		return 1
	}
}
