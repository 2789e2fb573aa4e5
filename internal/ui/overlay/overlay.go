// Package overlay draws modal boxes on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/mrdiff/internal/ui/styles"
)

// Box is a bordered modal with a title row and a body.
type Box struct {
	Title string
	Body  string
	// Footer is an optional hint shown under the body, e.g. "esc close".
	Footer string
	// Width and Height are the outer dimensions. Zero height fits the body.
	Width  int
	Height int
}

// Render draws the box. Body lines wider than the box are cut.
func (b Box) Render() string {
	inner := max(b.Width-4, 1)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		Render(styles.TruncateString(b.Title, inner))

	rule := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", inner))

	body := clipLines(b.Body, inner)
	parts := []string{title, rule, body}
	if b.Footer != "" {
		parts = append(parts, "", styles.HelpStyle.Render(styles.TruncateString(b.Footer, inner)))
	}
	content := strings.Join(parts, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(inner + 2)
	if b.Height > 0 {
		content = fitHeight(content, max(b.Height-2, 1))
	}
	return box.Render(content)
}

// Place centers fg over bg, an area of width x height cells. Cells of bg
// not covered by fg keep their styling.
func Place(width, height int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-len(fgLines))/2, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	var right string
	if end := x + ansi.StringWidth(fg); end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func clipLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			lines[i] = ansi.Truncate(l, width, "")
		}
	}
	return strings.Join(lines, "\n")
}

func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
