package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	paneSeparator = " │ "
	// autoWidthCap bounds the pane width picked when none is configured.
	autoWidthCap = 120
)

// SideBySide joins the styled panes line by line. A width of zero sizes each
// pane to its longest line.
func (r *Renderer) SideBySide(oldPane, newPane []PaneLine, width int) string {
	if width <= 0 {
		width = autoWidth(oldPane, newPane)
	}
	sep := lipgloss.NewStyle().Foreground(r.theme.Divider).Render(paneSeparator)

	var b strings.Builder
	for i := range max(len(oldPane), len(newPane)) {
		b.WriteString(r.Style(lineAt(oldPane, i), width))
		b.WriteString(sep)
		b.WriteString(r.Style(lineAt(newPane, i), width))
		b.WriteByte('\n')
	}
	return b.String()
}

// SideBySidePlain is SideBySide without colors, for pipes and files.
func SideBySidePlain(oldPane, newPane []PaneLine, width int) string {
	if width <= 0 {
		width = autoWidth(oldPane, newPane)
	}

	var b strings.Builder
	for i := range max(len(oldPane), len(newPane)) {
		b.WriteString(fitPlain(lineAt(oldPane, i), width))
		b.WriteString(paneSeparator)
		b.WriteString(strings.TrimRight(fitPlain(lineAt(newPane, i), width), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func fitPlain(line PaneLine, width int) string {
	text := expandTabs(line.Plain())
	if line.Kind == PaneDivider {
		text = strings.Repeat(dividerRune, width)
	}
	return runewidth.FillRight(runewidth.Truncate(text, width, ""), width)
}

func autoWidth(panes ...[]PaneLine) int {
	width := lipgloss.Width(dividerPlain)
	for _, pane := range panes {
		for _, l := range pane {
			width = max(width, runewidth.StringWidth(expandTabs(l.Plain())))
		}
	}
	return min(width, autoWidthCap)
}

func lineAt(lines []PaneLine, i int) PaneLine {
	if i < len(lines) {
		return lines[i]
	}
	return blankLine()
}
