package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder renders content in a rounded box of exactly width x
// height cells with the title embedded in the top border: ╭─ Old ─────╮.
// Content lines are padded or cut to fit; focused boxes use BorderFocusColor.
func RenderWithTitleBorder(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	innerWidth := max(width-2, 1)
	contentHeight := max(height-2, 1)

	lines := strings.Split(content, "\n")
	var b strings.Builder
	b.WriteString(buildTopBorder(title, innerWidth, borderStyle, titleStyle))
	b.WriteString("\n")

	for i := range contentHeight {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if lipgloss.Width(line) > innerWidth {
			line = lipgloss.NewStyle().MaxWidth(innerWidth).Render(line)
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
		b.WriteString("\n")
	}

	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return b.String()
}

// buildTopBorder creates the top border with embedded title.
func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " before and " ─" after the title at minimum
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	displayTitle := TruncateString(title, innerWidth-4)
	remaining := max(innerWidth-3-lipgloss.Width(displayTitle), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remaining)+borderTopRight)
}
