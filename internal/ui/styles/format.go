package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	// Cut on grapheme boundaries so emoji and combining marks stay whole.
	var b strings.Builder
	width := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, boundaries, newState := uniseg.StepString(s, state)
		w := boundaries >> uniseg.ShiftWidth
		if width+w > maxWidth-3 {
			break
		}
		b.WriteString(cluster)
		width += w
		s, state = rest, newState
	}

	return b.String() + "..."
}

// FormatCommentCount returns "1 comment" / "n comments", or "" for none.
func FormatCommentCount(count int) string {
	switch {
	case count <= 0:
		return ""
	case count == 1:
		return "1 comment"
	default:
		return fmt.Sprintf("%d comments", count)
	}
}
