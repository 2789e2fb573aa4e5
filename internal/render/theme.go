package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/mrdiff/internal/ui/styles"
)

// Theme holds the pane colors. Syntax colors come with the spans.
type Theme struct {
	AdditionBg       lipgloss.TerminalColor
	DeletionBg       lipgloss.TerminalColor
	LineNumber       lipgloss.TerminalColor
	CommentIndicator lipgloss.TerminalColor
	Divider          lipgloss.TerminalColor
}

// DefaultTheme reads the current colors from the styles package, so it
// reflects any theme applied with styles.ApplyTheme.
func DefaultTheme() Theme {
	return Theme{
		AdditionBg:       styles.DiffAdditionBgColor,
		DeletionBg:       styles.DiffDeletionBgColor,
		LineNumber:       styles.LineNumberColor,
		CommentIndicator: styles.CommentIndicatorColor,
		Divider:          styles.DiffDividerColor,
	}
}

// background returns the line background for a pane kind, or nil.
func (t Theme) background(kind PaneKind) lipgloss.TerminalColor {
	switch kind {
	case PaneAddition:
		return t.AdditionBg
	case PaneDeletion:
		return t.DeletionBg
	default:
		return nil
	}
}
