// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#3C3836", Dark: "#EBDBB2"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#665C54", Dark: "#BDAE93"} // Counters, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#928374", Dark: "#928374"} // Hints, help text

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D5C4A1", Dark: "#665C54"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83A598"}

	// Diff panes
	DiffAdditionBgColor = lipgloss.AdaptiveColor{Light: "#D5F5D5", Dark: "#005F00"} // darkgreen
	DiffDeletionBgColor = lipgloss.AdaptiveColor{Light: "#F9D0D0", Dark: "#5F0000"} // darkred
	DiffDividerColor    = lipgloss.AdaptiveColor{Light: "#D5C4A1", Dark: "#504945"}
	LineNumberColor     = lipgloss.AdaptiveColor{Light: "#928374", Dark: "#928374"}

	// "C " marker next to lines that have review comments
	CommentIndicatorColor = lipgloss.AdaptiveColor{Light: "#B57614", Dark: "#FABD2F"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#79740E", Dark: "#B8BB26"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#9D0006", Dark: "#FB4934"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#282828", Dark: "#FBF1C7"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#A89984", Dark: "#8C8C8C"}

	// Header: file path and "Diff i of n"
	HeaderPathStyle    = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	HeaderCounterStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Help text
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
