package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override under theme.colors in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Diff panes
	TokenDiffAdditionBg ColorToken = "diff.addition.bg"
	TokenDiffDeletionBg ColorToken = "diff.deletion.bg"
	TokenDiffDivider    ColorToken = "diff.divider"
	TokenLineNumber     ColorToken = "diff.line_number"

	// Comments
	TokenCommentIndicator ColorToken = "comment.indicator"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusError   ColorToken = "status.error"

	// Overlays/Modals
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenDiffAdditionBg,
		TokenDiffDeletionBg,
		TokenDiffDivider,
		TokenLineNumber,

		TokenCommentIndicator,

		TokenStatusSuccess,
		TokenStatusError,

		TokenOverlayTitle,
		TokenOverlayBorder,
	}
}
