package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"gruvbox-light": GruvboxLightPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset is gruvbox dark, matching the syntax highlight palette.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Gruvbox dark",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#EBDBB2",
		TokenTextSecondary: "#BDAE93",
		TokenTextMuted:     "#928374",

		TokenBorderDefault: "#665C54",
		TokenBorderFocus:   "#83A598",

		TokenDiffAdditionBg: "#005F00",
		TokenDiffDeletionBg: "#5F0000",
		TokenDiffDivider:    "#504945",
		TokenLineNumber:     "#928374",

		TokenCommentIndicator: "#FABD2F",

		TokenStatusSuccess: "#B8BB26",
		TokenStatusError:   "#FB4934",

		TokenOverlayTitle:  "#FBF1C7",
		TokenOverlayBorder: "#8C8C8C",
	},
}

// GruvboxLightPreset is for light terminal backgrounds.
var GruvboxLightPreset = Preset{
	Name:        "gruvbox-light",
	Description: "Gruvbox light",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#3C3836",
		TokenTextSecondary: "#665C54",
		TokenTextMuted:     "#928374",

		TokenBorderDefault: "#D5C4A1",
		TokenBorderFocus:   "#458588",

		TokenDiffAdditionBg: "#D5F5D5",
		TokenDiffDeletionBg: "#F9D0D0",
		TokenDiffDivider:    "#D5C4A1",
		TokenLineNumber:     "#928374",

		TokenCommentIndicator: "#B57614",

		TokenStatusSuccess: "#79740E",
		TokenStatusError:   "#9D0006",

		TokenOverlayTitle:  "#282828",
		TokenOverlayBorder: "#A89984",
	},
}

// HighContrastPreset uses saturated backgrounds and pure foregrounds.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#C0C0C0",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#00FFFF",

		TokenDiffAdditionBg: "#008000",
		TokenDiffDeletionBg: "#800000",
		TokenDiffDivider:    "#FFFFFF",
		TokenLineNumber:     "#FFFF00",

		TokenCommentIndicator: "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF0000",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",
	},
}
