package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import render, but render can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !IsValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !IsValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same color for both modes once a theme is chosen explicitly
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:      &TextPrimaryColor,
		TokenTextSecondary:    &TextSecondaryColor,
		TokenTextMuted:        &TextMutedColor,
		TokenBorderDefault:    &BorderDefaultColor,
		TokenBorderFocus:      &BorderFocusColor,
		TokenDiffAdditionBg:   &DiffAdditionBgColor,
		TokenDiffDeletionBg:   &DiffDeletionBgColor,
		TokenDiffDivider:      &DiffDividerColor,
		TokenLineNumber:       &LineNumberColor,
		TokenCommentIndicator: &CommentIndicatorColor,
		TokenStatusSuccess:    &StatusSuccessColor,
		TokenStatusError:      &StatusErrorColor,
		TokenOverlayTitle:     &OverlayTitleColor,
		TokenOverlayBorder:    &OverlayBorderColor,
	}

	for token, target := range targets {
		if c, ok := colors[token]; ok {
			*target = makeColor(c)
		}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	HeaderPathStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	HeaderCounterStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	for _, fn := range styleRebuilders {
		fn()
	}
}

// IsValidToken reports whether token is a known color token.
func IsValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

// IsValidHexColor reports whether s is "#rgb" or "#rrggbb".
func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
