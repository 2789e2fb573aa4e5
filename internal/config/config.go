// Package config provides configuration types, defaults, and persistence for mrdiff.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/mrdiff/internal/highlight"
	"github.com/zjrosen/mrdiff/internal/log"
	"github.com/zjrosen/mrdiff/internal/tracing"
	"github.com/zjrosen/mrdiff/internal/ui/markdown"
	"github.com/zjrosen/mrdiff/internal/ui/styles"
)

// Config holds all user configuration.
type Config struct {
	Highlight HighlightConfig `mapstructure:"highlight"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	UI        UIConfig        `mapstructure:"ui"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// HighlightConfig controls syntax highlighting.
type HighlightConfig struct {
	Enabled           bool     `mapstructure:"enabled"`
	DisabledLanguages []string `mapstructure:"disabled_languages"` // language ids, see 'mrdiff languages'
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "gruvbox-light", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors overrides individual UI color tokens.
	// Supports both nested YAML structure and dot notation:
	//   colors:
	//     border:
	//       focus: "#83A598"
	// or
	//   colors:
	//     "border.focus": "#83A598"
	Colors map[string]any `mapstructure:"colors"`

	// Syntax overrides the foreground of capture categories, e.g.
	// "keyword": "#ff0000". Dotted categories may be quoted or nested like
	// Colors. Unlisted categories keep the gruvbox colors.
	Syntax map[string]any `mapstructure:"syntax"`

	// Shorthands for the most common diff color overrides.
	AdditionBg       string `mapstructure:"addition_bg"`
	DeletionBg       string `mapstructure:"deletion_bg"`
	CommentIndicator string `mapstructure:"comment_indicator"`
}

// UIConfig holds viewer options.
type UIConfig struct {
	PaneWidth     int    `mapstructure:"pane_width"`     // static output width per pane, 0 = auto
	ScrollStep    int    `mapstructure:"scroll_step"`    // lines per scroll event
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light" or "notty"
}

// WatchConfig controls reloading when the changes file is rewritten.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the export backend: "none", "file", "stdout" or "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept, between 0.0 and 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ProviderConfig converts to the tracing package's config.
func (t TracingConfig) ProviderConfig() tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	}
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// StylesTheme merges the color overrides and the diff shorthands into the
// form styles.ApplyTheme takes. Shorthands win over Colors.
func (t ThemeConfig) StylesTheme() styles.ThemeConfig {
	colors := t.FlattenedColors()
	shorthands := map[styles.ColorToken]string{
		styles.TokenDiffAdditionBg:   t.AdditionBg,
		styles.TokenDiffDeletionBg:   t.DeletionBg,
		styles.TokenCommentIndicator: t.CommentIndicator,
	}
	for token, value := range shorthands {
		if value != "" {
			colors[string(token)] = value
		}
	}
	return styles.ThemeConfig{Preset: t.Preset, Colors: colors}
}

// FlattenedSyntax returns the Syntax map flattened to dotted categories.
func (t ThemeConfig) FlattenedSyntax() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Syntax, result)
	return result
}

// SyntaxStyles returns the capture style table with the Syntax overrides applied.
func (t ThemeConfig) SyntaxStyles() highlight.StyleTable {
	return highlight.DefaultStyles().WithForegrounds(t.FlattenedSyntax())
}

// DefaultTracesFilePath returns ~/.config/mrdiff/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mrdiff", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Highlight: HighlightConfig{
			Enabled: true,
		},
		UI: UIConfig{
			PaneWidth:     0,
			ScrollStep:    3,
			MarkdownStyle: "dark",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     tracing.ExporterFile,
			FilePath:     "", // Derived from the home directory at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// SetDefaults registers Defaults with v so unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("highlight.enabled", d.Highlight.Enabled)
	v.SetDefault("highlight.disabled_languages", []string{})
	v.SetDefault("ui.pane_width", d.UI.PaneWidth)
	v.SetDefault("ui.scroll_step", d.UI.ScrollStep)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Load decodes the configuration held by v and fills derived values.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}
	return cfg, nil
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateHighlight(cfg.Highlight); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateHighlight rejects language ids mrdiff does not know.
func ValidateHighlight(h HighlightConfig) error {
	known := make(map[string]bool)
	for _, m := range highlight.Languages() {
		known[m.Language] = true
	}
	for _, lang := range h.DisabledLanguages {
		if !known[lang] {
			return fmt.Errorf("highlight.disabled_languages: unknown language %q", lang)
		}
	}
	return nil
}

// ValidateTheme checks preset names, color tokens and hex values.
func ValidateTheme(t ThemeConfig) error {
	if t.Preset != "" {
		if _, ok := styles.Presets[t.Preset]; !ok {
			return fmt.Errorf("theme.preset: unknown preset %q (valid: %v)", t.Preset, slices.Sorted(maps.Keys(styles.Presets)))
		}
	}
	for key, value := range t.StylesTheme().Colors {
		if !styles.IsValidToken(styles.ColorToken(key)) {
			return fmt.Errorf("theme.colors: unknown color token %q", key)
		}
		if !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", key, value)
		}
	}
	for category, value := range t.FlattenedSyntax() {
		if !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.syntax.%s: invalid hex color %q", category, value)
		}
	}
	return nil
}

// ValidateUI checks viewer options.
func ValidateUI(ui UIConfig) error {
	if ui.PaneWidth < 0 {
		return fmt.Errorf("ui.pane_width must not be negative, got %d", ui.PaneWidth)
	}
	if ui.ScrollStep < 1 {
		return fmt.Errorf("ui.scroll_step must be at least 1, got %d", ui.ScrollStep)
	}
	if ui.MarkdownStyle != "" && !markdown.ValidStyle(ui.MarkdownStyle) {
		return fmt.Errorf("ui.markdown_style must be dark, light or notty, got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# mrdiff configuration

# Syntax highlighting
highlight:
  enabled: true
  # Render these languages as plain text (ids from 'mrdiff languages'):
  # disabled_languages: [markdown, yaml]

# Theme configuration
theme:
  # Available presets:
  #   default        - Gruvbox dark
  #   gruvbox-light  - Gruvbox light
  #   high-contrast  - High contrast for accessibility
  # preset: default
  #
  # Pane backgrounds and the comment marker:
  # addition_bg: "#005F00"
  # deletion_bg: "#5F0000"
  # comment_indicator: "#FABD2F"
  #
  # Other UI colors by token:
  # colors:
  #   text.primary: "#FFFFFF"
  #   border.focus: "#83A598"
  #
  # Syntax colors by capture category (falls back along the dots,
  # so "function" also covers "function.method"):
  # syntax:
  #   keyword: "#FB4934"
  #   string: "#B8BB26"
  #   function.method: "#8EC07C"

# Viewer settings
ui:
  pane_width: 0         # Width of each pane for 'mrdiff render' (0 = fit content)
  scroll_step: 3        # Lines per scroll event
  # markdown_style: dark  # Comment rendering style: dark (default), light or notty

# Reload when the changes file is rewritten
watch:
  enabled: true
  debounce: 1s

# Tracing of render passes
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/mrdiff/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
