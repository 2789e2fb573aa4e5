// Package markdown renders comment threads for the review overlay.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"
)

// Supported glamour style names.
const (
	StyleDark  = styles.DarkStyle
	StyleLight = styles.LightStyle
	StyleNoTTY = styles.NoTTYStyle
)

// noMarginStyle drops glamour's document margin so text lines up with the
// overlay border.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps a glamour.TermRenderer fixed to one width and style.
type Renderer struct {
	tr    *glamour.TermRenderer
	width int
	style string
}

// New creates a renderer that word-wraps at width. An empty style means
// dark. The style is chosen explicitly instead of auto-detected so that
// glamour never queries the terminal while bubbletea owns stdin.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StyleDark
	}
	if !ValidStyle(style) {
		return nil, fmt.Errorf("unknown markdown style: %s", style)
	}
	width = max(width, 10)

	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{tr: tr, width: width, style: style}, nil
}

// ValidStyle reports whether style is one of the supported style names.
func ValidStyle(style string) bool {
	switch style {
	case StyleDark, StyleLight, StyleNoTTY:
		return true
	}
	return false
}

func (r *Renderer) Width() int    { return r.width }
func (r *Renderer) Style() string { return r.style }

// Render converts markdown to styled terminal text. Leading and trailing
// blank lines that glamour emits around blocks are removed.
func (r *Renderer) Render(md string) (string, error) {
	out, err := r.tr.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// RenderOrPlain renders md and falls back to the wrapped raw text when
// glamour fails.
func (r *Renderer) RenderOrPlain(md string) string {
	out, err := r.Render(md)
	if err != nil {
		return Plain(md, r.width)
	}
	return out
}

// Plain word-wraps md at width without interpreting it.
func Plain(md string, width int) string {
	return strings.TrimRight(wordwrap.String(md, max(width, 1)), "\n")
}
