// Package help contains the keybinding overlay of the diff viewer.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/mrdiff/internal/keys"
	"github.com/zjrosen/mrdiff/internal/ui/overlay"
	"github.com/zjrosen/mrdiff/internal/ui/styles"
)

// Section titles, in the order of keys.KeyMap.FullHelp.
var sectionTitles = []string{"Scrolling", "Files", "General"}

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	width  int
	height int
}

// New creates a help view for the given keymap.
func New(km keys.KeyMap) Model {
	return Model{keys: km}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	if background == "" {
		return m.View()
	}
	return overlay.Place(m.width, m.height, m.box(), background)
}

func (m Model) box() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	groups := m.keys.FullHelp()
	cols := make([]string, 0, len(groups))
	for i, group := range groups {
		var b strings.Builder
		if i < len(sectionTitles) {
			b.WriteString(sectionStyle.Render(sectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			b.WriteString(renderBinding(binding))
		}
		col := strings.TrimSuffix(b.String(), "\n")
		if i < len(groups)-1 {
			col = columnStyle.Render(col)
		}
		cols = append(cols, col)
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	return overlay.Box{
		Title:  "Keybindings",
		Body:   columns,
		Footer: "Press ? or Esc to close",
		Width:  lipgloss.Width(columns) + 4,
	}.Render()
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	keyStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Width(9)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
