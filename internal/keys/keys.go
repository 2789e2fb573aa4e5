// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the diff viewer.
type KeyMap struct {
	// Scrolling, applied to both panes
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Files
	NextFile key.Binding
	PrevFile key.Binding
	GotoFile key.Binding

	// Comments
	Comments key.Binding

	// General
	Reload key.Binding
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d", " "),
			key.WithHelp("ctrl+d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "bottom"),
		),

		NextFile: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next file"),
		),
		PrevFile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous file"),
		),
		GotoFile: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g<n>⏎", "go to file n"),
		),

		Comments: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "show comments"),
		),

		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFile, k.PrevFile, k.Comments, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom}, // Scrolling
		{k.NextFile, k.PrevFile, k.GotoFile},                  // Files
		{k.Comments, k.Reload, k.Help, k.Escape, k.Quit},      // General
	}
}
