package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the viewer's keybindings. Keys not listed here are ignored.
type KeyMap struct {
	Quit     key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the viewer keybindings. pageStep is only used for the
// help text of the Shift bindings. Key names follow the Bubble Tea format
// ("shift+down", "ctrl+c", ...).
func DefaultKeyMap(pageStep int) KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", fmt.Sprintf("-%d", pageStep)),
		),
		PageDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", fmt.Sprintf("+%d", pageStep)),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar. It implements
// help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.PageUp, k.Clear, k.Quit}
}

// FullHelp returns the bindings grouped by purpose. It implements
// help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.PageDown, k.PageUp},
		{k.Clear, k.Quit},
	}
}
