package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of every mode
type KeyMap struct {
	Extract    key.Binding
	Build      key.Binding
	Clean      key.Binding
	Decompress key.Binding
	Pager      key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Extract:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "extract image")),
		Build:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "build project")),
		Clean:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clean work dir")),
		Decompress: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "toggle ramdisk decompression")),
		Pager:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "open console in pager")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),

		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Extract, k.Build, k.Clean, k.Decompress, k.Pager, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Extract, k.Build, k.Clean, k.Decompress},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Pager, k.Help, k.Quit, k.ForceQuit},
	}
}

// DialogHelp lists the bindings of the choice dialogs
func (k KeyMap) DialogHelp(multi bool) []key.Binding {
	if multi {
		return []key.Binding{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Confirm, k.Cancel}
	}
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Cancel}
}
