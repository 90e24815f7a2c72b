package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Next         key.Binding
	Prev         key.Binding
	Decrease     key.Binding
	Increase     key.Binding
	HeightDown   key.Binding
	HeightUp     key.Binding
	Preset       key.Binding
	Reset        key.Binding
	Toggle       key.Binding
	ToggleSuffix key.Binding
	Add          key.Binding
	Remove       key.Binding
	Copy         key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "save & quit"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "tab"),
		key.WithHelp("down/tab", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up", "shift+tab"),
		key.WithHelp("up/shift+tab", "prev"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("left", "decrease"),
	),
	Increase: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("right", "increase"),
	),
	HeightDown: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("shift+left", "height down"),
	),
	HeightUp: key.NewBinding(
		key.WithKeys("shift+right"),
		key.WithHelp("shift+right", "height up"),
	),
	Preset: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "next preset"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	ToggleSuffix: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle suffix"),
	),
	Add: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add suffix"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "remove suffix"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Decrease, k.Increase, k.Toggle, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Decrease, k.Increase},
		{k.HeightDown, k.HeightUp, k.Preset, k.Reset},
		{k.Toggle, k.ToggleSuffix, k.Add, k.Remove},
		{k.Copy, k.Quit},
	}
}
