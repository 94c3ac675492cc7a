package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the editor key bindings.
type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevLayout key.Binding
	NextLayout key.Binding
	Select     key.Binding
	Assign     key.Binding
	Unassign   key.Binding
	Copy       key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Left: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H/L", "resize"),
		),
		Right: key.NewBinding(
			key.WithKeys("L"),
		),
		Up: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K/J", "resize"),
		),
		Down: key.NewBinding(
			key.WithKeys("J"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[/]", "layout"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("]"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "content"),
		),
		Assign: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "assign"),
		),
		Unassign: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Up, k.PrevLayout, k.Select, k.Assign, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right, k.Up, k.Down},
		{k.PrevLayout, k.NextLayout, k.Select, k.Assign, k.Unassign},
		{k.Copy, k.Reload, k.Quit},
	}
}
