package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. Which ones are live depends on the mode.
type keyMap struct {
	// Editing
	Decode   key.Binding
	Clear    key.Binding
	ToTree   key.Binding
	HistPrev key.Binding
	HistNext key.Binding

	// Viewing
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Inspect     key.Binding
	Edit        key.Binding

	// Inspecting
	Copy  key.Binding
	Close key.Binding

	// Global
	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Decode: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "decode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
		ToTree: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "tree"),
		),
		HistPrev: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "older input"),
		),
		HistNext: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "newer input"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("h", "l", " ", "enter"),
			key.WithHelp("h/l/enter", "collapse"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "collapse all"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "inspect"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i", "tab"),
			key.WithHelp("i/tab", "edit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c", "y"),
			key.WithHelp("y/ctrl+c", "copy hex"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "x"),
			key.WithHelp("esc/x", "close"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) editingHelp() []key.Binding {
	return []key.Binding{k.Decode, k.Clear, k.ToTree, k.HistPrev, k.HistNext}
}

func (k keyMap) viewingHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Toggle, k.Inspect, k.Edit, k.Help, k.Quit}
}

func (k keyMap) inspectingHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Copy, k.Close, k.Quit}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return k.viewingHelp()
}

// FullHelp implements help.KeyMap, one column per mode.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.editingHelp(),
		{k.Down, k.Up, k.Toggle, k.ExpandAll, k.CollapseAll, k.Inspect, k.Edit},
		{k.Copy, k.Close, k.Help, k.Quit},
	}
}
