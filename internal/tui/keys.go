package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Add          key.Binding
	Edit         key.Binding
	Select       key.Binding
	Complete     key.Binding
	Delete       key.Binding
	DeleteMarked key.Binding
	SortAsc      key.Binding
	SortDesc     key.Binding
	Reset        key.Binding
	Move         key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Add:          key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Edit:         key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Select:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Complete:     key.NewBinding(key.WithKeys("x", "c"), key.WithHelp("x", "complete")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		DeleteMarked: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		SortAsc:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort a-z")),
		SortDesc:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort z-a")),
		Reset:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset order")),
		Move:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		MoveUp:       key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:     key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Select, k.Complete, k.Delete, k.DeleteMarked, k.SortAsc, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit},
		{k.Select, k.Complete, k.Delete, k.DeleteMarked},
		{k.SortAsc, k.SortDesc, k.Reset},
		{k.Move, k.MoveUp, k.MoveDown, k.Help, k.Quit},
	}
}
