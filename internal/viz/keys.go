package viz

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Sort       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Select     key.Binding
	Regenerate key.Binding
	Stop       key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Sort: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "sort"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next algorithm"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev algorithm"),
		),
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "pick algorithm"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "new values"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
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

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Next, k.Regenerate, k.Stop, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sort, k.Stop, k.Regenerate},
		{k.Next, k.Prev, k.Select},
		{k.Theme, k.Help, k.Quit},
	}
}
