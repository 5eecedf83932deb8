package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the matrix keybindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Filter   key.Binding
	Copy     key.Binding
	Sort     key.Binding
	Settings key.Binding
	Color    key.Binding
	Legend   key.Binding
	Stats    key.Binding
	Export   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/←", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l/→", "right")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open cell / record")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter records")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy record id")),
		Sort:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "toggle sort")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Color:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle color")),
		Legend:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "toggle legend")),
		Stats:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "bucket stats")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export png+svg")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Settings, k.Export, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay, one section per slice
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Open, k.Back},
		{k.Filter, k.Sort, k.Copy},
		{k.Settings, k.Color, k.Legend, k.Stats, k.Export, k.Reload, k.Help, k.Quit},
	}
}
