package scenes

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the TUI understands. It satisfies help.KeyMap.
type KeyMap struct {
	NextScene key.Binding
	PrevScene key.Binding
	Jump      key.Binding
	Up        key.Binding
	Down      key.Binding
	Decrease  key.Binding
	Increase  key.Binding
	Reset     key.Binding
	Nominal   key.Binding
	Solve     key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextScene: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevScene: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous screen")),
		Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump to screen")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Decrease:  key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Increase:  key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset plan")),
		Nominal:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle nominal")),
		Solve:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "solve levers")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScene, k.Jump, k.Help, k.Quit}
}

// FullHelp is shown on the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScene, k.PrevScene, k.Jump, k.Back},
		{k.Up, k.Down, k.Decrease, k.Increase, k.Reset},
		{k.Nominal, k.Solve, k.Help, k.Quit},
	}
}
