package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"remotetv/internal/ui/input/types"
)

// KeyMap binds terminal keys to the remote-control surface plus a few
// application keys that never reach the navigation core.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Tab      key.Binding
	ShiftTab key.Binding

	NextPage key.Binding
	PrevPage key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Tab:      key.NewBinding(key.WithKeys("tab")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab")),
		NextPage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Normalize maps a key message onto the remote-control keys
func (m KeyMap) Normalize(msg tea.KeyMsg) types.Key {
	switch {
	case key.Matches(msg, m.Up):
		return types.KeyUp
	case key.Matches(msg, m.Down):
		return types.KeyDown
	case key.Matches(msg, m.Left):
		return types.KeyLeft
	case key.Matches(msg, m.Right):
		return types.KeyRight
	case key.Matches(msg, m.Confirm):
		return types.KeyConfirm
	case key.Matches(msg, m.Back):
		return types.KeyBack
	case key.Matches(msg, m.Tab):
		return types.KeyTab
	case key.Matches(msg, m.ShiftTab):
		return types.KeyShiftTab
	}
	return types.KeyNone
}

// ShortHelp implements help.KeyMap
func (m KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Confirm, m.Back, m.PrevPage, m.NextPage, m.Search, m.Help, m.Quit}
}

// FullHelp implements help.KeyMap
func (m KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.Up, m.Down, m.Left, m.Right},
		{m.Confirm, m.Back},
		{m.PrevPage, m.NextPage, m.Search},
		{m.Help, m.Quit},
	}
}
