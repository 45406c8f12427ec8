package types

import tea "github.com/charmbracelet/bubbletea"

// Key is a normalised remote-control key
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyConfirm
	KeyBack
	KeyTab
	KeyShiftTab
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyConfirm:
		return "confirm"
	case KeyBack:
		return "back"
	case KeyTab:
		return "tab"
	case KeyShiftTab:
		return "shift+tab"
	}
	return "none"
}

// Directional reports whether k is one of the four D-pad arrows
func (k Key) Directional() bool {
	return k == KeyUp || k == KeyDown || k == KeyLeft || k == KeyRight
}

// Vertical reports whether k is Up or Down
func (k Key) Vertical() bool {
	return k == KeyUp || k == KeyDown
}

// KeyEvent carries the normalised key together with the raw message,
// which text owners need.
type KeyEvent struct {
	Key Key
	Msg tea.KeyMsg
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Owner is anything that may claim keys before they reach spatial
// navigation: the focused card, an open modal, a text field.
type Owner interface {
	// HandleKey processes a key and reports whether it was consumed
	HandleKey(ev KeyEvent) ([]Action, bool)

	// Enter is called when the owner gains focus or capture
	Enter() []Action

	// Exit is called when the owner loses focus or capture
	Exit() []Action

	Name() string
}

// Navigator receives directional keys nobody consumed
type Navigator interface {
	Navigate(k Key) bool
}
