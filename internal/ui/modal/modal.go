// Package modal is the three-action overlay used by the simplified remote
// flow. While open it owns every key; nothing leaks to navigation.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"remotetv/internal/domain"
	"remotetv/internal/ui/focustrap"
	"remotetv/internal/ui/input/types"
)

// OwnerName identifies the modal in the dispatcher's capture stack
const OwnerName = "modal"

// Choice is one of the modal's actions, left to right
type Choice int

const (
	ChoicePlay Choice = iota
	ChoiceDetails
	ChoiceToggleList
)

// Count is the number of actions
const Count = 3

var memberIDs = [Count]string{"play", "details", "list"}

// Label returns the text for a choice. The list label reflects the
// optimistic state.
func Label(c Choice, inList bool) string {
	switch c {
	case ChoicePlay:
		return "Play"
	case ChoiceDetails:
		return "Details"
	}
	if inList {
		return "In my list"
	}
	return "My list"
}

// Effects
type PlayAction struct{ Item domain.MediaItem }
type DetailsAction struct{ Item domain.MediaItem }
type ToggleListAction struct {
	Token uuid.UUID
	Item  domain.MediaItem
	Add   bool
}
type CloseAction struct{ Item domain.MediaItem }

func (PlayAction) Type() string       { return "modal_play" }
func (DetailsAction) Type() string    { return "modal_details" }
func (ToggleListAction) Type() string { return "modal_toggle_list" }
func (CloseAction) Type() string      { return "modal_close" }

// Model is the modal state. Token is the card it was opened from.
type Model struct {
	Token  uuid.UUID
	Item   domain.MediaItem
	Index  int
	InList bool
	Open   bool
}

// Reduce applies one key. Every key is consumed by the caller.
func Reduce(m Model, k types.Key) (Model, []types.Action) {
	if !m.Open {
		return m, nil
	}
	switch k {
	case types.KeyLeft:
		m.Index = max(0, m.Index-1)
	case types.KeyRight:
		m.Index = min(Count-1, m.Index+1)
	case types.KeyUp, types.KeyDown:
		// swallowed: nothing above or below to release to
	case types.KeyConfirm:
		switch Choice(m.Index) {
		case ChoicePlay:
			m.Open = false
			return m, []types.Action{PlayAction{Item: m.Item}}
		case ChoiceDetails:
			m.Open = false
			return m, []types.Action{DetailsAction{Item: m.Item}}
		case ChoiceToggleList:
			m.InList = !m.InList
			return m, []types.Action{ToggleListAction{Token: m.Token, Item: m.Item, Add: m.InList}}
		}
	case types.KeyBack:
		m.Open = false
		return m, []types.Action{CloseAction{Item: m.Item}}
	}
	return m, nil
}

// Modal wraps the model as a capture owner with a focus trap over its
// three buttons
type Modal struct {
	Model
	trap *focustrap.Trap
}

// Open creates an open modal for the card holding token. Focus returns to
// that card on close.
func Open(item domain.MediaItem, inList bool, token uuid.UUID) (*Modal, tea.Cmd) {
	m := &Modal{
		Model: Model{Token: token, Item: item, InList: inList, Open: true},
		trap:  focustrap.New(OwnerName),
	}
	m.trap.SetMembers(memberIDs[:])
	return m, m.trap.Activate(token.String())
}

func (m *Modal) Name() string { return OwnerName }

func (m *Modal) Enter() []types.Action { return nil }

// Exit restores focus to where the modal was opened from
func (m *Modal) Exit() []types.Action {
	return m.trap.Deactivate()
}

// Mounted focuses the first action once the overlay is on screen
func (m *Modal) Mounted() {
	if len(m.trap.Mounted()) > 0 {
		m.Index = 0
	}
}

func (m *Modal) HandleKey(ev types.KeyEvent) ([]types.Action, bool) {
	if actions, ok := m.trap.HandleKey(ev.Key); ok {
		for _, a := range actions {
			if f, ok := a.(types.FocusAction); ok {
				m.Index = indexOf(f.ID)
			}
		}
		return nil, true
	}

	var actions []types.Action
	m.Model, actions = Reduce(m.Model, ev.Key)
	m.trap.Set(memberIDs[m.Index])
	if !m.Open {
		actions = append(actions, types.ReleaseAction{Owner: OwnerName})
	}
	return actions, true
}

func indexOf(id string) int {
	for i, m := range memberIDs {
		if m == id {
			return i
		}
	}
	return 0
}
