package card

import (
	"remotetv/internal/ui/input/types"
)

// OwnerName identifies cards in dispatcher results
const OwnerName = "card"

// A mounted card is the dispatcher's focused owner while it holds
// directional focus.

func (m *Model) Name() string { return OwnerName }

func (m *Model) Enter() []types.Action {
	return m.apply(Activate{Reason: ReasonFocus})
}

func (m *Model) Exit() []types.Action {
	return m.apply(Deactivate{Reason: ReasonBlur})
}

func (m *Model) HandleKey(ev types.KeyEvent) ([]types.Action, bool) {
	next, actions, consumed := Reduce(*m, Key{Key: ev.Key})
	*m = next
	return actions, consumed
}

// Apply runs a non-key event against the mounted card
func (m *Model) Apply(ev Event) []types.Action {
	return m.apply(ev)
}

func (m *Model) apply(ev Event) []types.Action {
	next, actions, _ := Reduce(*m, ev)
	*m = next
	return actions
}
