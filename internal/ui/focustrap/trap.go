// Package focustrap keeps Tab focus inside a scope, such as a modal, and
// hands focus back to whatever held it before the scope opened.
package focustrap

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"remotetv/internal/ui/input/types"
)

// MountDelay gives the scope a frame to render before the first member
// is focused
const MountDelay = 100 * time.Millisecond

// MountedMsg tells the trap its scope is on screen
type MountedMsg struct {
	Scope string
}

// Trap restricts focus to an ordered list of member ids
type Trap struct {
	scope    string
	members  []string
	current  int
	active   bool
	previous string
	hasPrev  bool
}

func New(scope string) *Trap {
	return &Trap{scope: scope}
}

func (t *Trap) Scope() string { return t.scope }

func (t *Trap) Active() bool { return t.active }

// SetMembers replaces the focusable members, in tab order
func (t *Trap) SetMembers(ids []string) {
	t.members = append([]string(nil), ids...)
	if t.current >= len(t.members) {
		t.current = 0
	}
}

// Activate remembers the focus held before the trap and schedules focus
// of the first member once the scope has mounted.
func (t *Trap) Activate(previous string) tea.Cmd {
	t.active = true
	t.previous = previous
	t.hasPrev = true
	t.current = 0
	scope := t.scope
	return tea.Tick(MountDelay, func(time.Time) tea.Msg {
		return MountedMsg{Scope: scope}
	})
}

// Mounted focuses the first member. It is a no-op once deactivated.
func (t *Trap) Mounted() []types.Action {
	if !t.active || len(t.members) == 0 {
		return nil
	}
	t.current = 0
	return []types.Action{types.FocusAction{ID: t.members[0]}}
}

// Current returns the focused member id
func (t *Trap) Current() (string, bool) {
	if !t.active || len(t.members) == 0 {
		return "", false
	}
	return t.members[t.current], true
}

// Set records that focus moved to member id by other means
func (t *Trap) Set(id string) {
	for i, m := range t.members {
		if m == id {
			t.current = i
			return
		}
	}
}

// HandleKey cycles Tab and Shift+Tab within the scope, wrapping at both ends
func (t *Trap) HandleKey(k types.Key) ([]types.Action, bool) {
	if !t.active || (k != types.KeyTab && k != types.KeyShiftTab) {
		return nil, false
	}
	if len(t.members) == 0 {
		return nil, true
	}
	n := len(t.members)
	if k == types.KeyTab {
		t.current = (t.current + 1) % n
	} else {
		t.current = (t.current - 1 + n) % n
	}
	return []types.Action{types.FocusAction{ID: t.members[t.current]}}, true
}

// Deactivate restores the focus remembered on activation and forgets it.
// A second call returns nothing.
func (t *Trap) Deactivate() []types.Action {
	t.active = false
	if !t.hasPrev {
		return nil
	}
	prev := t.previous
	t.previous, t.hasPrev = "", false
	return []types.Action{types.FocusAction{ID: prev}}
}
