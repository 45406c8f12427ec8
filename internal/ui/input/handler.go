package input

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"remotetv/internal/ui/input/types"
)

// ByNavigator is the Result.By value for keys handled by spatial navigation
const ByNavigator = "nav"

// Result describes what happened to one key press
type Result struct {
	Key       types.Key
	Actions   []types.Action
	Consumed  bool
	By        string
	Debounced bool
}

// Handler is the single top-level key dispatcher. A key is offered to the
// capture owner on top of the stack, then to the focused component, and
// finally directional keys fall through to the spatial navigator.
type Handler struct {
	keys    KeyMap
	owners  []types.Owner
	focused types.Owner
	nav     types.Navigator
	limiter *rate.Limiter
	now     func() time.Time
}

// New creates a dispatcher. Directional keys arriving closer together than
// debounce are dropped; cheap remotes repeat very fast.
func New(keys KeyMap, nav types.Navigator, debounce time.Duration) *Handler {
	limit := rate.Inf
	if debounce > 0 {
		limit = rate.Every(debounce)
	}
	return &Handler{
		keys:    keys,
		nav:     nav,
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
	}
}

// SetClock replaces the debounce clock
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

func (h *Handler) Keys() KeyMap {
	return h.keys
}

// Push makes o the capture owner
func (h *Handler) Push(o types.Owner) []types.Action {
	h.owners = append(h.owners, o)
	return h.apply(o.Enter())
}

// Release removes the named capture owner wherever it sits in the stack
func (h *Handler) Release(name string) []types.Action {
	for i := len(h.owners) - 1; i >= 0; i-- {
		if h.owners[i].Name() != name {
			continue
		}
		o := h.owners[i]
		h.owners = append(h.owners[:i], h.owners[i+1:]...)
		return h.apply(o.Exit())
	}
	return nil
}

// Capture returns the current capture owner, if any
func (h *Handler) Capture() types.Owner {
	if len(h.owners) == 0 {
		return nil
	}
	return h.owners[len(h.owners)-1]
}

// Captured reports whether the named owner holds capture
func (h *Handler) Captured(name string) bool {
	for _, o := range h.owners {
		if o.Name() == name {
			return true
		}
	}
	return false
}

// Focus hands directional focus to o, blurring the previous owner
func (h *Handler) Focus(o types.Owner) []types.Action {
	if h.focused == o {
		return nil
	}
	var actions []types.Action
	if h.focused != nil {
		actions = append(actions, h.focused.Exit()...)
	}
	h.focused = o
	if o != nil {
		actions = append(actions, o.Enter()...)
	}
	return h.apply(actions)
}

func (h *Handler) Focused() types.Owner {
	return h.focused
}

// Reset drops every owner without calling Exit, e.g. when a page unmounts
func (h *Handler) Reset() {
	h.owners = nil
	h.focused = nil
}

// HandleKey routes one key message
func (h *Handler) HandleKey(msg tea.KeyMsg) Result {
	k := h.keys.Normalize(msg)
	res := Result{Key: k}
	ev := types.KeyEvent{Key: k, Msg: msg}
	if top := h.Capture(); top != nil {
		actions, consumed := top.HandleKey(ev)
		res.Actions = h.apply(actions)
		if consumed {
			res.Consumed = true
			res.By = top.Name()
			return res
		}
	}

	if h.focused != nil && k != types.KeyNone {
		actions, consumed := h.focused.HandleKey(ev)
		res.Actions = append(res.Actions, h.apply(actions)...)
		if consumed {
			res.Consumed = true
			res.By = h.focused.Name()
			return res
		}
	}

	if k.Directional() && h.nav != nil {
		// only spatial moves are debounced; owners see every key
		if !h.limiter.AllowN(h.now(), 1) {
			res.Debounced = true
			res.Consumed = true
			return res
		}
		moved := h.nav.Navigate(k)
		res.Actions = append(res.Actions, types.NavigateAction{Key: k, Moved: moved})
		res.Consumed = true
		res.By = ByNavigator
	}
	return res
}

// apply executes dispatcher-level actions and returns the rest
func (h *Handler) apply(actions []types.Action) []types.Action {
	var out []types.Action
	for _, a := range actions {
		if r, ok := a.(types.ReleaseAction); ok {
			out = append(out, h.Release(r.Owner)...)
			continue
		}
		out = append(out, a)
	}
	return out
}
