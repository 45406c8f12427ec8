// Package card is the per-item focus controller. A card is collapsed,
// active (hovered or focused) or in button mode, where left and right walk
// the in-card actions. All transitions go through Reduce.
package card

import (
	"time"

	"github.com/google/uuid"

	"remotetv/internal/catalog"
	"remotetv/internal/domain"
	"remotetv/internal/imageload"
	"remotetv/internal/ui/input/types"
)

// DefaultHoverDelay debounces pointer activation
const DefaultHoverDelay = 400 * time.Millisecond

type State int

const (
	Collapsed State = iota
	Active
	ButtonMode
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case ButtonMode:
		return "button-mode"
	}
	return "collapsed"
}

// Reason says what triggered an activation or deactivation
type Reason int

const (
	ReasonFocus Reason = iota
	ReasonPointer
	ReasonBlur
	ReasonPointerLeave
)

type Button int

const (
	ButtonPlay Button = iota
	ButtonWatchlist
	ButtonWatchLater
	ButtonDetails
)

// ButtonCount is the number of in-card actions
const ButtonCount = 4

type preloadState int

const (
	preloadIdle preloadState = iota
	preloadPending
	preloadDone
)

// Options shared by every card on a page
type Options struct {
	HoverDelay time.Duration
	// Modal routes Confirm to the action modal instead of button mode
	Modal bool
	// Images disables poster loading when false
	Images bool
}

// Model is one mounted card. Token identifies this mount; results that
// carry another token belong to an earlier mount and are dropped.
type Model struct {
	Item     domain.MediaItem
	Token    uuid.UUID
	State    State
	Button   Button
	Focused  bool
	Hovered  bool
	Art      catalog.Artwork
	Status   domain.LibraryStatus
	Progress float64

	Poster      imageload.Image
	Backdrop    imageload.Image
	HasBackdrop bool

	opts     Options
	hoverSeq int
	preload  preloadState
	toggled  bool
	inFlight [2]bool
}

// New mounts a card
func New(item domain.MediaItem, opts Options) *Model {
	if opts.HoverDelay <= 0 {
		opts.HoverDelay = DefaultHoverDelay
	}
	m := &Model{Item: item, Token: uuid.New(), opts: opts}
	src := ""
	if opts.Images {
		src = item.Poster()
	}
	m.Poster, _ = imageload.New(src, imageload.Options{PreviewOf: catalog.PreviewURL})
	return m
}

// Event drives Reduce
type Event interface{ isEvent() }

type Activate struct{ Reason Reason }

// HoverDue fires once the pointer debounce has elapsed
type HoverDue struct {
	Token uuid.UUID
	Seq   int
}

type Deactivate struct{ Reason Reason }

type Key struct{ Key types.Key }

// Preloaded carries the secondary media fetched on first activation
type Preloaded struct {
	Token  uuid.UUID
	Art    catalog.Artwork
	Status domain.LibraryStatus
	Err    error
}

// Toggle flips a list from outside the card's own buttons
type Toggle struct{ List domain.ListType }

// Toggled reports the store's answer to a list toggle
type Toggled struct {
	Token  uuid.UUID
	List   domain.ListType
	Result domain.ToggleResult
}

func (Activate) isEvent()   {}
func (HoverDue) isEvent()   {}
func (Deactivate) isEvent() {}
func (Key) isEvent()        {}
func (Preloaded) isEvent()  {}
func (Toggle) isEvent()     {}
func (Toggled) isEvent()    {}

// Effects
type ScheduleHover struct {
	Token uuid.UUID
	Seq   int
	After time.Duration
}
type StartPreload struct {
	Token uuid.UUID
	Item  domain.MediaItem
}
type PlayAction struct{ Item domain.MediaItem }
type DetailsAction struct{ Item domain.MediaItem }
type ToggleAction struct {
	Token uuid.UUID
	Item  domain.MediaItem
	List  domain.ListType
}
type OpenModalAction struct {
	Token  uuid.UUID
	Item   domain.MediaItem
	InList bool
}

// FocusSelfAction returns directional focus to the card itself
type FocusSelfAction struct{ Token uuid.UUID }
type SignInRequiredAction struct{ List domain.ListType }
type LoadImagesAction struct{ Requests []imageload.Request }

func (ScheduleHover) Type() string        { return "card_schedule_hover" }
func (StartPreload) Type() string         { return "card_preload" }
func (PlayAction) Type() string           { return "card_play" }
func (DetailsAction) Type() string        { return "card_details" }
func (ToggleAction) Type() string         { return "card_toggle" }
func (OpenModalAction) Type() string      { return "card_open_modal" }
func (FocusSelfAction) Type() string      { return "card_focus_self" }
func (SignInRequiredAction) Type() string { return "card_sign_in_required" }
func (LoadImagesAction) Type() string     { return "card_load_images" }

// Reduce applies ev and returns the next model, its effects, and whether
// a key event was consumed.
func Reduce(m Model, ev Event) (Model, []types.Action, bool) {
	switch ev := ev.(type) {
	case Activate:
		if ev.Reason == ReasonPointer {
			m.Hovered = true
			if m.State != Collapsed {
				return m, nil, false
			}
			m.hoverSeq++
			return m, []types.Action{ScheduleHover{Token: m.Token, Seq: m.hoverSeq, After: m.opts.HoverDelay}}, false
		}
		m.Focused = true
		return m.activate()

	case HoverDue:
		if ev.Token != m.Token || ev.Seq != m.hoverSeq || !m.Hovered {
			return m, nil, false
		}
		return m.activate()

	case Deactivate:
		if ev.Reason == ReasonPointerLeave {
			m.Hovered = false
		} else {
			m.Focused = false
		}
		m.hoverSeq++
		m.State = Collapsed
		m.Button = ButtonPlay
		return m, nil, false

	case Key:
		return m.key(ev.Key)

	case Preloaded:
		if ev.Token != m.Token {
			return m, nil, false
		}
		m.preload = preloadDone
		if !m.toggled {
			m.Status = ev.Status
		}
		if ev.Err != nil {
			return m, nil, false
		}
		m.Art = ev.Art
		if m.opts.Images && ev.Art.BackdropURL != "" && !m.HasBackdrop {
			var reqs []imageload.Request
			m.Backdrop, reqs = imageload.New(ev.Art.BackdropURL, imageload.Options{Eager: true})
			m.HasBackdrop = true
			return m, []types.Action{LoadImagesAction{Requests: reqs}}, false
		}
		return m, nil, false

	case Toggle:
		return m.toggle(ev.List)

	case Toggled:
		if ev.Token != m.Token {
			return m, nil, false
		}
		m.inFlight[listIndex(ev.List)] = false
		switch ev.Result {
		case domain.ToggleAuthRequired:
			m.Status = flip(m.Status, ev.List)
			return m, []types.Action{SignInRequiredAction{List: ev.List}}, false
		case domain.ToggleAdded:
			m.Status = set(m.Status, ev.List, true)
		case domain.ToggleRemoved:
			m.Status = set(m.Status, ev.List, false)
		}
		return m, nil, false
	}
	return m, nil, false
}

func (m Model) activate() (Model, []types.Action, bool) {
	if m.State == Collapsed {
		m.State = Active
	}
	if m.preload != preloadIdle {
		return m, nil, false
	}
	m.preload = preloadPending
	return m, []types.Action{StartPreload{Token: m.Token, Item: m.Item}}, false
}

func (m Model) key(k types.Key) (Model, []types.Action, bool) {
	switch m.State {
	case Active:
		if k != types.KeyConfirm || !m.Focused {
			return m, nil, false
		}
		if m.opts.Modal {
			return m, []types.Action{OpenModalAction{Token: m.Token, Item: m.Item, InList: m.Status.InWatchlist}}, true
		}
		m.State = ButtonMode
		m.Button = ButtonPlay
		return m, nil, true

	case ButtonMode:
		switch k {
		case types.KeyLeft:
			m.Button = max(ButtonPlay, m.Button-1)
			return m, nil, true
		case types.KeyRight:
			m.Button = min(ButtonCount-1, m.Button+1)
			return m, nil, true
		case types.KeyUp, types.KeyDown:
			// release capture so navigation can move to the next row
			m.State = Active
			m.Button = ButtonPlay
			return m, nil, false
		case types.KeyBack:
			m.State = Active
			m.Button = ButtonPlay
			return m, []types.Action{FocusSelfAction{Token: m.Token}}, true
		case types.KeyConfirm:
			return m.press()
		}
	}
	return m, nil, false
}

func (m Model) press() (Model, []types.Action, bool) {
	switch m.Button {
	case ButtonPlay:
		return m, []types.Action{PlayAction{Item: m.Item}}, true
	case ButtonDetails:
		return m, []types.Action{DetailsAction{Item: m.Item}}, true
	}

	list := domain.ListWatchlist
	if m.Button == ButtonWatchLater {
		list = domain.ListWatchLater
	}
	return m.toggle(list)
}

func (m Model) toggle(list domain.ListType) (Model, []types.Action, bool) {
	i := listIndex(list)
	if m.inFlight[i] || m.Item.TMDBID == 0 {
		return m, nil, true
	}
	m.inFlight[i] = true
	m.toggled = true
	m.Status = flip(m.Status, list)
	return m, []types.Action{ToggleAction{Token: m.Token, Item: m.Item, List: list}}, true
}

// Intersect starts the lazy poster load once the card nears the viewport
func (m Model) Intersect() (Model, []imageload.Request) {
	var reqs []imageload.Request
	m.Poster, reqs = imageload.Reduce(m.Poster, imageload.Intersect{})
	return m, reqs
}

// WithImage applies a finished image load addressed to this card
func (m Model) WithImage(msg imageload.LoadedMsg) (Model, []imageload.Request, bool) {
	var reqs []imageload.Request
	switch msg.ID {
	case m.Poster.ID:
		m.Poster, reqs = imageload.Reduce(m.Poster, msg.Event())
	case m.Backdrop.ID:
		if !m.HasBackdrop {
			return m, nil, false
		}
		m.Backdrop, reqs = imageload.Reduce(m.Backdrop, msg.Event())
	default:
		return m, nil, false
	}
	return m, reqs, true
}

// Preloaded reports whether secondary media has been requested before
func (m Model) Preloaded() bool {
	return m.preload != preloadIdle
}

func listIndex(l domain.ListType) int {
	if l == domain.ListWatchLater {
		return 1
	}
	return 0
}

func flip(s domain.LibraryStatus, l domain.ListType) domain.LibraryStatus {
	return set(s, l, !s.In(l))
}

func set(s domain.LibraryStatus, l domain.ListType, v bool) domain.LibraryStatus {
	if l == domain.ListWatchLater {
		s.InWatchLater = v
	} else {
		s.InWatchlist = v
	}
	return s
}
