package types

// Navigation actions
type NavigateAction struct {
	Key   Key
	Moved bool // false when focus was already at the edge
}

func (a NavigateAction) Type() string { return "navigate" }

// FocusAction moves logical focus to a named member of a focus scope
type FocusAction struct {
	ID string
}

func (a FocusAction) Type() string { return "focus" }

// ReleaseAction asks the dispatcher to drop the named capture owner
type ReleaseAction struct {
	Owner string
}

func (a ReleaseAction) Type() string { return "release" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }
