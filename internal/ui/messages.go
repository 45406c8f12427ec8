package ui

import (
	"remotetv/internal/domain"
	"remotetv/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// homeLoadedMsg carries every home row at once
type homeLoadedMsg struct {
	rows     []rowData
	progress map[string]domain.Progress
}

type rowData struct {
	title string
	items []domain.MediaItem
}

// gridPageMsg is one page of a catalog-backed grid
type gridPageMsg struct {
	page    Page
	number  int
	items   []domain.MediaItem
	hasMore bool
	err     error
}

// searchResultsMsg contains the result of a catalog search
type searchResultsMsg struct {
	query string
	items []domain.MediaItem
	err   error
}

// modalToggledMsg reports a modal list toggle whose card is no longer mounted
type modalToggledMsg struct {
	item   domain.MediaItem
	result domain.ToggleResult
}

// playedMsg contains the result of an external player run
type playedMsg struct {
	item    domain.MediaItem
	seconds int
	err     error
}

// pagerMsg contains the result of a pager run
type pagerMsg struct {
	err error
}

// statusClearMsg clears the status line if nothing newer replaced it
type statusClearMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
