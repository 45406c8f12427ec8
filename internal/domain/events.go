package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPageLoaded       EventType = "PageLoaded"
	EventLibraryChanged   EventType = "LibraryChanged"
	EventProgressSaved    EventType = "ProgressSaved"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventPlaybackStarted  EventType = "PlaybackStarted"
	EventPlaybackFinished EventType = "PlaybackFinished"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PageLoadedEvent is emitted when a catalog page finished loading
type PageLoadedEvent struct {
	Source  string
	Page    int
	Items   []MediaItem
	HasMore bool
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// LibraryChangedEvent is emitted after a list toggle resolved
type LibraryChangedEvent struct {
	TMDBID int
	Kind   MediaKind
	List   ListType
	Result ToggleResult
}

func (e LibraryChangedEvent) Type() EventType { return EventLibraryChanged }

// ProgressSavedEvent is emitted when playback progress was stored
type ProgressSavedEvent struct {
	Progress Progress
}

func (e ProgressSavedEvent) Type() EventType { return EventProgressSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// PlaybackStartedEvent is emitted when an external player was launched
type PlaybackStartedEvent struct {
	Item MediaItem
}

func (e PlaybackStartedEvent) Type() EventType { return EventPlaybackStarted }

// PlaybackFinishedEvent is emitted when the external player exited
type PlaybackFinishedEvent struct {
	Item    MediaItem
	Seconds int
	Err     error
}

func (e PlaybackFinishedEvent) Type() EventType { return EventPlaybackFinished }
