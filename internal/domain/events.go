package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventOperationStarted  EventType = "OperationStarted"
	EventOperationFinished EventType = "OperationFinished"
	EventDeletionProgress  EventType = "DeletionProgress"
	EventDeletionCompleted EventType = "DeletionCompleted"
	EventWorkDirChanged    EventType = "WorkDirChanged"
	EventError             EventType = "Error"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// OperationStartedEvent is emitted once the run guard was acquired for an operation
type OperationStartedEvent struct {
	Name string
	At   time.Time
}

func (e OperationStartedEvent) Type() EventType { return EventOperationStarted }

// OperationFinishedEvent is emitted after the guard was released
type OperationFinishedEvent struct {
	Result OperationResult
}

func (e OperationFinishedEvent) Type() EventType { return EventOperationFinished }

// DeletionProgressEvent is emitted before each entry of a batch deletion is removed
type DeletionProgressEvent struct {
	Entry     Entry
	Index     int // position in the deletion plan
	Completed int // entries handled before this one
	Total     int // entries selected for the run
}

func (e DeletionProgressEvent) Type() EventType { return EventDeletionProgress }

// DeletionCompletedEvent is emitted when a batch deletion finished
type DeletionCompletedEvent struct {
	Deleted int
	Failed  int
}

func (e DeletionCompletedEvent) Type() EventType { return EventDeletionCompleted }

// WorkDirChangedEvent is emitted when the working directory contents changed
type WorkDirChangedEvent struct {
	Path string
}

func (e WorkDirChangedEvent) Type() EventType { return EventWorkDirChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
