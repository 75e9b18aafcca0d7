package stage

import (
	"log"
	"time"
)

// Observer receives progress during a stage run.
type Observer interface {
	// Printf logs a free-form progress line.
	Printf(format string, v ...any)

	// Event emits a structured lifecycle event.
	Event(e Event)
}

// Event is a structured stage or resource lifecycle event.
type Event struct {
	Type      EventType
	Stage     string
	Message   string
	Resource  string
	Timestamp time.Time
}

// EventType classifies stage events.
type EventType string

const (
	EventStageStarted   EventType = "stage.started"
	EventStageCompleted EventType = "stage.completed"
	EventStageFailed    EventType = "stage.failed"

	EventResourceCreating EventType = "resource.creating"
	EventResourceCreated  EventType = "resource.created"
	EventResourceExists   EventType = "resource.exists"
	EventResourceDeleting EventType = "resource.deleting"
	EventResourceDeleted  EventType = "resource.deleted"
)

// ConsoleObserver logs events through the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver returns a console-backed observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(e Event) {
	switch {
	case e.Resource != "" && e.Message != "":
		log.Printf("[%s] %s: %s (%s)", e.Stage, e.Type, e.Resource, e.Message)
	case e.Resource != "":
		log.Printf("[%s] %s: %s", e.Stage, e.Type, e.Resource)
	case e.Message != "":
		log.Printf("[%s] %s: %s", e.Stage, e.Type, e.Message)
	default:
		log.Printf("[%s] %s", e.Stage, e.Type)
	}
}

// NopObserver discards everything. Useful in tests.
type NopObserver struct{}

func (NopObserver) Printf(string, ...any) {}
func (NopObserver) Event(Event)           {}
