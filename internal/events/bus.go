// Package events re-exports the platform event bus for convenience.
// This allows internal modules to import events from internal/events
// while the implementation lives in platform/events.
package events

import (
	platformevents "pipeline_backend/platform/events"
	"pipeline_backend/platform/logger"
)

// Event, Handler and Bus are type aliases to the platform definitions.
type Event = platformevents.Event

type Handler = platformevents.Handler

type HandlerFunc = platformevents.HandlerFunc

type Bus = platformevents.Bus

type BaseEvent = platformevents.BaseEvent

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// InMemoryBus is a type alias to the platform InMemoryBus
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
// This is a convenience re-export from platform/events.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
