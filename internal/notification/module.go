// Package notification turns pipeline domain events into real-time
// toasts pushed over Server-Sent Events.
package notification

import (
	"context"
	"fmt"

	"pipeline_backend/internal/events"
	apphttp "pipeline_backend/internal/http"
	"pipeline_backend/internal/notification/sse"
	"pipeline_backend/platform/logger"
)

// Module is the notification bounded context module implementing http.Module.
type Module struct {
	sse *sse.Service
	log *logger.Logger
}

// NewModule creates and initializes the notification module.
func NewModule(log *logger.Logger) *Module {
	return &Module{
		sse: sse.New(log),
		log: log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// SSE returns the underlying stream service for shutdown handling.
func (m *Module) SSE() *sse.Service { return m.sse }

// RegisterRoutes mounts the SSE stream endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/notifications/stream", m.sse.Handler())
}

// RegisterHandlers subscribes to the pipeline events worth a toast.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadStageChanged{}.EventName(), m)
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)
	bus.Subscribe(events.LeadDeleted{}.EventName(), m)
	bus.Subscribe(events.MessageLogged{}.EventName(), m)
	bus.Subscribe(events.TaskToggled{}.EventName(), m)
	bus.Subscribe(events.NoteAdded{}.EventName(), m)
}

// Handle routes events to the broadcaster.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		m.sse.Broadcast(sse.Event{
			Type:    sse.EventLeadCreated,
			LeadID:  e.LeadID,
			Message: fmt.Sprintf("%s entered the pipeline", e.Name),
			Data:    e,
		})
	case events.LeadStageChanged:
		m.sse.Broadcast(sse.Event{
			Type:    sse.EventLeadMoved,
			LeadID:  e.LeadID,
			Message: fmt.Sprintf("Lead moved to %s", e.StageName),
			Data:    e,
		})
	case events.LeadAssigned:
		m.sse.Broadcast(sse.Event{
			Type:    sse.EventLeadAssigned,
			LeadID:  e.LeadID,
			Message: fmt.Sprintf("Lead assigned to %s", e.To),
			Data:    e,
		})
	case events.LeadDeleted:
		m.sse.Broadcast(sse.Event{
			Type:    sse.EventLeadDeleted,
			LeadID:  e.LeadID,
			Message: fmt.Sprintf("%s removed from the pipeline", e.Name),
			Data:    e,
		})
	case events.MessageLogged:
		if e.IsFromLead {
			m.sse.Broadcast(sse.Event{
				Type:    sse.EventMessageLogged,
				LeadID:  e.LeadID,
				Message: fmt.Sprintf("New %s message", e.Channel),
				Data:    e,
			})
		}
	case events.TaskToggled:
		m.sse.Broadcast(sse.Event{
			Type:   sse.EventTaskToggled,
			LeadID: e.LeadID,
			Data:   e,
		})
	case events.NoteAdded:
		m.sse.Broadcast(sse.Event{
			Type:   sse.EventNoteAdded,
			LeadID: e.LeadID,
			Data:   e,
		})
	}
	return nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
