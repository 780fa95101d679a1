// Package sse provides Server-Sent Events support for real-time toasts.
package sse

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pipeline_backend/platform/logger"
)

// EventType represents different types of SSE events
type EventType string

const (
	EventLeadCreated   EventType = "lead_created"
	EventLeadMoved     EventType = "lead_moved"
	EventLeadAssigned  EventType = "lead_assigned"
	EventLeadDeleted   EventType = "lead_deleted"
	EventMessageLogged EventType = "message_logged"
	EventTaskToggled   EventType = "task_toggled"
	EventNoteAdded     EventType = "note_added"
)

// Event represents an SSE event payload
type Event struct {
	Type    EventType   `json:"type"`
	LeadID  string      `json:"leadId,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// client represents a connected SSE client
type client struct {
	id     string
	events chan Event
}

// Service manages SSE connections and event broadcasting. Every
// connected client receives every event; there is no per-user routing.
type Service struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *logger.Logger
}

// New creates a new SSE service
func New(log *logger.Logger) *Service {
	return &Service{
		clients: make(map[string]*client),
		log:     log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		close(c.events)
	}
}

// Broadcast sends an event to every connected client. A client whose
// buffer is full misses the event rather than blocking the publisher.
func (s *Service) Broadcast(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse event buffer full, dropping event", "client_id", c.id, "event", string(event.Type))
		}
	}
}

// Handler returns a Gin handler for SSE connections
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			id:     uuid.NewString(),
			events: make(chan Event, 32),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"clientId": cl.id})
		c.Writer.Flush()

		s.log.Debug("sse client connected", "client_id", cl.id)

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				s.log.Debug("sse client disconnected", "client_id", cl.id)
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close shuts down the SSE service
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		close(c.events)
	}
	s.clients = make(map[string]*client)
}
