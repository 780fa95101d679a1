package sse

import (
	"testing"

	"pipeline_backend/platform/logger"
)

func newTestService() *Service {
	return New(logger.New("test"))
}

func connect(s *Service, buffer int) *client {
	c := &client{id: "c-" + string(rune('a'+len(s.clients))), events: make(chan Event, buffer)}
	s.addClient(c)
	return c
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	s := newTestService()
	first := connect(s, 4)
	second := connect(s, 4)

	s.Broadcast(Event{Type: EventLeadCreated, LeadID: "lead-1", Message: "New lead"})

	for _, c := range []*client{first, second} {
		select {
		case got := <-c.events:
			if got.Type != EventLeadCreated || got.LeadID != "lead-1" {
				t.Fatalf("client %s received %+v", c.id, got)
			}
		default:
			t.Fatalf("client %s received nothing", c.id)
		}
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	s := newTestService()
	full := connect(s, 1)
	s.Broadcast(Event{Type: EventLeadMoved, LeadID: "lead-1"})

	// The buffer is now full; the next broadcast must not block.
	done := make(chan struct{})
	go func() {
		s.Broadcast(Event{Type: EventLeadMoved, LeadID: "lead-2"})
		close(done)
	}()
	<-done

	got := <-full.events
	if got.LeadID != "lead-1" {
		t.Fatalf("expected the first event to survive, got %+v", got)
	}
	select {
	case extra := <-full.events:
		t.Fatalf("expected the second event to be dropped, got %+v", extra)
	default:
	}
}

func TestRemoveClientStopsDelivery(t *testing.T) {
	s := newTestService()
	c := connect(s, 4)
	s.removeClient(c)

	if _, ok := <-c.events; ok {
		t.Fatal("expected channel to be closed after removal")
	}

	s.Broadcast(Event{Type: EventNoteAdded, LeadID: "lead-1"})
	if len(s.clients) != 0 {
		t.Fatalf("expected no registered clients, got %d", len(s.clients))
	}
}

func TestCloseDisconnectsAllClients(t *testing.T) {
	s := newTestService()
	first := connect(s, 4)
	second := connect(s, 4)

	s.Close()

	for _, c := range []*client{first, second} {
		if _, ok := <-c.events; ok {
			t.Fatalf("client %s channel still open after Close", c.id)
		}
	}
	if len(s.clients) != 0 {
		t.Fatalf("expected client registry to be emptied, got %d entries", len(s.clients))
	}
}
