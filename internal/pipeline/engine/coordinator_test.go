package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/store"
	"pipeline_backend/platform/logger"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	users := []domain.User{
		{ID: "u-1", Name: "Alice", Role: "Sales Rep"},
		{ID: "u-2", Name: "Bob", Role: "Sales Rep"},
	}
	return NewCoordinator(domain.DefaultStageRegistry(), users, nil, logger.New("test"), "System")
}

func mustAddLead(t *testing.T, c *Coordinator, input store.LeadInput) domain.Lead {
	t.Helper()
	lead, err := c.AddLead(context.Background(), input, "Alice")
	if err != nil {
		t.Fatalf("AddLead: %v", err)
	}
	return lead
}

func TestLeadLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)

	lead := mustAddLead(t, c, store.LeadInput{
		Name:    "Maria Oliveira",
		Email:   "maria@example.com",
		Phone:   "+5511987654321",
		StageID: "new-leads",
	})

	if lead.Priority != domain.PriorityMedium {
		t.Errorf("default priority = %q, want %q", lead.Priority, domain.PriorityMedium)
	}

	history := c.History(lead.ID)
	if len(history) != 1 {
		t.Fatalf("history after create = %d entries, want 1", len(history))
	}
	if history[0].Type != domain.HistoryStatus || history[0].Description != "Lead added to system" {
		t.Errorf("creation entry = %q/%q", history[0].Type, history[0].Description)
	}
	if history[0].User != "Alice" {
		t.Errorf("creation entry actor = %q, want Alice", history[0].User)
	}

	c.MoveLeadToStage(ctx, lead.ID, "contacted", "Alice")

	moved := c.GetLead(lead.ID)
	if moved == nil || moved.StageID != "contacted" {
		t.Fatalf("lead stage after move = %v, want contacted", moved)
	}
	history = c.History(lead.ID)
	if len(history) != 2 {
		t.Fatalf("history after move = %d entries, want 2", len(history))
	}
	// Newest first.
	if history[0].Description != "Moved to Contacted" {
		t.Errorf("move entry description = %q", history[0].Description)
	}

	c.DeleteLead(ctx, lead.ID)

	if c.GetLead(lead.ID) != nil {
		t.Error("lead still readable after delete")
	}
	if len(c.History(lead.ID)) != 0 {
		t.Error("history survived delete")
	}
	if len(c.Conversation(lead.ID)) != 0 {
		t.Error("messages survived delete")
	}
	if len(c.Tasks(lead.ID)) != 0 {
		t.Error("tasks survived delete")
	}
	if len(c.Notes(lead.ID)) != 0 {
		t.Error("notes survived delete")
	}
}

func TestAddLeadRejectsUnknownStage(t *testing.T) {
	c := newTestCoordinator(t)

	_, err := c.AddLead(context.Background(), store.LeadInput{
		Name:    "Ghost",
		StageID: "no-such-stage",
	}, "")
	if !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("AddLead with unknown stage: err = %v, want ErrInvalidStage", err)
	}
}

func TestMoveLeadEdgeCases(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	lead := mustAddLead(t, c, store.LeadInput{Name: "Lead", StageID: "new-leads"})

	t.Run("unknown stage is a no-op", func(t *testing.T) {
		c.MoveLeadToStage(ctx, lead.ID, "no-such-stage", "")
		if got := c.GetLead(lead.ID); got.StageID != "new-leads" {
			t.Errorf("stage = %q, want new-leads", got.StageID)
		}
		if len(c.History(lead.ID)) != 1 {
			t.Error("no-op move appended history")
		}
	})

	t.Run("same stage produces no history", func(t *testing.T) {
		c.MoveLeadToStage(ctx, lead.ID, "new-leads", "")
		if len(c.History(lead.ID)) != 1 {
			t.Error("same-stage move appended history")
		}
	})

	t.Run("unknown lead is a no-op", func(t *testing.T) {
		c.MoveLeadToStage(ctx, "missing", "contacted", "")
	})

	t.Run("every move appends exactly one entry", func(t *testing.T) {
		c.MoveLeadToStage(ctx, lead.ID, "contacted", "")
		c.MoveLeadToStage(ctx, lead.ID, "qualified", "")
		if got := len(c.History(lead.ID)); got != 3 {
			t.Errorf("history = %d entries, want 3 (create + 2 moves)", got)
		}
	})
}

func TestAssignLead(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	lead := mustAddLead(t, c, store.LeadInput{Name: "Lead", StageID: "new-leads"})

	c.AssignLead(ctx, lead.ID, "u-1", "Bob")

	got := c.GetLead(lead.ID)
	if got.AssignedTo != "Alice" {
		t.Errorf("assignee = %q, want Alice", got.AssignedTo)
	}
	history := c.History(lead.ID)
	if len(history) != 2 || history[0].Type != domain.HistoryAssignment {
		t.Fatalf("assignment history missing, got %d entries", len(history))
	}

	// Unknown user leaves everything untouched.
	c.AssignLead(ctx, lead.ID, "u-missing", "Bob")
	if got := c.GetLead(lead.ID); got.AssignedTo != "Alice" {
		t.Errorf("assignee after unknown user = %q, want Alice", got.AssignedTo)
	}
	if len(c.History(lead.ID)) != 2 {
		t.Error("unknown user assignment appended history")
	}
}

func TestAddMessage(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	lead := mustAddLead(t, c, store.LeadInput{Name: "Lead", StageID: "new-leads"})

	inbound, ok := c.AddMessage(ctx, lead.ID, domain.Message{
		Channel:    domain.ChannelWhatsApp,
		Sender:     "Lead",
		Content:    "hello",
		IsFromLead: true,
	})
	if !ok {
		t.Fatal("AddMessage returned false for known lead")
	}
	if inbound.ID == "" || inbound.Timestamp.IsZero() {
		t.Errorf("stored message missing id or timestamp: %+v", inbound)
	}

	got := c.GetLead(lead.ID)
	if got.UnreadMessages != 1 {
		t.Errorf("unread = %d, want 1 after inbound message", got.UnreadMessages)
	}

	history := c.History(lead.ID)
	if history[0].Type != domain.HistoryMessage || history[0].Description != "Message received" {
		t.Errorf("inbound history entry = %q/%q", history[0].Type, history[0].Description)
	}
	if history[0].Details != "via whatsapp" {
		t.Errorf("inbound history details = %q", history[0].Details)
	}

	// Outbound replies do not touch the unread counter.
	if _, ok := c.AddMessage(ctx, lead.ID, domain.Message{
		Channel: domain.ChannelWhatsApp,
		Sender:  "Alice",
		Content: "hi there",
	}); !ok {
		t.Fatal("outbound AddMessage returned false")
	}
	if got := c.GetLead(lead.ID); got.UnreadMessages != 1 {
		t.Errorf("unread = %d after outbound message, want 1", got.UnreadMessages)
	}

	messages := c.Conversation(lead.ID)
	if len(messages) != 2 {
		t.Fatalf("conversation = %d messages, want 2", len(messages))
	}
	// Chronological: the inbound message came first.
	if !messages[0].IsFromLead || messages[1].IsFromLead {
		t.Error("conversation is not in insertion order")
	}

	c.MarkConversationRead(lead.ID)
	if got := c.GetLead(lead.ID); got.UnreadMessages != 0 {
		t.Errorf("unread = %d after mark read, want 0", got.UnreadMessages)
	}

	if _, ok := c.AddMessage(ctx, "missing", domain.Message{Content: "x"}); ok {
		t.Error("AddMessage returned true for unknown lead")
	}
}

func TestTaskToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	lead := mustAddLead(t, c, store.LeadInput{Name: "Lead", StageID: "new-leads"})

	task, ok := c.AddTask(ctx, lead.ID, domain.Task{Title: "Call back"})
	if !ok {
		t.Fatal("AddTask returned false for known lead")
	}

	c.ToggleTask(ctx, lead.ID, task.ID)
	if got := c.Tasks(lead.ID); !got[0].Completed {
		t.Error("task not completed after first toggle")
	}

	c.ToggleTask(ctx, lead.ID, task.ID)
	if got := c.Tasks(lead.ID); got[0].Completed {
		t.Error("task still completed after second toggle")
	}

	// Unknown ids change nothing.
	c.ToggleTask(ctx, lead.ID, "missing")
	c.ToggleTask(ctx, "missing", task.ID)
	if got := c.Tasks(lead.ID); got[0].Completed {
		t.Error("unknown-id toggle flipped the task")
	}
}

func TestNotesNewestFirst(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	lead := mustAddLead(t, c, store.LeadInput{Name: "Lead", StageID: "new-leads"})

	first, _ := c.AddNote(ctx, lead.ID, domain.Note{Content: "first", Author: "Alice"})
	second, _ := c.AddNote(ctx, lead.ID, domain.Note{Content: "second", Author: "Alice"})

	notes := c.Notes(lead.ID)
	if len(notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(notes))
	}
	if notes[0].ID != second.ID || notes[1].ID != first.ID {
		t.Error("notes are not newest first")
	}

	c.ToggleNotePinned(lead.ID, first.ID)
	notes = c.Notes(lead.ID)
	if !notes[1].Pinned {
		t.Error("note not pinned after toggle")
	}
}

func TestRecordActionTouchesContact(t *testing.T) {
	ctx := context.Background()
	c := newTestCoordinator(t)
	lead := mustAddLead(t, c, store.LeadInput{Name: "Lead", StageID: "new-leads"})

	past := time.Now().Add(-72 * time.Hour)
	c.now = func() time.Time { return past }
	if !c.RecordAction(ctx, lead.ID, domain.HistoryCall, "Outbound call", "Alice") {
		t.Fatal("RecordAction returned false for known lead")
	}
	c.now = time.Now

	got := c.GetLead(lead.ID)
	if !got.LastContactAt.Equal(past) {
		t.Errorf("LastContactAt = %v, want %v", got.LastContactAt, past)
	}
	if days := got.LastContactDays(time.Now()); days != 3 {
		t.Errorf("LastContactDays = %d, want 3", days)
	}

	history := c.History(lead.ID)
	if history[0].Type != domain.HistoryCall {
		t.Errorf("action history type = %q, want call", history[0].Type)
	}

	if c.RecordAction(ctx, "missing", domain.HistoryCall, "x", "") {
		t.Error("RecordAction returned true for unknown lead")
	}
}
