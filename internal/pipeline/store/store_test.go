package store

import (
	"testing"
	"time"

	"pipeline_backend/internal/pipeline/domain"
)

func TestLeadStoreListOrder(t *testing.T) {
	s := NewLeadStore()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	first := s.Create(LeadInput{Name: "First", StageID: "new-leads"})
	clock = base.Add(time.Minute)
	second := s.Create(LeadInput{Name: "Second", StageID: "new-leads"})

	leads := s.List()
	if len(leads) != 2 {
		t.Fatalf("List() = %d leads, want 2", len(leads))
	}
	if leads[0].ID != first.ID || leads[1].ID != second.ID {
		t.Error("List() is not oldest first")
	}
}

func TestLeadStoreUnreadClampsAtZero(t *testing.T) {
	s := NewLeadStore()
	lead := s.Create(LeadInput{Name: "Lead", StageID: "new-leads"})

	s.AdjustUnread(lead.ID, 2)
	s.AdjustUnread(lead.ID, -5)

	got, _ := s.Get(lead.ID)
	if got.UnreadMessages != 0 {
		t.Errorf("unread = %d, want 0", got.UnreadMessages)
	}

	s.ResetUnread("missing")
	s.AdjustUnread("missing", 1)
}

func TestHistoryStoreNewestFirst(t *testing.T) {
	s := NewHistoryStore()

	s.AppendFor("lead-1", domain.HistoryItem{Description: "older"})
	s.AppendFor("lead-1", domain.HistoryItem{Description: "newer"})

	items := s.ListFor("lead-1")
	if len(items) != 2 {
		t.Fatalf("ListFor = %d items, want 2", len(items))
	}
	if items[0].Description != "newer" || items[1].Description != "older" {
		t.Error("history is not newest first")
	}

	if got := s.ListFor("missing"); got == nil || len(got) != 0 {
		t.Errorf("ListFor unknown lead = %v, want empty slice", got)
	}
}

func TestMessageStoreInsertionOrder(t *testing.T) {
	s := NewMessageStore()

	s.AppendFor("lead-1", domain.Message{Content: "first"})
	s.AppendFor("lead-1", domain.Message{Content: "second"})

	messages := s.ListFor("lead-1")
	if messages[0].Content != "first" || messages[1].Content != "second" {
		t.Error("messages are not in insertion order")
	}

	// The returned slice is a copy; mutating it must not leak back.
	messages[0].Content = "mutated"
	if got := s.ListFor("lead-1"); got[0].Content != "first" {
		t.Error("ListFor exposed internal storage")
	}
}

func TestTaskStoreToggle(t *testing.T) {
	s := NewTaskStore()
	task := s.AppendFor("lead-1", domain.Task{Title: "Call"})

	s.Toggle("lead-1", task.ID)
	if got := s.ListFor("lead-1"); !got[0].Completed {
		t.Error("task not completed after toggle")
	}

	s.Toggle("lead-1", "missing")
	s.Toggle("missing", task.ID)
	if got := s.ListFor("lead-1"); !got[0].Completed {
		t.Error("unknown-id toggle changed the task")
	}
}

func TestNoteStoreTogglePinned(t *testing.T) {
	s := NewNoteStore()
	note := s.AppendFor("lead-1", domain.Note{Content: "remember"})

	s.TogglePinned("lead-1", note.ID)
	if got := s.ListFor("lead-1"); !got[0].Pinned {
		t.Error("note not pinned after toggle")
	}

	s.RemoveAllFor("lead-1")
	if got := s.ListFor("lead-1"); len(got) != 0 {
		t.Error("notes survived RemoveAllFor")
	}
}
