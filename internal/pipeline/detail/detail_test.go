package detail

import (
	"context"
	"errors"
	"testing"

	"pipeline_backend/internal/integrations"
	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/internal/pipeline/store"
	"pipeline_backend/platform/apperr"
	"pipeline_backend/platform/logger"
)

type stubChecker struct {
	available map[integrations.Kind]bool
	err       error
}

func (s stubChecker) Check(_ context.Context, kind integrations.Kind) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.available[kind], nil
}

type stubSender struct {
	calls int
	err   error
}

func (s *stubSender) Send(context.Context, string, string, string) error {
	s.calls++
	return s.err
}

func newTestService(t *testing.T, checker integrations.Checker, sender integrations.EmailSender) (*Service, *engine.Coordinator, domain.Lead) {
	t.Helper()
	c := engine.NewCoordinator(domain.DefaultStageRegistry(), nil, nil, logger.New("test"), "System")
	lead, err := c.AddLead(context.Background(), store.LeadInput{
		Name:    "Maria Oliveira",
		Email:   "maria@example.com",
		Phone:   "(11) 98765-4321",
		StageID: "new-leads",
	}, "")
	if err != nil {
		t.Fatalf("AddLead: %v", err)
	}
	return New(c, checker, sender, "BR", logger.New("test")), c, lead
}

func TestAggregate(t *testing.T) {
	svc, c, lead := newTestService(t, stubChecker{}, nil)
	c.AddNote(context.Background(), lead.ID, domain.Note{Content: "note", Author: "Alice"})

	agg := svc.Aggregate(lead.ID)
	if agg == nil {
		t.Fatal("Aggregate returned nil for known lead")
	}
	if agg.Lead.ID != lead.ID || agg.Stage.ID != "new-leads" {
		t.Errorf("aggregate lead/stage = %q/%q", agg.Lead.ID, agg.Stage.ID)
	}
	if len(agg.History) != 1 || len(agg.Notes) != 1 {
		t.Errorf("aggregate tabs: history=%d notes=%d", len(agg.History), len(agg.Notes))
	}

	if svc.Aggregate("missing") != nil {
		t.Error("Aggregate returned non-nil for unknown lead")
	}
}

func TestStartCallFallback(t *testing.T) {
	svc, c, lead := newTestService(t, stubChecker{}, nil)

	result, ok := svc.StartCall(context.Background(), lead.ID, "Alice")
	if !ok {
		t.Fatal("StartCall returned false for known lead")
	}
	if result.Mode != ModeFallback {
		t.Errorf("mode = %q, want fallback", result.Mode)
	}
	if result.Href != "tel:+5511987654321" {
		t.Errorf("href = %q", result.Href)
	}

	history := c.History(lead.ID)
	if history[0].Type != domain.HistoryCall {
		t.Errorf("history type = %q, want call", history[0].Type)
	}
}

func TestStartCallIntegration(t *testing.T) {
	svc, _, lead := newTestService(t, stubChecker{available: map[integrations.Kind]bool{integrations.KindVoIP: true}}, nil)

	result, _ := svc.StartCall(context.Background(), lead.ID, "")
	if result.Mode != ModeIntegration || result.Href != "" {
		t.Errorf("result = %+v, want integration mode with no href", result)
	}
}

func TestCheckerErrorDegradesToFallback(t *testing.T) {
	svc, _, lead := newTestService(t, stubChecker{err: errors.New("probe timeout")}, nil)

	result, _ := svc.StartCall(context.Background(), lead.ID, "")
	if result.Mode != ModeFallback {
		t.Errorf("mode = %q, want fallback on checker error", result.Mode)
	}
}

func TestStartChatBuildsDigitsOnlyLink(t *testing.T) {
	svc, _, lead := newTestService(t, stubChecker{}, nil)

	result, _ := svc.StartChat(context.Background(), lead.ID, "")
	if result.Href != "https://wa.me/5511987654321" {
		t.Errorf("href = %q, want digits-only wa.me link", result.Href)
	}
}

func TestSendEmail(t *testing.T) {
	t.Run("integration path", func(t *testing.T) {
		sender := &stubSender{}
		svc, _, lead := newTestService(t, stubChecker{available: map[integrations.Kind]bool{integrations.KindEmail: true}}, sender)

		result, ok := svc.SendEmail(context.Background(), lead.ID, "Hello", "body", "")
		if !ok || result.Mode != ModeIntegration {
			t.Errorf("result = %+v, want integration mode", result)
		}
		if sender.calls != 1 {
			t.Errorf("sender calls = %d, want 1", sender.calls)
		}
	})

	t.Run("no integration falls back to mailto", func(t *testing.T) {
		svc, _, lead := newTestService(t, stubChecker{}, nil)

		result, _ := svc.SendEmail(context.Background(), lead.ID, "Hello", "body", "")
		if result.Mode != ModeFallback || result.Href != "mailto:maria@example.com" {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("send failure falls back to mailto", func(t *testing.T) {
		sender := &stubSender{err: errors.New("smtp down")}
		svc, c, lead := newTestService(t, stubChecker{available: map[integrations.Kind]bool{integrations.KindEmail: true}}, sender)

		result, _ := svc.SendEmail(context.Background(), lead.ID, "Hello", "body", "")
		if result.Mode != ModeFallback || result.Href != "mailto:maria@example.com" {
			t.Errorf("result = %+v", result)
		}
		// The action is still recorded.
		if got := c.History(lead.ID); got[0].Type != domain.HistoryEmail {
			t.Errorf("history type = %q, want email", got[0].Type)
		}
	})
}

func TestScheduleManualMode(t *testing.T) {
	svc, c, lead := newTestService(t, stubChecker{}, nil)

	result, _ := svc.Schedule(context.Background(), lead.ID, "Demo walkthrough", "")
	if result.Mode != ModeManual {
		t.Errorf("mode = %q, want manual", result.Mode)
	}

	history := c.History(lead.ID)
	if history[0].Type != domain.HistoryMeeting || history[0].Description != "Meeting scheduled: Demo walkthrough" {
		t.Errorf("history entry = %q/%q", history[0].Type, history[0].Description)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc, c, lead := newTestService(t, stubChecker{}, nil)

	err := svc.Delete(context.Background(), lead.ID, false)
	if !apperr.Is(err, apperr.KindPreconditionRequired) {
		t.Fatalf("unconfirmed delete: err = %v, want confirmation required", err)
	}
	if c.GetLead(lead.ID) == nil {
		t.Fatal("lead deleted without confirmation")
	}

	if err := svc.Delete(context.Background(), lead.ID, true); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if c.GetLead(lead.ID) != nil {
		t.Error("lead survived confirmed delete")
	}
}
