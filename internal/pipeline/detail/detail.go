// Package detail drives the single-lead detail view: the aggregate of a
// lead with its four tabs, and the action handlers (call, chat, email,
// schedule) that route through the integration-availability collaborator.
package detail

import (
	"context"

	"pipeline_backend/internal/integrations"
	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/platform/apperr"
	"pipeline_backend/platform/logger"
	"pipeline_backend/platform/phone"
)

// ActionMode describes which path an action handler took.
type ActionMode string

const (
	// ModeIntegration means a richer integration handled the action.
	ModeIntegration ActionMode = "integration"
	// ModeFallback means the caller should open the OS-level link in Href.
	ModeFallback ActionMode = "fallback"
	// ModeManual means no link applies; the caller handles it locally.
	ModeManual ActionMode = "manual"
)

// ActionResult is the outcome of a detail-view action.
type ActionResult struct {
	Action string     `json:"action"`
	Mode   ActionMode `json:"mode"`
	Href   string     `json:"href,omitempty"`
}

// Aggregate is one lead with its dependent records, shaped for the
// detail view's info header and four tabs.
type Aggregate struct {
	Lead     domain.Lead
	Stage    domain.Stage
	Messages []domain.Message
	History  []domain.HistoryItem
	Tasks    []domain.Task
	Notes    []domain.Note
}

// Service is the detail view controller.
type Service struct {
	coordinator *engine.Coordinator
	checker     integrations.Checker
	email       integrations.EmailSender
	region      string
	log         *logger.Logger
}

// New creates a detail view service. email may be nil when no SMTP
// integration is configured; the send-email action then always falls
// back to a mailto link.
func New(coordinator *engine.Coordinator, checker integrations.Checker, email integrations.EmailSender, region string, log *logger.Logger) *Service {
	return &Service{
		coordinator: coordinator,
		checker:     checker,
		email:       email,
		region:      region,
		log:         log,
	}
}

// Aggregate loads the lead with all four tabs, or nil when unknown.
func (s *Service) Aggregate(leadID string) *Aggregate {
	lead := s.coordinator.GetLead(leadID)
	if lead == nil {
		return nil
	}

	stage, _ := s.coordinator.ResolveStage(lead.StageID)
	return &Aggregate{
		Lead:     *lead,
		Stage:    stage,
		Messages: s.coordinator.Conversation(leadID),
		History:  s.coordinator.History(leadID),
		Tasks:    s.coordinator.Tasks(leadID),
		Notes:    s.coordinator.Notes(leadID),
	}
}

// available asks the checker, downgrading every failure to "not
// available": an unreachable integration must never surface as an error,
// only as the fallback path.
func (s *Service) available(ctx context.Context, kind integrations.Kind) bool {
	ok, err := s.checker.Check(ctx, kind)
	if err != nil {
		s.log.Debug("integration check failed", "kind", string(kind), "error", err)
		return false
	}
	return ok
}

// StartCall places a call through the VoIP integration when available,
// falling back to a tel: link. Returns false for unknown leads.
func (s *Service) StartCall(ctx context.Context, leadID, actor string) (ActionResult, bool) {
	lead := s.coordinator.GetLead(leadID)
	if lead == nil {
		return ActionResult{}, false
	}

	result := ActionResult{Action: "call", Mode: ModeIntegration}
	if !s.available(ctx, integrations.KindVoIP) {
		result.Mode = ModeFallback
		result.Href = "tel:" + phone.NormalizeE164(lead.Phone, s.region)
	}

	s.coordinator.RecordAction(ctx, leadID, domain.HistoryCall, "Outbound call to "+lead.Name, actor)
	return result, true
}

// StartChat opens a WhatsApp conversation when the integration is
// available, falling back to a wa.me deep link (digits only).
func (s *Service) StartChat(ctx context.Context, leadID, actor string) (ActionResult, bool) {
	lead := s.coordinator.GetLead(leadID)
	if lead == nil {
		return ActionResult{}, false
	}

	result := ActionResult{Action: "chat", Mode: ModeIntegration}
	if !s.available(ctx, integrations.KindWhatsApp) {
		result.Mode = ModeFallback
		result.Href = "https://wa.me/" + phone.DialDigits(lead.Phone, s.region)
	}

	s.coordinator.RecordAction(ctx, leadID, domain.HistoryMessage, "WhatsApp chat opened with "+lead.Name, actor)
	return result, true
}

// SendEmail delivers an email through SMTP when the integration is
// available, falling back to a mailto: link. A delivery failure also
// degrades to the fallback link; the stores are never touched by the
// failing call.
func (s *Service) SendEmail(ctx context.Context, leadID, subject, body, actor string) (ActionResult, bool) {
	lead := s.coordinator.GetLead(leadID)
	if lead == nil {
		return ActionResult{}, false
	}

	result := ActionResult{Action: "email", Mode: ModeFallback, Href: "mailto:" + lead.Email}
	if s.available(ctx, integrations.KindEmail) && s.email != nil {
		if err := s.email.Send(ctx, lead.Email, subject, body); err != nil {
			s.log.Warn("email send failed, falling back to mailto", "lead_id", leadID, "error", err)
		} else {
			result.Mode = ModeIntegration
			result.Href = ""
		}
	}

	s.coordinator.RecordAction(ctx, leadID, domain.HistoryEmail, "Email sent to "+lead.Email, actor)
	return result, true
}

// Schedule books a meeting through the calendar integration when
// available; otherwise the view schedules locally (manual mode).
func (s *Service) Schedule(ctx context.Context, leadID, summary, actor string) (ActionResult, bool) {
	lead := s.coordinator.GetLead(leadID)
	if lead == nil {
		return ActionResult{}, false
	}

	result := ActionResult{Action: "schedule", Mode: ModeIntegration}
	if !s.available(ctx, integrations.KindCalendar) {
		result.Mode = ModeManual
	}

	description := "Meeting scheduled with " + lead.Name
	if summary != "" {
		description = "Meeting scheduled: " + summary
	}
	s.coordinator.RecordAction(ctx, leadID, domain.HistoryMeeting, description, actor)
	return result, true
}

// Delete removes the lead after an explicit confirmation. Without
// confirmation the destructive action is refused; with it, deletion of
// an unknown lead remains the usual silent no-op.
func (s *Service) Delete(ctx context.Context, leadID string, confirmed bool) error {
	if !confirmed {
		return apperr.ConfirmationRequired("lead deletion requires confirmation")
	}
	s.coordinator.DeleteLead(ctx, leadID)
	return nil
}
