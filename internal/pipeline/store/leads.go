// Package store holds the in-memory stores backing the pipeline engine.
//
// The stores carry no locking of their own: they are exclusively owned by
// the pipeline coordinator, which serializes every access behind its own
// mutex. Nothing outside the coordinator may touch them.
package store

import (
	"sort"
	"time"

	"pipeline_backend/internal/pipeline/domain"

	"github.com/google/uuid"
)

// LeadInput carries the caller-supplied fields for a new lead.
type LeadInput struct {
	Name           string
	Email          string
	Phone          string
	StageID        string
	Priority       domain.Priority
	AssignedTo     string
	Source         string
	Tags           []string
	PotentialValue *float64
}

// LeadStore owns all lead records, keyed by lead id.
type LeadStore struct {
	leads map[string]*domain.Lead
	now   func() time.Time
}

// NewLeadStore creates an empty lead store.
func NewLeadStore() *LeadStore {
	return &LeadStore{
		leads: make(map[string]*domain.Lead),
		now:   time.Now,
	}
}

// Create inserts a new lead with a fresh id and returns a copy of it.
// Stage validation happens in the coordinator, which owns the registry.
func (s *LeadStore) Create(input LeadInput) domain.Lead {
	now := s.now()
	lead := &domain.Lead{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		StageID:        input.StageID,
		Priority:       input.Priority,
		AssignedTo:     input.AssignedTo,
		Source:         input.Source,
		Tags:           append([]string(nil), input.Tags...),
		PotentialValue: input.PotentialValue,
		LastContactAt:  now,
		CreatedAt:      now,
	}
	s.leads[lead.ID] = lead
	return *lead
}

// Get returns a copy of the lead, or false when unknown.
func (s *LeadStore) Get(id string) (domain.Lead, bool) {
	lead, ok := s.leads[id]
	if !ok {
		return domain.Lead{}, false
	}
	return *lead, true
}

// UpdateStage sets the lead's stage. No-op when the lead is unknown.
func (s *LeadStore) UpdateStage(id, stageID string) {
	if lead, ok := s.leads[id]; ok {
		lead.StageID = stageID
	}
}

// UpdateAssignee sets the lead's assignee. No-op when the lead is unknown.
func (s *LeadStore) UpdateAssignee(id, assignedTo string) {
	if lead, ok := s.leads[id]; ok {
		lead.AssignedTo = assignedTo
	}
}

// TouchContact records a contact moment. No-op when the lead is unknown.
func (s *LeadStore) TouchContact(id string, at time.Time) {
	if lead, ok := s.leads[id]; ok {
		lead.LastContactAt = at
	}
}

// AdjustUnread bumps the unread message counter by delta, clamping at zero.
// No-op when the lead is unknown.
func (s *LeadStore) AdjustUnread(id string, delta int) {
	if lead, ok := s.leads[id]; ok {
		lead.UnreadMessages += delta
		if lead.UnreadMessages < 0 {
			lead.UnreadMessages = 0
		}
	}
}

// ResetUnread clears the unread message counter. No-op when unknown.
func (s *LeadStore) ResetUnread(id string) {
	if lead, ok := s.leads[id]; ok {
		lead.UnreadMessages = 0
	}
}

// Delete removes the lead. No-op when the lead is unknown.
// Cascading deletes on the sub-entity stores are the coordinator's job.
func (s *LeadStore) Delete(id string) {
	delete(s.leads, id)
}

// List returns copies of all leads, oldest first.
func (s *LeadStore) List() []domain.Lead {
	out := make([]domain.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		out = append(out, *lead)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of leads.
func (s *LeadStore) Len() int {
	return len(s.leads)
}
