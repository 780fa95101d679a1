package store

import (
	"time"

	"pipeline_backend/internal/pipeline/domain"

	"github.com/google/uuid"
)

// HistoryStore holds per-lead audit trails, keyed by lead id.
// Entries are prepended: index 0 is always the newest item.
type HistoryStore struct {
	byLead map[string][]domain.HistoryItem
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{byLead: make(map[string][]domain.HistoryItem)}
}

// ListFor returns a copy of the lead's history, newest first.
// Returns an empty slice for unknown leads, never nil.
func (s *HistoryStore) ListFor(leadID string) []domain.HistoryItem {
	items := s.byLead[leadID]
	out := make([]domain.HistoryItem, len(items))
	copy(out, items)
	return out
}

// AppendFor assigns an id and prepends the entry, keeping newest-first order.
func (s *HistoryStore) AppendFor(leadID string, item domain.HistoryItem) domain.HistoryItem {
	item.ID = uuid.NewString()
	item.LeadID = leadID
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	s.byLead[leadID] = append([]domain.HistoryItem{item}, s.byLead[leadID]...)
	return item
}

// RemoveAllFor drops the lead's history.
func (s *HistoryStore) RemoveAllFor(leadID string) {
	delete(s.byLead, leadID)
}
