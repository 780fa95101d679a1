package store

import (
	"time"

	"pipeline_backend/internal/pipeline/domain"

	"github.com/google/uuid"
)

// MessageStore holds per-lead conversations, keyed by lead id.
// Messages are append-only in chronological insertion order.
type MessageStore struct {
	byLead map[string][]domain.Message
}

// NewMessageStore creates an empty message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{byLead: make(map[string][]domain.Message)}
}

// ListFor returns a copy of the lead's conversation, oldest first.
// Returns an empty slice for unknown leads, never nil.
func (s *MessageStore) ListFor(leadID string) []domain.Message {
	messages := s.byLead[leadID]
	out := make([]domain.Message, len(messages))
	copy(out, messages)
	return out
}

// AppendFor assigns an id and appends the message to the lead's conversation.
func (s *MessageStore) AppendFor(leadID string, msg domain.Message) domain.Message {
	msg.ID = uuid.NewString()
	msg.LeadID = leadID
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.byLead[leadID] = append(s.byLead[leadID], msg)
	return msg
}

// RemoveAllFor drops the lead's conversation.
func (s *MessageStore) RemoveAllFor(leadID string) {
	delete(s.byLead, leadID)
}
