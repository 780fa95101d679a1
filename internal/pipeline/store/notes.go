package store

import (
	"time"

	"pipeline_backend/internal/pipeline/domain"

	"github.com/google/uuid"
)

// NoteStore holds per-lead notes, keyed by lead id.
// Notes are prepended: index 0 is always the newest note.
type NoteStore struct {
	byLead map[string][]domain.Note
}

// NewNoteStore creates an empty note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{byLead: make(map[string][]domain.Note)}
}

// ListFor returns a copy of the lead's notes, newest first.
// Returns an empty slice for unknown leads, never nil.
func (s *NoteStore) ListFor(leadID string) []domain.Note {
	notes := s.byLead[leadID]
	out := make([]domain.Note, len(notes))
	copy(out, notes)
	return out
}

// AppendFor assigns an id and prepends the note, keeping newest-first order.
func (s *NoteStore) AppendFor(leadID string, note domain.Note) domain.Note {
	note.ID = uuid.NewString()
	note.LeadID = leadID
	if note.Timestamp.IsZero() {
		note.Timestamp = time.Now()
	}
	s.byLead[leadID] = append([]domain.Note{note}, s.byLead[leadID]...)
	return note
}

// TogglePinned flips the pinned flag on the matching note.
// No-op when the note is not found under the lead.
func (s *NoteStore) TogglePinned(leadID, noteID string) {
	notes := s.byLead[leadID]
	for i := range notes {
		if notes[i].ID == noteID {
			notes[i].Pinned = !notes[i].Pinned
			return
		}
	}
}

// RemoveAllFor drops the lead's notes.
func (s *NoteStore) RemoveAllFor(leadID string) {
	delete(s.byLead, leadID)
}
