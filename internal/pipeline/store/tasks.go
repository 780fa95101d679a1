package store

import (
	"pipeline_backend/internal/pipeline/domain"

	"github.com/google/uuid"
)

// TaskStore holds per-lead follow-up tasks, keyed by lead id.
type TaskStore struct {
	byLead map[string][]domain.Task
}

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{byLead: make(map[string][]domain.Task)}
}

// ListFor returns a copy of the lead's tasks in insertion order.
// Returns an empty slice for unknown leads, never nil.
func (s *TaskStore) ListFor(leadID string) []domain.Task {
	tasks := s.byLead[leadID]
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}

// AppendFor assigns an id and appends the task.
func (s *TaskStore) AppendFor(leadID string, task domain.Task) domain.Task {
	task.ID = uuid.NewString()
	task.LeadID = leadID
	s.byLead[leadID] = append(s.byLead[leadID], task)
	return task
}

// Toggle flips the completed flag on the matching task.
// No-op when the task is not found under the lead.
func (s *TaskStore) Toggle(leadID, taskID string) {
	tasks := s.byLead[leadID]
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Completed = !tasks[i].Completed
			return
		}
	}
}

// RemoveAllFor drops the lead's tasks.
func (s *TaskStore) RemoveAllFor(leadID string) {
	delete(s.byLead, leadID)
}
