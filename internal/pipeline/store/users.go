package store

import (
	"sort"

	"pipeline_backend/internal/pipeline/domain"
)

// UserStore is read-only assignment reference data.
type UserStore struct {
	byID map[string]domain.User
}

// NewUserStore creates a user store from the given users.
func NewUserStore(users []domain.User) *UserStore {
	byID := make(map[string]domain.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return &UserStore{byID: byID}
}

// Get looks up a user by id.
func (s *UserStore) Get(id string) (domain.User, bool) {
	user, ok := s.byID[id]
	return user, ok
}

// List returns all users sorted by name.
func (s *UserStore) List() []domain.User {
	out := make([]domain.User, 0, len(s.byID))
	for _, user := range s.byID {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
