package domain

import "time"

// Priority is the commercial urgency of a lead.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var knownPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// IsKnownPriority reports whether the value is a valid priority.
func IsKnownPriority(p Priority) bool {
	_, ok := knownPriorities[p]
	return ok
}

// Lead is a prospective customer tracked through the funnel.
// StageID must always resolve in the stage registry; the coordinator
// guards every write that could break that.
type Lead struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	StageID        string
	Priority       Priority
	AssignedTo     string
	Source         string
	Tags           []string
	PotentialValue *float64
	LastContactAt  time.Time
	UnreadMessages int
	CreatedAt      time.Time
}

// LastContactDays returns whole days since the last recorded contact.
func (l Lead) LastContactDays(now time.Time) int {
	if l.LastContactAt.IsZero() {
		return 0
	}
	days := int(now.Sub(l.LastContactAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
