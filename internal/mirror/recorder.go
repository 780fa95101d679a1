package mirror

import (
	"context"
	"encoding/json"
	"time"

	"pipeline_backend/internal/events"
	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/platform/logger"
)

// Recorder listens to pipeline events and enqueues mirror tasks. Enqueue
// failures are logged and swallowed: the mirror never blocks or fails a
// pipeline operation.
type Recorder struct {
	client      *Client
	coordinator *engine.Coordinator
	log         *logger.Logger
}

func NewRecorder(client *Client, coordinator *engine.Coordinator, log *logger.Logger) *Recorder {
	return &Recorder{
		client:      client,
		coordinator: coordinator,
		log:         log,
	}
}

// RegisterHandlers subscribes to every event that changes lead state.
func (r *Recorder) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), r)
	bus.Subscribe(events.LeadStageChanged{}.EventName(), r)
	bus.Subscribe(events.LeadAssigned{}.EventName(), r)
	bus.Subscribe(events.LeadDeleted{}.EventName(), r)
	bus.Subscribe(events.MessageLogged{}.EventName(), r)
}

// Handle routes events to the matching mirror task.
func (r *Recorder) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		r.snapshot(ctx, e.LeadID, "created")
	case events.LeadStageChanged:
		r.snapshot(ctx, e.LeadID, "stage_changed")
	case events.LeadAssigned:
		r.snapshot(ctx, e.LeadID, "assigned")
	case events.MessageLogged:
		r.snapshot(ctx, e.LeadID, "message_logged")
	case events.LeadDeleted:
		if err := r.client.EnqueueLeadPurge(ctx, LeadPurgePayload{LeadID: e.LeadID}); err != nil {
			r.log.Warn("mirror purge enqueue failed", "lead_id", e.LeadID, "error", err)
		}
	}
	return nil
}

func (r *Recorder) snapshot(ctx context.Context, leadID, operation string) {
	lead := r.coordinator.GetLead(leadID)
	if lead == nil {
		return
	}

	data, err := json.Marshal(leadSnapshot(*lead))
	if err != nil {
		r.log.Warn("mirror snapshot marshal failed", "lead_id", leadID, "error", err)
		return
	}

	err = r.client.EnqueueLeadSnapshot(ctx, LeadSnapshotPayload{
		LeadID:    leadID,
		Operation: operation,
		Snapshot:  data,
	})
	if err != nil {
		r.log.Warn("mirror snapshot enqueue failed", "lead_id", leadID, "error", err)
	}
}

// SyncProfiles enqueues one profile sync per team member. Called once at
// startup so the mirror carries the current roster.
func (r *Recorder) SyncProfiles(ctx context.Context, users []domain.User) {
	for _, u := range users {
		err := r.client.EnqueueProfileSync(ctx, ProfileSyncPayload{
			UserID: u.ID,
			Name:   u.Name,
			Role:   u.Role,
		})
		if err != nil {
			r.log.Warn("profile sync enqueue failed", "user_id", u.ID, "error", err)
		}
	}
}

type snapshotDoc struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	StageID        string    `json:"stageId"`
	Priority       string    `json:"priority"`
	AssignedTo     string    `json:"assignedTo,omitempty"`
	Source         string    `json:"source,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	PotentialValue *float64  `json:"potentialValue,omitempty"`
	UnreadMessages int       `json:"unreadMessages"`
	LastContactAt  time.Time `json:"lastContactAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func leadSnapshot(l domain.Lead) snapshotDoc {
	return snapshotDoc{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		StageID:        l.StageID,
		Priority:       string(l.Priority),
		AssignedTo:     l.AssignedTo,
		Source:         l.Source,
		Tags:           l.Tags,
		PotentialValue: l.PotentialValue,
		UnreadMessages: l.UnreadMessages,
		LastContactAt:  l.LastContactAt.UTC(),
		CreatedAt:      l.CreatedAt.UTC(),
	}
}
