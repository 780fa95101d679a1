// Package engine implements the sales pipeline engine: a coordinator
// enforcing atomic, multi-store updates for lead lifecycle events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pipeline_backend/internal/events"
	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/store"
	"pipeline_backend/platform/logger"
)

// ErrInvalidStage is returned when a lead would reference a stage that
// does not resolve in the registry.
var ErrInvalidStage = errors.New("stage does not exist in the registry")

// Coordinator owns every pipeline store and is the only component allowed
// to mutate them. All compound operations (add, move, delete) run inside
// one critical section so readers never observe a half-applied update:
// a stage change and its history entry always land together.
//
// Operations addressed at an unknown lead id are silent no-ops by
// contract. Callers hold ids from prior reads; a stale id (a lead deleted
// meanwhile) degrades to "nothing happens" instead of an error.
type Coordinator struct {
	mu       sync.RWMutex
	registry *domain.StageRegistry
	leads    *store.LeadStore
	messages *store.MessageStore
	history  *store.HistoryStore
	tasks    *store.TaskStore
	notes    *store.NoteStore
	users    *store.UserStore
	bus      events.Bus
	log      *logger.Logger
	actor    string
	now      func() time.Time
}

// NewCoordinator wires a coordinator over fresh stores.
// defaultActor names history entries when no acting user is supplied.
func NewCoordinator(registry *domain.StageRegistry, users []domain.User, bus events.Bus, log *logger.Logger, defaultActor string) *Coordinator {
	if defaultActor == "" {
		defaultActor = "System"
	}
	return &Coordinator{
		registry: registry,
		leads:    store.NewLeadStore(),
		messages: store.NewMessageStore(),
		history:  store.NewHistoryStore(),
		tasks:    store.NewTaskStore(),
		notes:    store.NewNoteStore(),
		users:    store.NewUserStore(users),
		bus:      bus,
		log:      log,
		actor:    defaultActor,
		now:      time.Now,
	}
}

func (c *Coordinator) actorOr(actor string) string {
	if actor == "" {
		return c.actor
	}
	return actor
}

func (c *Coordinator) publish(ctx context.Context, event events.Event) {
	if c.bus != nil {
		c.bus.Publish(ctx, event)
	}
}

// AddLead creates a lead, lazily initializes its sub-entity collections
// and appends the creation history entry. The target stage must resolve
// in the registry; creating a lead outside the funnel would break the
// stage invariant for every later operation.
func (c *Coordinator) AddLead(ctx context.Context, input store.LeadInput, actor string) (domain.Lead, error) {
	if _, ok := c.registry.Resolve(input.StageID); !ok {
		return domain.Lead{}, fmt.Errorf("add lead: %w", ErrInvalidStage)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !domain.IsKnownPriority(input.Priority) {
		return domain.Lead{}, fmt.Errorf("add lead: unknown priority %q", input.Priority)
	}

	c.mu.Lock()
	lead := c.leads.Create(input)
	c.history.AppendFor(lead.ID, domain.HistoryItem{
		Type:        domain.HistoryStatus,
		Description: "Lead added to system",
		User:        c.actorOr(actor),
		Timestamp:   c.now(),
	})
	c.mu.Unlock()

	c.log.PipelineOp("add_lead", lead.ID, "stage_id", lead.StageID)
	c.publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		StageID:   lead.StageID,
	})
	return lead, nil
}

// MoveLeadToStage transitions a lead to the target stage and appends
// exactly one status history entry, both under the same lock. Unknown
// lead ids and unknown stage ids are no-ops; a move to the lead's current
// stage is a no-op as well and produces no history entry.
func (c *Coordinator) MoveLeadToStage(ctx context.Context, leadID, stageID, actor string) {
	stage, ok := c.registry.Resolve(stageID)
	if !ok {
		c.log.Warn("move rejected: unknown stage", "lead_id", leadID, "stage_id", stageID)
		return
	}

	c.mu.Lock()
	lead, found := c.leads.Get(leadID)
	if !found || lead.StageID == stageID {
		c.mu.Unlock()
		return
	}
	c.leads.UpdateStage(leadID, stageID)
	c.history.AppendFor(leadID, domain.HistoryItem{
		Type:        domain.HistoryStatus,
		Description: "Moved to " + stage.Name,
		User:        c.actorOr(actor),
		Timestamp:   c.now(),
	})
	c.mu.Unlock()

	c.log.PipelineOp("move_lead", leadID, "from", lead.StageID, "to", stageID)
	c.publish(ctx, events.LeadStageChanged{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      leadID,
		FromStageID: lead.StageID,
		ToStageID:   stageID,
		StageName:   stage.Name,
		Actor:       c.actorOr(actor),
	})
}

// AssignLead changes the lead's assignee and appends an assignment
// history entry. No-op for unknown leads or unknown users.
func (c *Coordinator) AssignLead(ctx context.Context, leadID, userID, actor string) {
	user, ok := c.users.Get(userID)
	if !ok {
		c.log.Warn("assign rejected: unknown user", "lead_id", leadID, "user_id", userID)
		return
	}

	c.mu.Lock()
	lead, found := c.leads.Get(leadID)
	if !found || lead.AssignedTo == user.Name {
		c.mu.Unlock()
		return
	}
	c.leads.UpdateAssignee(leadID, user.Name)
	c.history.AppendFor(leadID, domain.HistoryItem{
		Type:        domain.HistoryAssignment,
		Description: "Assigned to " + user.Name,
		Details:     fmt.Sprintf("from %q to %q", lead.AssignedTo, user.Name),
		User:        c.actorOr(actor),
		Timestamp:   c.now(),
	})
	c.mu.Unlock()

	c.log.PipelineOp("assign_lead", leadID, "to", user.Name)
	c.publish(ctx, events.LeadAssigned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		From:      lead.AssignedTo,
		To:        user.Name,
		Actor:     c.actorOr(actor),
	})
}

// DeleteLead removes the lead and cascades removal over every sub-entity
// store before returning. No subsequent read can observe a partial
// deletion. Unknown lead ids are no-ops.
func (c *Coordinator) DeleteLead(ctx context.Context, leadID string) {
	c.mu.Lock()
	lead, found := c.leads.Get(leadID)
	if !found {
		c.mu.Unlock()
		return
	}
	c.leads.Delete(leadID)
	c.messages.RemoveAllFor(leadID)
	c.history.RemoveAllFor(leadID)
	c.tasks.RemoveAllFor(leadID)
	c.notes.RemoveAllFor(leadID)
	c.mu.Unlock()

	c.log.PipelineOp("delete_lead", leadID)
	c.publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Name:      lead.Name,
	})
}

// AddMessage appends a conversation message and its history entry.
// Inbound messages bump the unread counter; every message counts as a
// contact moment. Returns false (no-op) for unknown leads.
func (c *Coordinator) AddMessage(ctx context.Context, leadID string, msg domain.Message) (domain.Message, bool) {
	c.mu.Lock()
	if _, found := c.leads.Get(leadID); !found {
		c.mu.Unlock()
		return domain.Message{}, false
	}
	now := c.now()
	msg.Timestamp = now
	stored := c.messages.AppendFor(leadID, msg)

	description := "Message sent"
	if stored.IsFromLead {
		description = "Message received"
		c.leads.AdjustUnread(leadID, 1)
	}
	c.history.AppendFor(leadID, domain.HistoryItem{
		Type:        domain.HistoryMessage,
		Description: description,
		Details:     "via " + string(stored.Channel),
		User:        stored.Sender,
		Timestamp:   now,
	})
	c.leads.TouchContact(leadID, now)
	c.mu.Unlock()

	c.publish(ctx, events.MessageLogged{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     leadID,
		MessageID:  stored.ID,
		IsFromLead: stored.IsFromLead,
		Channel:    string(stored.Channel),
	})
	return stored, true
}

// MarkConversationRead clears the unread counter. No-op for unknown leads.
func (c *Coordinator) MarkConversationRead(leadID string) {
	c.mu.Lock()
	c.leads.ResetUnread(leadID)
	c.mu.Unlock()
}

// AddTask appends a follow-up task. Returns false (no-op) for unknown leads.
func (c *Coordinator) AddTask(ctx context.Context, leadID string, task domain.Task) (domain.Task, bool) {
	c.mu.Lock()
	if _, found := c.leads.Get(leadID); !found {
		c.mu.Unlock()
		return domain.Task{}, false
	}
	stored := c.tasks.AppendFor(leadID, task)
	c.mu.Unlock()
	return stored, true
}

// ToggleTask flips a task's completed flag. Unknown lead or task ids
// are no-ops.
func (c *Coordinator) ToggleTask(ctx context.Context, leadID, taskID string) {
	c.mu.Lock()
	c.tasks.Toggle(leadID, taskID)
	c.mu.Unlock()

	c.publish(ctx, events.TaskToggled{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		TaskID:    taskID,
	})
}

// AddNote prepends a note. Returns false (no-op) for unknown leads.
func (c *Coordinator) AddNote(ctx context.Context, leadID string, note domain.Note) (domain.Note, bool) {
	c.mu.Lock()
	if _, found := c.leads.Get(leadID); !found {
		c.mu.Unlock()
		return domain.Note{}, false
	}
	note.Timestamp = c.now()
	stored := c.notes.AppendFor(leadID, note)
	c.mu.Unlock()

	c.publish(ctx, events.NoteAdded{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		NoteID:    stored.ID,
		Author:    stored.Author,
	})
	return stored, true
}

// ToggleNotePinned flips a note's pinned flag. Unknown lead or note ids
// are no-ops.
func (c *Coordinator) ToggleNotePinned(leadID, noteID string) {
	c.mu.Lock()
	c.notes.TogglePinned(leadID, noteID)
	c.mu.Unlock()
}

// RecordAction appends a history entry for a performed detail-view action
// (call, email, meeting) and refreshes the lead's last contact moment.
// Returns false (no-op) for unknown leads.
func (c *Coordinator) RecordAction(ctx context.Context, leadID string, actionType domain.HistoryType, description, actor string) bool {
	c.mu.Lock()
	if _, found := c.leads.Get(leadID); !found {
		c.mu.Unlock()
		return false
	}
	now := c.now()
	c.history.AppendFor(leadID, domain.HistoryItem{
		Type:        actionType,
		Description: description,
		User:        c.actorOr(actor),
		Timestamp:   now,
	})
	c.leads.TouchContact(leadID, now)
	c.mu.Unlock()

	c.log.PipelineOp("record_action", leadID, "type", string(actionType))
	return true
}

// GetLead returns the lead, or nil when unknown.
func (c *Coordinator) GetLead(leadID string) *domain.Lead {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lead, ok := c.leads.Get(leadID)
	if !ok {
		return nil
	}
	return &lead
}

// Leads returns all leads, oldest first.
func (c *Coordinator) Leads() []domain.Lead {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.leads.List()
}

// Conversation returns the lead's messages, oldest first.
// Empty for unknown leads.
func (c *Coordinator) Conversation(leadID string) []domain.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages.ListFor(leadID)
}

// History returns the lead's audit trail, newest first.
// Empty for unknown leads.
func (c *Coordinator) History(leadID string) []domain.HistoryItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.ListFor(leadID)
}

// Tasks returns the lead's tasks. Empty for unknown leads.
func (c *Coordinator) Tasks(leadID string) []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tasks.ListFor(leadID)
}

// Notes returns the lead's notes, newest first. Empty for unknown leads.
func (c *Coordinator) Notes(leadID string) []domain.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notes.ListFor(leadID)
}

// Stages returns the funnel stages in display order.
func (c *Coordinator) Stages() []domain.Stage {
	return c.registry.List()
}

// ResolveStage looks up a stage by id.
func (c *Coordinator) ResolveStage(id string) (domain.Stage, bool) {
	return c.registry.Resolve(id)
}

// Users returns the assignment reference data.
func (c *Coordinator) Users() []domain.User {
	return c.users.List()
}
