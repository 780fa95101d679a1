package events

// Domain events published by the pipeline coordinator. Subscribers must
// treat them as fire-and-forget notifications: a failing subscriber never
// rolls back the operation that produced the event.

// LeadCreated is published after a lead enters the pipeline.
type LeadCreated struct {
	BaseEvent
	LeadID  string `json:"leadId"`
	Name    string `json:"name"`
	StageID string `json:"stageId"`
}

func (LeadCreated) EventName() string { return "pipeline.lead.created" }

// LeadStageChanged is published after a successful stage transition.
type LeadStageChanged struct {
	BaseEvent
	LeadID      string `json:"leadId"`
	FromStageID string `json:"fromStageId"`
	ToStageID   string `json:"toStageId"`
	StageName   string `json:"stageName"`
	Actor       string `json:"actor"`
}

func (LeadStageChanged) EventName() string { return "pipeline.lead.stage_changed" }

// LeadAssigned is published after a lead changes assignee.
type LeadAssigned struct {
	BaseEvent
	LeadID string `json:"leadId"`
	From   string `json:"from"`
	To     string `json:"to"`
	Actor  string `json:"actor"`
}

func (LeadAssigned) EventName() string { return "pipeline.lead.assigned" }

// LeadDeleted is published after a lead and its dependent records are gone.
type LeadDeleted struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Name   string `json:"name"`
}

func (LeadDeleted) EventName() string { return "pipeline.lead.deleted" }

// MessageLogged is published after a conversation message is stored.
type MessageLogged struct {
	BaseEvent
	LeadID     string `json:"leadId"`
	MessageID  string `json:"messageId"`
	IsFromLead bool   `json:"isFromLead"`
	Channel    string `json:"channel"`
}

func (MessageLogged) EventName() string { return "pipeline.message.logged" }

// TaskToggled is published after a task's completed flag flips.
type TaskToggled struct {
	BaseEvent
	LeadID string `json:"leadId"`
	TaskID string `json:"taskId"`
}

func (TaskToggled) EventName() string { return "pipeline.task.toggled" }

// NoteAdded is published after a note is stored.
type NoteAdded struct {
	BaseEvent
	LeadID string `json:"leadId"`
	NoteID string `json:"noteId"`
	Author string `json:"author"`
}

func (NoteAdded) EventName() string { return "pipeline.note.added" }
