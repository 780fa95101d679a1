package domain

import "time"

// MessageChannel identifies the channel a conversation message arrived on.
type MessageChannel string

const (
	ChannelWhatsApp MessageChannel = "whatsapp"
	ChannelEmail    MessageChannel = "email"
	ChannelSMS      MessageChannel = "sms"
	ChannelPhone    MessageChannel = "phone"
)

// Message is one entry in a lead's conversation. Append-only,
// chronological insertion order.
type Message struct {
	ID         string
	LeadID     string
	Sender     string
	Content    string
	Timestamp  time.Time
	IsFromLead bool
	Channel    MessageChannel
}

// HistoryType categorizes audit history entries.
type HistoryType string

const (
	HistoryMessage    HistoryType = "message"
	HistoryCall       HistoryType = "call"
	HistoryEmail      HistoryType = "email"
	HistoryMeeting    HistoryType = "meeting"
	HistoryStatus     HistoryType = "status"
	HistoryAssignment HistoryType = "assignment"
)

// HistoryItem is one entry in a lead's audit trail. Stored newest first.
type HistoryItem struct {
	ID          string
	LeadID      string
	Type        HistoryType
	Description string
	Details     string
	User        string
	Timestamp   time.Time
}

// Task is a follow-up item on a lead. Only the Completed flag is ever
// mutated after creation.
type Task struct {
	ID          string
	LeadID      string
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
	Assignee    string
}

// Note is a free-form annotation on a lead. Stored newest first; the
// Pinned flag is toggled independently.
type Note struct {
	ID        string
	LeadID    string
	Content   string
	Author    string
	Timestamp time.Time
	Pinned    bool
}

// User is assignment reference data; not owned by leads.
type User struct {
	ID   string
	Name string
	Role string
}
