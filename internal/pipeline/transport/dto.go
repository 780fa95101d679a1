package transport

import (
	"time"

	"pipeline_backend/internal/pipeline/domain"
)

// Request DTOs

type CreateLeadRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	Email          string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string   `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	StageID        string   `json:"stageId" validate:"required"`
	Priority       string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Source         string   `json:"source,omitempty" validate:"omitempty,max=100"`
	Tags           []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	PotentialValue *float64 `json:"potentialValue,omitempty" validate:"omitempty,gte=0"`
}

type MoveLeadRequest struct {
	StageID string `json:"stageId" validate:"required"`
}

type AssignLeadRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// DropRequest is a board drag gesture. A nil OverID means the drag was
// released outside any drop target.
type DropRequest struct {
	DraggedID string  `json:"draggedId" validate:"required"`
	OverID    *string `json:"overId,omitempty"`
}

type AddMessageRequest struct {
	Channel    string `json:"channel" validate:"required,oneof=whatsapp email sms phone"`
	Content    string `json:"content" validate:"required,min=1,max=5000"`
	Sender     string `json:"sender,omitempty" validate:"omitempty,max=200"`
	IsFromLead bool   `json:"isFromLead"`
}

type AddTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=300"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Assignee    string     `json:"assignee,omitempty" validate:"omitempty,max=200"`
}

type AddNoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
	Pinned  bool   `json:"pinned"`
}

type SendEmailRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=300"`
	Body    string `json:"body" validate:"required,min=1"`
}

type ScheduleRequest struct {
	Summary string `json:"summary,omitempty" validate:"omitempty,max=300"`
}

type DeleteLeadRequest struct {
	Confirm bool `json:"confirm"`
}

// Response DTOs

type StageResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Color string `json:"color"`
}

type LeadResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	StageID         string    `json:"stageId"`
	Priority        string    `json:"priority"`
	AssignedTo      string    `json:"assignedTo,omitempty"`
	Source          string    `json:"source,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	PotentialValue  *float64  `json:"potentialValue,omitempty"`
	LastContactDays int       `json:"lastContactDays"`
	UnreadMessages  int       `json:"unreadMessages"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BoardColumnResponse struct {
	Stage StageResponse  `json:"stage"`
	Leads []LeadResponse `json:"leads"`
}

type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}

type DropResponse struct {
	Outcome string `json:"outcome"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	Sender     string    `json:"sender,omitempty"`
	Content    string    `json:"content"`
	IsFromLead bool      `json:"isFromLead"`
	Timestamp  time.Time `json:"timestamp"`
}

type HistoryItemResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
	User        string    `json:"user"`
	Timestamp   time.Time `json:"timestamp"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	Assignee    string    `json:"assignee,omitempty"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	Pinned    bool      `json:"pinned"`
	Timestamp time.Time `json:"timestamp"`
}

type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type LeadDetailResponse struct {
	Lead     LeadResponse          `json:"lead"`
	Stage    StageResponse         `json:"stage"`
	Messages []MessageResponse     `json:"messages"`
	History  []HistoryItemResponse `json:"history"`
	Tasks    []TaskResponse        `json:"tasks"`
	Notes    []NoteResponse        `json:"notes"`
}

type ActionResponse struct {
	Action string `json:"action"`
	Mode   string `json:"mode"`
	Href   string `json:"href,omitempty"`
}

// Mapping helpers

func ToStageResponse(s domain.Stage) StageResponse {
	return StageResponse{ID: s.ID, Name: s.Name, Order: s.Order, Color: s.Color}
}

func ToLeadResponse(l domain.Lead, now time.Time) LeadResponse {
	return LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Email:           l.Email,
		Phone:           l.Phone,
		StageID:         l.StageID,
		Priority:        string(l.Priority),
		AssignedTo:      l.AssignedTo,
		Source:          l.Source,
		Tags:            l.Tags,
		PotentialValue:  l.PotentialValue,
		LastContactDays: l.LastContactDays(now),
		UnreadMessages:  l.UnreadMessages,
		CreatedAt:       l.CreatedAt,
	}
}

func ToMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		Channel:    string(m.Channel),
		Sender:     m.Sender,
		Content:    m.Content,
		IsFromLead: m.IsFromLead,
		Timestamp:  m.Timestamp,
	}
}

func ToHistoryItemResponse(h domain.HistoryItem) HistoryItemResponse {
	return HistoryItemResponse{
		ID:          h.ID,
		Type:        string(h.Type),
		Description: h.Description,
		Details:     h.Details,
		User:        h.User,
		Timestamp:   h.Timestamp,
	}
}

func ToTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Assignee:    t.Assignee,
	}
}

func ToNoteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Content:   n.Content,
		Author:    n.Author,
		Pinned:    n.Pinned,
		Timestamp: n.Timestamp,
	}
}

func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Role: u.Role}
}
