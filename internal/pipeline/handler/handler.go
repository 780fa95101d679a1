// Package handler exposes the pipeline over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pipeline_backend/internal/pipeline/board"
	"pipeline_backend/internal/pipeline/detail"
	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/internal/pipeline/store"
	"pipeline_backend/internal/pipeline/transport"
	"pipeline_backend/platform/httpkit"
	"pipeline_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadNotFound     = "lead not found"
	msgInvalidStage     = "unknown stage"
)

// Handler handles HTTP requests for the pipeline.
type Handler struct {
	coordinator *engine.Coordinator
	board       *board.Service
	detail      *detail.Service
	val         *validator.Validator
	now         func() time.Time
}

// New creates a new pipeline handler.
func New(coordinator *engine.Coordinator, boardSvc *board.Service, detailSvc *detail.Service, val *validator.Validator) *Handler {
	return &Handler{
		coordinator: coordinator,
		board:       boardSvc,
		detail:      detailSvc,
		val:         val,
		now:         time.Now,
	}
}

func (h *Handler) bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

// actor resolves the acting user from the X-Actor header; an empty value
// lets the coordinator fall back to its configured default.
func actor(c *gin.Context) string {
	return c.GetHeader("X-Actor")
}

// ListStages retrieves the stage funnel in display order.
// GET /api/v1/pipeline/stages
func (h *Handler) ListStages(c *gin.Context) {
	stages := h.coordinator.Stages()
	out := make([]transport.StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, transport.ToStageResponse(s))
	}
	httpkit.OK(c, out)
}

// GetBoard retrieves the full kanban board, one column per stage.
// GET /api/v1/pipeline/board
func (h *Handler) GetBoard(c *gin.Context) {
	now := h.now()
	columns := h.board.View()
	out := transport.BoardResponse{Columns: make([]transport.BoardColumnResponse, 0, len(columns))}
	for _, col := range columns {
		leads := make([]transport.LeadResponse, 0, len(col.Leads))
		for _, l := range col.Leads {
			leads = append(leads, transport.ToLeadResponse(l, now))
		}
		out.Columns = append(out.Columns, transport.BoardColumnResponse{
			Stage: transport.ToStageResponse(col.Stage),
			Leads: leads,
		})
	}
	httpkit.OK(c, out)
}

// Drop resolves a completed drag gesture against the board.
// POST /api/v1/pipeline/board/drop
func (h *Handler) Drop(c *gin.Context) {
	var req transport.DropRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	outcome := h.board.Drop(c.Request.Context(), board.Gesture{
		DraggedID: req.DraggedID,
		OverID:    req.OverID,
	}, actor(c))
	httpkit.OK(c, transport.DropResponse{Outcome: string(outcome)})
}

// ListLeads retrieves every lead across all stages.
// GET /api/v1/pipeline/leads
func (h *Handler) ListLeads(c *gin.Context) {
	now := h.now()
	leads := h.coordinator.Leads()
	out := make([]transport.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, transport.ToLeadResponse(l, now))
	}
	httpkit.OK(c, out)
}

// CreateLead adds a lead to the pipeline.
// POST /api/v1/pipeline/leads
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	lead, err := h.coordinator.AddLead(c.Request.Context(), store.LeadInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		StageID:        req.StageID,
		Priority:       domain.Priority(req.Priority),
		Source:         req.Source,
		Tags:           req.Tags,
		PotentialValue: req.PotentialValue,
	}, actor(c))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidStage, nil)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToLeadResponse(lead, h.now()))
}

// GetLead retrieves the detail aggregate for one lead.
// GET /api/v1/pipeline/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	agg := h.detail.Aggregate(c.Param("id"))
	if agg == nil {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return
	}

	now := h.now()
	out := transport.LeadDetailResponse{
		Lead:     transport.ToLeadResponse(agg.Lead, now),
		Stage:    transport.ToStageResponse(agg.Stage),
		Messages: make([]transport.MessageResponse, 0, len(agg.Messages)),
		History:  make([]transport.HistoryItemResponse, 0, len(agg.History)),
		Tasks:    make([]transport.TaskResponse, 0, len(agg.Tasks)),
		Notes:    make([]transport.NoteResponse, 0, len(agg.Notes)),
	}
	for _, m := range agg.Messages {
		out.Messages = append(out.Messages, transport.ToMessageResponse(m))
	}
	for _, hi := range agg.History {
		out.History = append(out.History, transport.ToHistoryItemResponse(hi))
	}
	for _, t := range agg.Tasks {
		out.Tasks = append(out.Tasks, transport.ToTaskResponse(t))
	}
	for _, n := range agg.Notes {
		out.Notes = append(out.Notes, transport.ToNoteResponse(n))
	}
	httpkit.OK(c, out)
}

// DeleteLead removes a lead and its dependent records. The destructive
// call must carry an explicit confirmation flag.
// DELETE /api/v1/pipeline/leads/:id
func (h *Handler) DeleteLead(c *gin.Context) {
	var req transport.DeleteLeadRequest
	// The confirm flag may arrive as a body or a query parameter.
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Confirm = c.Query("confirm") == "true"
	}

	if err := h.detail.Delete(c.Request.Context(), c.Param("id"), req.Confirm); httpkit.HandleError(c, err) {
		return
	}
	httpkit.NoContent(c)
}

// MoveLead relocates a lead to another stage. Unknown leads and unknown
// stages are absorbed without error.
// POST /api/v1/pipeline/leads/:id/move
func (h *Handler) MoveLead(c *gin.Context) {
	var req transport.MoveLeadRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	h.coordinator.MoveLeadToStage(c.Request.Context(), c.Param("id"), req.StageID, actor(c))
	httpkit.NoContent(c)
}

// AssignLead hands a lead to a team member.
// POST /api/v1/pipeline/leads/:id/assign
func (h *Handler) AssignLead(c *gin.Context) {
	var req transport.AssignLeadRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	h.coordinator.AssignLead(c.Request.Context(), c.Param("id"), req.UserID, actor(c))
	httpkit.NoContent(c)
}

// ListMessages retrieves a lead's conversation in chronological order.
// GET /api/v1/pipeline/leads/:id/messages
func (h *Handler) ListMessages(c *gin.Context) {
	messages := h.coordinator.Conversation(c.Param("id"))
	out := make([]transport.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, transport.ToMessageResponse(m))
	}
	httpkit.OK(c, out)
}

// AddMessage appends a message to a lead's conversation.
// POST /api/v1/pipeline/leads/:id/messages
func (h *Handler) AddMessage(c *gin.Context) {
	var req transport.AddMessageRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	msg, ok := h.coordinator.AddMessage(c.Request.Context(), c.Param("id"), domain.Message{
		Channel:    domain.MessageChannel(req.Channel),
		Sender:     req.Sender,
		Content:    req.Content,
		IsFromLead: req.IsFromLead,
	})
	if !ok {
		httpkit.NoContent(c)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToMessageResponse(msg))
}

// MarkConversationRead clears a lead's unread counter.
// POST /api/v1/pipeline/leads/:id/messages/read
func (h *Handler) MarkConversationRead(c *gin.Context) {
	h.coordinator.MarkConversationRead(c.Param("id"))
	httpkit.NoContent(c)
}

// ListHistory retrieves a lead's audit trail, newest first.
// GET /api/v1/pipeline/leads/:id/history
func (h *Handler) ListHistory(c *gin.Context) {
	items := h.coordinator.History(c.Param("id"))
	out := make([]transport.HistoryItemResponse, 0, len(items))
	for _, hi := range items {
		out = append(out, transport.ToHistoryItemResponse(hi))
	}
	httpkit.OK(c, out)
}

// ListTasks retrieves a lead's follow-up tasks.
// GET /api/v1/pipeline/leads/:id/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	tasks := h.coordinator.Tasks(c.Param("id"))
	out := make([]transport.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, transport.ToTaskResponse(t))
	}
	httpkit.OK(c, out)
}

// AddTask attaches a follow-up task to a lead.
// POST /api/v1/pipeline/leads/:id/tasks
func (h *Handler) AddTask(c *gin.Context) {
	var req transport.AddTaskRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	task := domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}

	created, ok := h.coordinator.AddTask(c.Request.Context(), c.Param("id"), task)
	if !ok {
		httpkit.NoContent(c)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToTaskResponse(created))
}

// ToggleTask flips a task's completed flag.
// POST /api/v1/pipeline/leads/:id/tasks/:taskId/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	h.coordinator.ToggleTask(c.Request.Context(), c.Param("id"), c.Param("taskId"))
	httpkit.NoContent(c)
}

// ListNotes retrieves a lead's notes, newest first.
// GET /api/v1/pipeline/leads/:id/notes
func (h *Handler) ListNotes(c *gin.Context) {
	notes := h.coordinator.Notes(c.Param("id"))
	out := make([]transport.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, transport.ToNoteResponse(n))
	}
	httpkit.OK(c, out)
}

// AddNote attaches a note to a lead.
// POST /api/v1/pipeline/leads/:id/notes
func (h *Handler) AddNote(c *gin.Context) {
	var req transport.AddNoteRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	note, ok := h.coordinator.AddNote(c.Request.Context(), c.Param("id"), domain.Note{
		Content: req.Content,
		Author:  actor(c),
		Pinned:  req.Pinned,
	})
	if !ok {
		httpkit.NoContent(c)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToNoteResponse(note))
}

// ToggleNotePin flips a note's pinned flag.
// POST /api/v1/pipeline/leads/:id/notes/:noteId/pin
func (h *Handler) ToggleNotePin(c *gin.Context) {
	h.coordinator.ToggleNotePinned(c.Param("id"), c.Param("noteId"))
	httpkit.NoContent(c)
}

// StartCall triggers the call action for a lead.
// POST /api/v1/pipeline/leads/:id/actions/call
func (h *Handler) StartCall(c *gin.Context) {
	result, ok := h.detail.StartCall(c.Request.Context(), c.Param("id"), actor(c))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return
	}
	httpkit.OK(c, toActionResponse(result))
}

// StartChat triggers the WhatsApp chat action for a lead.
// POST /api/v1/pipeline/leads/:id/actions/chat
func (h *Handler) StartChat(c *gin.Context) {
	result, ok := h.detail.StartChat(c.Request.Context(), c.Param("id"), actor(c))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return
	}
	httpkit.OK(c, toActionResponse(result))
}

// SendEmail triggers the email action for a lead.
// POST /api/v1/pipeline/leads/:id/actions/email
func (h *Handler) SendEmail(c *gin.Context) {
	var req transport.SendEmailRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	result, ok := h.detail.SendEmail(c.Request.Context(), c.Param("id"), req.Subject, req.Body, actor(c))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return
	}
	httpkit.OK(c, toActionResponse(result))
}

// Schedule triggers the meeting-scheduling action for a lead.
// POST /api/v1/pipeline/leads/:id/actions/schedule
func (h *Handler) Schedule(c *gin.Context) {
	var req transport.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = transport.ScheduleRequest{}
	}

	result, ok := h.detail.Schedule(c.Request.Context(), c.Param("id"), req.Summary, actor(c))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return
	}
	httpkit.OK(c, toActionResponse(result))
}

// ListUsers retrieves the assignable team members.
// GET /api/v1/pipeline/users
func (h *Handler) ListUsers(c *gin.Context) {
	users := h.coordinator.Users()
	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, transport.ToUserResponse(u))
	}
	httpkit.OK(c, out)
}

func toActionResponse(r detail.ActionResult) transport.ActionResponse {
	return transport.ActionResponse{
		Action: r.Action,
		Mode:   string(r.Mode),
		Href:   r.Href,
	}
}
