// Package pipeline provides the sales-pipeline bounded context module.
package pipeline

import (
	apphttp "pipeline_backend/internal/http"
	"pipeline_backend/internal/pipeline/board"
	"pipeline_backend/internal/pipeline/detail"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/internal/pipeline/handler"
	"pipeline_backend/platform/validator"
)

// Module is the pipeline bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// ModuleDeps carries the collaborators assembled by the composition root.
type ModuleDeps struct {
	Coordinator *engine.Coordinator
	Board       *board.Service
	Detail      *detail.Service
	Validator   *validator.Validator
}

// NewModule creates and initializes the pipeline module.
func NewModule(deps ModuleDeps) *Module {
	return &Module{
		handler: handler.New(deps.Coordinator, deps.Board, deps.Detail, deps.Validator),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pipeline"
}

// RegisterRoutes mounts pipeline routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/pipeline")

	g.GET("/stages", m.handler.ListStages)
	g.GET("/board", m.handler.GetBoard)
	g.POST("/board/drop", m.handler.Drop)
	g.GET("/users", m.handler.ListUsers)

	leads := g.Group("/leads")
	leads.GET("", m.handler.ListLeads)
	leads.POST("", m.handler.CreateLead)
	leads.GET("/:id", m.handler.GetLead)
	leads.DELETE("/:id", m.handler.DeleteLead)
	leads.POST("/:id/move", m.handler.MoveLead)
	leads.POST("/:id/assign", m.handler.AssignLead)
	leads.GET("/:id/messages", m.handler.ListMessages)
	leads.POST("/:id/messages", m.handler.AddMessage)
	leads.POST("/:id/messages/read", m.handler.MarkConversationRead)
	leads.GET("/:id/history", m.handler.ListHistory)
	leads.GET("/:id/tasks", m.handler.ListTasks)
	leads.POST("/:id/tasks", m.handler.AddTask)
	leads.POST("/:id/tasks/:taskId/toggle", m.handler.ToggleTask)
	leads.GET("/:id/notes", m.handler.ListNotes)
	leads.POST("/:id/notes", m.handler.AddNote)
	leads.POST("/:id/notes/:noteId/pin", m.handler.ToggleNotePin)
	leads.POST("/:id/actions/call", m.handler.StartCall)
	leads.POST("/:id/actions/chat", m.handler.StartChat)
	leads.POST("/:id/actions/email", m.handler.SendEmail)
	leads.POST("/:id/actions/schedule", m.handler.Schedule)
}
