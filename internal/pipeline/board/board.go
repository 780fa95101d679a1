// Package board translates drag-and-drop gestures into coordinator calls
// and projects the lead set into kanban columns.
//
// The board is a pure adapter: it holds no state of its own and the
// coordinator has no knowledge of drag semantics.
package board

import (
	"context"

	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
)

// Gesture is the raw outcome of a drag interaction. DraggedID identifies
// the lead card; OverID identifies the stage column the pointer was
// released over, nil when the drop happened outside any column.
type Gesture struct {
	DraggedID string
	OverID    *string
}

// Outcome describes what the board did with a gesture.
type Outcome string

const (
	OutcomeMoved     Outcome = "moved"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFiltered  Outcome = "filtered"
)

// Column is one stage column with the cards currently in it.
type Column struct {
	Stage domain.Stage
	Leads []domain.Lead
}

// Service is the board interaction layer over the coordinator.
type Service struct {
	coordinator *engine.Coordinator
}

// New creates a board service.
func New(coordinator *engine.Coordinator) *Service {
	return &Service{coordinator: coordinator}
}

// Drop applies a completed drag gesture. A drop with no target is a
// cancel; a drop on the dragged card's own id is filtered before it
// reaches the coordinator, which keeps the same-stage no-op out of the
// history trail.
func (s *Service) Drop(ctx context.Context, gesture Gesture, actor string) Outcome {
	if gesture.OverID == nil || *gesture.OverID == "" {
		return OutcomeCancelled
	}
	if *gesture.OverID == gesture.DraggedID {
		return OutcomeFiltered
	}

	s.coordinator.MoveLeadToStage(ctx, gesture.DraggedID, *gesture.OverID, actor)
	return OutcomeMoved
}

// View builds one column per stage in registry order, with cards
// filtered from the full lead set on every call. There is no incremental
// column index to keep in sync.
func (s *Service) View() []Column {
	stages := s.coordinator.Stages()
	leads := s.coordinator.Leads()

	columns := make([]Column, len(stages))
	for i, stage := range stages {
		column := Column{Stage: stage, Leads: make([]domain.Lead, 0)}
		for _, lead := range leads {
			if lead.StageID == stage.ID {
				column.Leads = append(column.Leads, lead)
			}
		}
		columns[i] = column
	}
	return columns
}
