package board

import (
	"context"
	"testing"

	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/internal/pipeline/store"
	"pipeline_backend/platform/logger"
)

func newTestBoard(t *testing.T) (*Service, *engine.Coordinator) {
	t.Helper()
	c := engine.NewCoordinator(domain.DefaultStageRegistry(), nil, nil, logger.New("test"), "System")
	return New(c), c
}

func addLead(t *testing.T, c *engine.Coordinator, name, stageID string) domain.Lead {
	t.Helper()
	lead, err := c.AddLead(context.Background(), store.LeadInput{Name: name, StageID: stageID}, "")
	if err != nil {
		t.Fatalf("AddLead: %v", err)
	}
	return lead
}

func TestDrop(t *testing.T) {
	ctx := context.Background()
	svc, c := newTestBoard(t)
	lead := addLead(t, c, "Lead", "new-leads")

	contacted := "contacted"
	empty := ""

	tests := []struct {
		name      string
		gesture   Gesture
		want      Outcome
		wantStage string
	}{
		{"drop on a column moves", Gesture{DraggedID: lead.ID, OverID: &contacted}, OutcomeMoved, "contacted"},
		{"drop outside cancels", Gesture{DraggedID: lead.ID, OverID: nil}, OutcomeCancelled, "contacted"},
		{"drop on empty target cancels", Gesture{DraggedID: lead.ID, OverID: &empty}, OutcomeCancelled, "contacted"},
		{"drop on own card is filtered", Gesture{DraggedID: lead.ID, OverID: &lead.ID}, OutcomeFiltered, "contacted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Drop(ctx, tt.gesture, ""); got != tt.want {
				t.Errorf("Drop() = %q, want %q", got, tt.want)
			}
			if got := c.GetLead(lead.ID); got.StageID != tt.wantStage {
				t.Errorf("lead stage = %q, want %q", got.StageID, tt.wantStage)
			}
		})
	}

	// A cancelled or filtered drop leaves the history untouched: only the
	// one real move from the table above is recorded.
	if got := len(c.History(lead.ID)); got != 2 {
		t.Errorf("history = %d entries, want 2 (create + move)", got)
	}
}

func TestDropUnknownLeadStillReportsMoved(t *testing.T) {
	svc, c := newTestBoard(t)
	contacted := "contacted"

	// The coordinator absorbs the unknown id; the gesture itself was valid.
	if got := svc.Drop(context.Background(), Gesture{DraggedID: "missing", OverID: &contacted}, ""); got != OutcomeMoved {
		t.Errorf("Drop() = %q, want %q", got, OutcomeMoved)
	}
	if len(c.Leads()) != 0 {
		t.Error("phantom lead appeared")
	}
}

func TestViewFiltersByStage(t *testing.T) {
	svc, c := newTestBoard(t)
	a := addLead(t, c, "A", "new-leads")
	b := addLead(t, c, "B", "contacted")
	addLead(t, c, "C", "new-leads")

	columns := svc.View()
	if len(columns) != 6 {
		t.Fatalf("columns = %d, want 6", len(columns))
	}
	if columns[0].Stage.ID != "new-leads" || len(columns[0].Leads) != 2 {
		t.Errorf("new-leads column has %d cards, want 2", len(columns[0].Leads))
	}
	if len(columns[1].Leads) != 1 || columns[1].Leads[0].ID != b.ID {
		t.Errorf("contacted column = %+v", columns[1].Leads)
	}
	for _, col := range columns[2:] {
		if len(col.Leads) != 0 {
			t.Errorf("column %s not empty", col.Stage.ID)
		}
	}

	// Moving a card re-sorts it into its new column on the next render.
	c.MoveLeadToStage(context.Background(), a.ID, "qualified", "")
	columns = svc.View()
	if len(columns[0].Leads) != 1 {
		t.Errorf("new-leads column has %d cards after move, want 1", len(columns[0].Leads))
	}
	if len(columns[2].Leads) != 1 || columns[2].Leads[0].ID != a.ID {
		t.Errorf("qualified column = %+v", columns[2].Leads)
	}
}
