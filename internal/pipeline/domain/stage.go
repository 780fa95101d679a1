// Package domain defines the entities of the sales pipeline bounded context.
package domain

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Stage is a named column in the sales funnel with a fixed display order.
// Stages are immutable reference data: leads reference them, never own them.
type Stage struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Order int    `yaml:"order" json:"order"`
	Color string `yaml:"color" json:"color"`
}

// StageRegistry is a read-only ordered list of stages, sorted by Order.
type StageRegistry struct {
	stages []Stage
	byID   map[string]Stage
}

// NewStageRegistry builds a registry from the given stages.
// Duplicate ids or orders are rejected: both define board identity.
func NewStageRegistry(stages []Stage) (*StageRegistry, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("stage registry requires at least one stage")
	}

	byID := make(map[string]Stage, len(stages))
	seenOrder := make(map[int]string, len(stages))
	for _, stage := range stages {
		if stage.ID == "" || stage.Name == "" {
			return nil, fmt.Errorf("stage id and name are required")
		}
		if _, dup := byID[stage.ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %q", stage.ID)
		}
		if other, dup := seenOrder[stage.Order]; dup {
			return nil, fmt.Errorf("stage %q and %q share order %d", other, stage.ID, stage.Order)
		}
		byID[stage.ID] = stage
		seenOrder[stage.Order] = stage.ID
	}

	ordered := make([]Stage, len(stages))
	copy(ordered, stages)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	return &StageRegistry{stages: ordered, byID: byID}, nil
}

// DefaultStageRegistry returns the built-in funnel.
func DefaultStageRegistry() *StageRegistry {
	registry, err := NewStageRegistry([]Stage{
		{ID: "new-leads", Name: "New Leads", Order: 1, Color: "#3b82f6"},
		{ID: "contacted", Name: "Contacted", Order: 2, Color: "#8b5cf6"},
		{ID: "qualified", Name: "Qualified", Order: 3, Color: "#f59e0b"},
		{ID: "proposal", Name: "Proposal", Order: 4, Color: "#ec4899"},
		{ID: "negotiation", Name: "Negotiation", Order: 5, Color: "#f97316"},
		{ID: "closed-won", Name: "Closed Won", Order: 6, Color: "#22c55e"},
	})
	if err != nil {
		panic(err)
	}
	return registry
}

// LoadStageRegistry reads a stage list from a YAML file.
func LoadStageRegistry(path string) (*StageRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Stages []Stage `yaml:"stages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse stages file: %w", err)
	}

	return NewStageRegistry(doc.Stages)
}

// List returns all stages sorted by Order.
func (r *StageRegistry) List() []Stage {
	out := make([]Stage, len(r.stages))
	copy(out, r.stages)
	return out
}

// Resolve looks up a stage by id.
func (r *StageRegistry) Resolve(id string) (Stage, bool) {
	stage, ok := r.byID[id]
	return stage, ok
}
