package engine

import (
	"context"
	"time"

	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/store"
)

// DemoUsers is the assignable team used by demo deployments.
func DemoUsers() []domain.User {
	return []domain.User{
		{ID: "u-ana", Name: "Ana Silva", Role: "Sales Rep"},
		{ID: "u-bruno", Name: "Bruno Costa", Role: "Sales Rep"},
		{ID: "u-carla", Name: "Carla Mendes", Role: "Sales Manager"},
	}
}

// SeedDemoData loads a small demo pipeline through the coordinator's
// public operations so every record carries the usual history trail.
func SeedDemoData(ctx context.Context, c *Coordinator) error {
	val := func(v float64) *float64 { return &v }

	maria, err := c.AddLead(ctx, store.LeadInput{
		Name:           "Maria Oliveira",
		Email:          "maria@padariacentral.com",
		Phone:          "+5511987654321",
		StageID:        "new-leads",
		Priority:       domain.PriorityHigh,
		Source:         "website",
		Tags:           []string{"bakery", "pos"},
		PotentialValue: val(1200),
	}, "Demo")
	if err != nil {
		return err
	}

	joao, err := c.AddLead(ctx, store.LeadInput{
		Name:           "João Pereira",
		Email:          "joao@oficinajp.com",
		Phone:          "+5521912345678",
		StageID:        "contacted",
		Priority:       domain.PriorityMedium,
		Source:         "referral",
		Tags:           []string{"auto-repair"},
		PotentialValue: val(800),
	}, "Demo")
	if err != nil {
		return err
	}

	lucia, err := c.AddLead(ctx, store.LeadInput{
		Name:     "Lúcia Fernandes",
		Email:    "lucia@floralu.com",
		Phone:    "+5531998765432",
		StageID:  "qualified",
		Priority: domain.PriorityLow,
		Source:   "instagram",
		Tags:     []string{"flower-shop"},
	}, "Demo")
	if err != nil {
		return err
	}

	c.AssignLead(ctx, maria.ID, "u-ana", "Demo")
	c.AssignLead(ctx, joao.ID, "u-bruno", "Demo")

	c.AddMessage(ctx, maria.ID, domain.Message{
		Channel:    domain.ChannelWhatsApp,
		Sender:     "Maria Oliveira",
		Content:    "Hi, I saw your dashboard demo and would like a quote.",
		IsFromLead: true,
	})
	c.AddMessage(ctx, maria.ID, domain.Message{
		Channel: domain.ChannelWhatsApp,
		Sender:  "Ana Silva",
		Content: "Of course! Sending the pricing sheet now.",
	})
	c.AddMessage(ctx, joao.ID, domain.Message{
		Channel:    domain.ChannelEmail,
		Sender:     "João Pereira",
		Content:    "Can the system track repair orders per customer?",
		IsFromLead: true,
	})

	c.AddTask(ctx, maria.ID, domain.Task{
		Title:    "Send proposal draft",
		DueDate:  time.Now().Add(48 * time.Hour),
		Assignee: "Ana Silva",
	})
	c.AddTask(ctx, lucia.ID, domain.Task{
		Title:    "Qualification call",
		DueDate:  time.Now().Add(24 * time.Hour),
		Assignee: "Carla Mendes",
	})

	c.AddNote(ctx, maria.ID, domain.Note{
		Content: "Owner of two bakeries, expanding to a third location.",
		Author:  "Ana Silva",
		Pinned:  true,
	})
	c.AddNote(ctx, joao.ID, domain.Note{
		Content: "Price sensitive, compare against current spreadsheet flow.",
		Author:  "Bruno Costa",
	})

	return nil
}
