package guide

import (
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestSession_Turns(t *testing.T) {
	s := NewSession()
	if s.ID == "" {
		t.Fatal("session has no id")
	}
	if s.LastTurn() != nil {
		t.Error("fresh session has a last turn")
	}

	s.AddTurn(Turn{Query: "headphones under 50"})
	s.AddTurn(Turn{Query: "what about battery life?"})

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("history has %d turns, want 2", len(history))
	}
	if last := s.LastTurn(); last == nil || last.Query != "what about battery life?" {
		t.Errorf("last turn = %+v", last)
	}

	// History is a copy; mutating it must not touch the session.
	history[0].Query = "mutated"
	if s.History()[0].Query != "headphones under 50" {
		t.Error("history copy leaked back into the session")
	}
}

func TestSession_NeedsRetrieval(t *testing.T) {
	base := func() *models.BuyingGuidePlan {
		return &models.BuyingGuidePlan{
			Budget:           floatPtr(50),
			MustHaveKeywords: []string{"wireless"},
			BoostKeywords:    []string{"battery"},
		}
	}

	s := NewSession()
	if !s.NeedsRetrieval(base()) {
		t.Fatal("first turn must retrieve")
	}
	s.AddTurn(Turn{Query: "headphones under 50", Plan: base()})

	tests := []struct {
		name   string
		mutate func(*models.BuyingGuidePlan)
		want   bool
	}{
		{"identical plan", func(p *models.BuyingGuidePlan) {}, false},
		{"query text only", func(p *models.BuyingGuidePlan) { p.RawQuery = "tell me more" }, false},
		{"notes only", func(p *models.BuyingGuidePlan) { p.Notes = "user is curious" }, false},
		{"budget changed", func(p *models.BuyingGuidePlan) { p.Budget = floatPtr(80) }, true},
		{"budget dropped", func(p *models.BuyingGuidePlan) { p.Budget = nil }, true},
		{"flex changed", func(p *models.BuyingGuidePlan) { p.BudgetFlexPct = 0.1 }, true},
		{"review floor changed", func(p *models.BuyingGuidePlan) { p.MinReviews = intPtr(50) }, true},
		{"must-have changed", func(p *models.BuyingGuidePlan) { p.MustHaveKeywords = []string{"anc"} }, true},
		{"boost changed", func(p *models.BuyingGuidePlan) { p.BoostKeywords = []string{"battery", "comfort"} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := base()
			tt.mutate(plan)
			if got := s.NeedsRetrieval(plan); got != tt.want {
				t.Errorf("NeedsRetrieval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManager(t *testing.T) {
	m := NewManager()

	s := m.Create()
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != s {
		t.Error("Get returned a different session")
	}

	if _, err := m.Get("not-a-session"); err == nil {
		t.Error("expected error for unknown session id")
	}

	m.Delete(s.ID)
	if _, err := m.Get(s.ID); err == nil {
		t.Error("session survived deletion")
	}

	// Ids are unique across sessions.
	if a, b := m.Create(), m.Create(); a.ID == b.ID {
		t.Error("two sessions share an id")
	}
}
