package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "bluetooth", []string{"bluetooth"}},
		{"multiple", "bluetooth,noise cancelling", []string{"bluetooth", "noise cancelling"}},
		{"whitespace trimmed", " bluetooth , battery ", []string{"bluetooth", "battery"}},
		{"empty segments dropped", "bluetooth,,battery,", []string{"bluetooth", "battery"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitKeywords(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitKeywords(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlanFromFlags(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		plan, err := planFromFlags("", 50, 0.2, 25, "gym", "wireless", "battery,comfort")
		if err != nil {
			t.Fatalf("planFromFlags: %v", err)
		}
		if plan.Budget == nil || *plan.Budget != 50 {
			t.Errorf("budget = %v", plan.Budget)
		}
		if plan.BudgetFlexPct != 0.2 {
			t.Errorf("flex = %v", plan.BudgetFlexPct)
		}
		if plan.MinReviews == nil || *plan.MinReviews != 25 {
			t.Errorf("min reviews = %v", plan.MinReviews)
		}
		if plan.UseCase != "gym" {
			t.Errorf("use case = %q", plan.UseCase)
		}
		if len(plan.MustHaveKeywords) != 1 || len(plan.BoostKeywords) != 2 {
			t.Errorf("keywords = %v / %v", plan.MustHaveKeywords, plan.BoostKeywords)
		}
	})

	t.Run("zero budget means unconstrained", func(t *testing.T) {
		plan, err := planFromFlags("", 0, 0, -1, "general", "", "")
		if err != nil {
			t.Fatalf("planFromFlags: %v", err)
		}
		if plan.Budget != nil {
			t.Errorf("budget = %v, want nil", plan.Budget)
		}
		if plan.MinReviews != nil {
			t.Errorf("min reviews = %v, want nil (use default)", plan.MinReviews)
		}
	})

	t.Run("explicit zero review floor", func(t *testing.T) {
		plan, err := planFromFlags("", 0, 0, 0, "general", "", "")
		if err != nil {
			t.Fatalf("planFromFlags: %v", err)
		}
		if plan.MinReviews == nil || *plan.MinReviews != 0 {
			t.Errorf("min reviews = %v, want explicit 0", plan.MinReviews)
		}
	})

	t.Run("plan file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.json")
		contents := `{"raw_query":"headphones for the gym","budget":80,"use_case":"gym","boost_keywords":["sweatproof"]}`
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write plan fixture: %v", err)
		}
		plan, err := planFromFlags(path, 50, 0.2, 25, "general", "ignored", "ignored")
		if err != nil {
			t.Fatalf("planFromFlags: %v", err)
		}
		if plan.Budget == nil || *plan.Budget != 80 {
			t.Errorf("budget = %v, want the file's 80", plan.Budget)
		}
		if plan.UseCase != "gym" || len(plan.BoostKeywords) != 1 {
			t.Errorf("plan = %+v", plan)
		}
		if len(plan.MustHaveKeywords) != 0 {
			t.Errorf("flag keywords leaked into the file plan: %v", plan.MustHaveKeywords)
		}
	})

	t.Run("bad plan file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.json")
		if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
			t.Fatalf("write plan fixture: %v", err)
		}
		if _, err := planFromFlags(path, 0, 0, -1, "general", "", ""); err == nil {
			t.Error("expected error for unparsable plan file")
		}
	})

	t.Run("missing plan file", func(t *testing.T) {
		if _, err := planFromFlags("/nonexistent/plan.json", 0, 0, -1, "general", "", ""); err == nil {
			t.Error("expected error for missing plan file")
		}
	})
}
