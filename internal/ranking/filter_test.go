package ranking

import (
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func intPtr(v int) *int { return &v }

func candidate(id string, price float64, reviews int, text string) *models.ProductDocument {
	return &models.ProductDocument{
		ID:    id,
		Title: id,
		Text:  text,
		Metadata: models.ProductMetadata{
			ASIN:        id,
			Price:       &price,
			ReviewCount: reviews,
		},
	}
}

func TestFilterCandidates(t *testing.T) {
	noPrice := &models.ProductDocument{
		ID:       "no-price",
		Metadata: models.ProductMetadata{ASIN: "no-price", ReviewCount: 100},
	}
	catalog := []*models.ProductDocument{
		candidate("in-window", 50, 40, "active noise cancelling earbuds"),
		candidate("below-window", 30, 40, "budget earbuds"),
		candidate("above-window", 70, 40, "premium headphones"),
		candidate("few-reviews", 50, 3, "new release"),
		noPrice,
		candidate("edge-low", 35, 40, "entry pair"),
		candidate("edge-high", 65, 40, "upper pair"),
	}

	t.Run("budget window is inclusive", func(t *testing.T) {
		plan := &models.BuyingGuidePlan{Budget: floatPtr(50)}
		plan.ApplyDefaults()
		// Default flex 0.3 puts the window at [35, 65].
		got := FilterCandidates(catalog, plan)
		wantIDs := []string{"in-window", "edge-low", "edge-high"}
		if len(got) != len(wantIDs) {
			t.Fatalf("kept %d candidates, want %d: %v", len(got), len(wantIDs), ids(got))
		}
		for i, want := range wantIDs {
			if got[i].ID != want {
				t.Errorf("candidate %d = %s, want %s (order must be preserved)", i, got[i].ID, want)
			}
		}
	})

	t.Run("no budget keeps all priced products", func(t *testing.T) {
		plan := &models.BuyingGuidePlan{MinReviews: intPtr(0)}
		plan.ApplyDefaults()
		got := FilterCandidates(catalog, plan)
		if len(got) != len(catalog)-1 {
			t.Errorf("kept %d, want all but the unpriced one: %v", len(got), ids(got))
		}
	})

	t.Run("evidence floor", func(t *testing.T) {
		plan := &models.BuyingGuidePlan{}
		plan.ApplyDefaults()
		for _, p := range FilterCandidates(catalog, plan) {
			if p.Metadata.ReviewCount < models.DefaultMinReviews {
				t.Errorf("%s kept with only %d reviews", p.ID, p.Metadata.ReviewCount)
			}
		}
	})

	t.Run("explicit zero floor keeps thin products", func(t *testing.T) {
		plan := &models.BuyingGuidePlan{MinReviews: intPtr(0)}
		plan.ApplyDefaults()
		got := FilterCandidates(catalog, plan)
		if !containsID(got, "few-reviews") {
			t.Error("zero floor should keep the thin candidate")
		}
	})

	t.Run("must-have keywords", func(t *testing.T) {
		plan := &models.BuyingGuidePlan{
			MinReviews:       intPtr(0),
			MustHaveKeywords: []string{"Noise Cancelling"},
		}
		plan.ApplyDefaults()
		got := FilterCandidates(catalog, plan)
		if len(got) != 1 || got[0].ID != "in-window" {
			t.Errorf("keyword filter kept %v, want only in-window", ids(got))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		plan := &models.BuyingGuidePlan{Budget: floatPtr(50)}
		plan.ApplyDefaults()
		once := FilterCandidates(catalog, plan)
		twice := FilterCandidates(once, plan)
		if len(once) != len(twice) {
			t.Errorf("second pass changed the set: %v vs %v", ids(once), ids(twice))
		}
	})
}

func ids(products []*models.ProductDocument) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func containsID(products []*models.ProductDocument, id string) bool {
	for _, p := range products {
		if p.ID == id {
			return true
		}
	}
	return false
}
