package ranking

import (
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// FilterCandidates reduces the catalog to candidates satisfying the plan's
// hard constraints, preserving input order. A candidate survives iff it has
// a price, meets the evidence floor, falls inside the budget window when a
// budget is set, and matches at least one must-have keyword when any are
// declared. An empty keyword list imposes no restriction.
func FilterCandidates(products []*models.ProductDocument, plan *models.BuyingGuidePlan) []*models.ProductDocument {
	minReviews := plan.MinReviewsOrDefault()

	var low, high float64
	bounded := plan.Budget != nil && *plan.Budget > 0
	if bounded {
		flex := plan.FlexOrDefault()
		low = *plan.Budget * (1.0 - flex)
		high = *plan.Budget * (1.0 + flex)
	}

	mustKeywords := lowerAll(plan.MustHaveKeywords)

	candidates := make([]*models.ProductDocument, 0, len(products))
	for _, p := range products {
		m := &p.Metadata
		if m.Price == nil || m.ReviewCount < minReviews {
			continue
		}
		if bounded && (*m.Price < low || *m.Price > high) {
			continue
		}
		if len(mustKeywords) > 0 && !matchesAny(p.CombinedText(), mustKeywords) {
			continue
		}
		candidates = append(candidates, p)
	}
	return candidates
}

func lowerAll(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
