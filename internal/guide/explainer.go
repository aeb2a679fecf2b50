package guide

import (
	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/pkg/utils"
)

// DefaultMaxExplainerProducts caps how many candidates the explanation
// collaborator receives.
const DefaultMaxExplainerProducts = 5

// snippetMaxLen bounds one pros/cons excerpt in a compact view. Full review
// texts can run to thousands of characters.
const snippetMaxLen = 280

// CompactProduct is the bounded view of a ranked product handed to the
// explanation collaborator: enough to write about, small enough to cap the
// prompt size.
type CompactProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price,omitempty"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
	ReviewCount int      `json:"review_count"`
	Score       float64  `json:"score"`
	Pros        []string `json:"pros,omitempty"`
	Cons        []string `json:"cons,omitempty"`
}

// CompactViews converts ranked products into compact views, truncated to at
// most max entries. Snippets are shortened so one verbose review cannot
// dominate the explainer input.
func CompactViews(ranked []*models.RankedProduct, max int) []CompactProduct {
	if max <= 0 {
		max = DefaultMaxExplainerProducts
	}
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	views := make([]CompactProduct, len(ranked))
	for i, rp := range ranked {
		m := &rp.Metadata
		views[i] = CompactProduct{
			ID:          rp.ID,
			Title:       rp.Title,
			Price:       m.Price,
			AvgRating:   m.AvgRatingFromReviews,
			ReviewCount: m.ReviewCount,
			Score:       rp.Score,
			Pros:        truncateAll(m.SamplePros),
			Cons:        truncateAll(m.SampleCons),
		}
	}
	return views
}

func truncateAll(snippets []string) []string {
	if len(snippets) == 0 {
		return nil
	}
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = utils.Truncate(s, snippetMaxLen)
	}
	return out
}
