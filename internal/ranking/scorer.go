package ranking

import (
	"math"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// Scorer computes the deterministic composite score for a candidate. It is
// a pure function of (candidate, plan) with no hidden state, so rankings
// are reproducible and each sub-score is independently testable.
type Scorer struct {
	config *ScoringConfig
}

// NewScorer creates a scorer. A nil config uses the defaults.
func NewScorer(config *ScoringConfig) *Scorer {
	if config == nil {
		config = DefaultScoringConfig()
	}
	config.ApplyDefaults()
	return &Scorer{config: config}
}

// PriceFit scores how well a price fits the budget, in [0, 1]. With no
// budget every price scores 1. Below budget the curve is concave, rewarding
// prices close to the budget more than very cheap ones, and hits exactly 1
// at the budget. Over budget the penalty is linear, reaching 0 at roughly
// 83% over.
func PriceFit(price float64, budget *float64) float64 {
	if budget == nil || *budget <= 0 {
		return 1.0
	}
	rel := price / *budget
	if rel <= 1.0 {
		return 1.0 - (1.0-rel)*(1.0-rel)
	}
	return math.Max(0.0, 1.0-1.2*(rel-1.0))
}

// RatingScore maps an average rating onto [0, 1]: 3 stars scores 0, 5 stars
// scores 1, and anything below 3 gets no negative credit.
func RatingScore(avg float64) float64 {
	return clamp01((avg - 3.0) / 2.0)
}

// PopularityScore maps a review count onto [0, 1] on a log10 scale; around
// 10,000 reviews saturates to 1.
func PopularityScore(reviewCount int) float64 {
	return clamp01(math.Log10(float64(reviewCount)+1) / 4.0)
}

// BaseScore is the weighted sum of the price-fit, rating, and popularity
// sub-scores. The rating signal prefers the review-derived average and falls
// back to the source-declared one.
func (s *Scorer) BaseScore(p *models.ProductDocument, plan *models.BuyingGuidePlan) float64 {
	m := &p.Metadata

	var price float64
	if m.Price != nil {
		price = *m.Price
	}

	var avg float64
	switch {
	case m.AvgRatingFromReviews != nil:
		avg = *m.AvgRatingFromReviews
	case m.MetaAverageRating != nil:
		avg = *m.MetaAverageRating
	}

	return s.config.PriceWeight*PriceFit(price, plan.Budget) +
		s.config.RatingWeight*RatingScore(avg) +
		s.config.PopularityWeight*PopularityScore(m.ReviewCount)
}

// AspectScore is the fraction of the plan's boost keywords found in the
// candidate's searchable text or snippets; 0 when the plan declares none.
func (s *Scorer) AspectScore(p *models.ProductDocument, plan *models.BuyingGuidePlan) float64 {
	if len(plan.BoostKeywords) == 0 {
		return 0.0
	}
	text := p.CombinedText()
	hits := 0
	for _, kw := range plan.BoostKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits++
		}
	}
	return float64(hits) / float64(len(plan.BoostKeywords))
}

// Combine merges the base and aspect scores with the configured split.
func (s *Scorer) Combine(base, aspect float64) float64 {
	return s.config.BaseWeight*base + s.config.AspectWeight*aspect
}

// Rank wraps a candidate with its scores.
func (s *Scorer) Rank(p *models.ProductDocument, plan *models.BuyingGuidePlan) *models.RankedProduct {
	base := s.BaseScore(p, plan)
	aspect := s.AspectScore(p, plan)
	return &models.RankedProduct{
		ProductDocument: *p,
		Score:           s.Combine(base, aspect),
		BaseScore:       base,
		AspectScore:     aspect,
	}
}

// Config returns the scoring configuration.
func (s *Scorer) Config() *ScoringConfig {
	return s.config
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
