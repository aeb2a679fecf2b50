package models

const (
	// DefaultBudgetFlexPct is how far from the budget a price may fall
	// (±30%) when the plan does not say otherwise.
	DefaultBudgetFlexPct = 0.3
	// DefaultMinReviews is the evidence floor applied when the plan does not
	// set one.
	DefaultMinReviews = 10
)

// UseCaseGeneral is the fallback use case for plans that name an unknown one.
const UseCaseGeneral = "general"

// useCases is the closed set of recognized use cases.
var useCases = map[string]bool{
	"commute":      true,
	"gym":          true,
	"audiophile":   true,
	"gaming":       true,
	UseCaseGeneral: true,
}

// BuyingGuidePlan is the structured form of a user request, produced by the
// external planning collaborator. It is immutable for the duration of a
// query turn. Budget and MinReviews are pointers so that an explicit zero
// can be told apart from "not set".
type BuyingGuidePlan struct {
	RawQuery         string   `json:"raw_query,omitempty"`
	Budget           *float64 `json:"budget"`
	BudgetFlexPct    float64  `json:"budget_flex_pct"`
	MinReviews       *int     `json:"min_reviews"`
	UseCase          string   `json:"use_case"`
	PriorityAspects  []string `json:"priority_aspects,omitempty"`
	MustHaveKeywords []string `json:"must_have_keywords,omitempty"`
	BoostKeywords    []string `json:"boost_keywords,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// ApplyDefaults backfills missing numeric defaults and normalizes the use
// case. Plans coming from the planning collaborator may omit any field.
func (p *BuyingGuidePlan) ApplyDefaults() {
	if p.BudgetFlexPct <= 0 {
		p.BudgetFlexPct = DefaultBudgetFlexPct
	}
	if p.MinReviews == nil {
		n := DefaultMinReviews
		p.MinReviews = &n
	}
	if !useCases[p.UseCase] {
		p.UseCase = UseCaseGeneral
	}
}

// MinReviewsOrDefault returns the evidence floor, defaulting when unset.
func (p *BuyingGuidePlan) MinReviewsOrDefault() int {
	if p.MinReviews != nil {
		return *p.MinReviews
	}
	return DefaultMinReviews
}

// FlexOrDefault returns the budget flexibility fraction, defaulting when
// unset or non-positive.
func (p *BuyingGuidePlan) FlexOrDefault() float64 {
	if p.BudgetFlexPct > 0 {
		return p.BudgetFlexPct
	}
	return DefaultBudgetFlexPct
}
