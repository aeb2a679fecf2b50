// Package guide defines the contracts for the external natural-language
// collaborators (planner and explainer) and keeps per-conversation session
// state. The collaborators themselves live outside this repository; the
// engine only depends on these interfaces.
package guide

import (
	"context"

	"github.com/hyperjump/erabu/internal/models"
)

// Turn is one completed exchange in a buying-guide conversation.
type Turn struct {
	Query   string                  `json:"query"`
	Plan    *models.BuyingGuidePlan `json:"plan,omitempty"`
	Results []*models.RankedProduct `json:"results,omitempty"`
	Answer  string                  `json:"answer,omitempty"`
}

// Planner turns a free-text request, plus any prior turns, into a structured
// plan. Implementations must return a plan with defaults applied or an
// error; they never mutate the history.
type Planner interface {
	Plan(ctx context.Context, query string, history []Turn) (*models.BuyingGuidePlan, error)
}

// Explainer turns the ranked results into natural-language guidance. The
// product views passed in are already capped; implementations must not be
// handed more candidates than the configured maximum.
type Explainer interface {
	Explain(ctx context.Context, query string, plan *models.BuyingGuidePlan, products []CompactProduct) (string, error)
}
