package ranking

import (
	"sort"

	"github.com/hyperjump/erabu/internal/catalog"
	"github.com/hyperjump/erabu/internal/models"
	"go.uber.org/zap"
)

// DefaultTopK is how many ranked products a retrieval returns when the
// caller does not ask for a specific count.
const DefaultTopK = 5

// Engine runs the full retrieval pipeline over the shared catalog snapshot:
// filter, score, stable sort, truncate. It performs no mutation, so it is
// safe for concurrent query turns.
type Engine struct {
	store  *catalog.Store
	scorer *Scorer
	logger *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets a logger for per-query debug output.
func WithEngineLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine over the given store. A nil scorer uses the
// default weights.
func NewEngine(store *catalog.Store, scorer *Scorer, opts ...EngineOption) *Engine {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	e := &Engine{store: store, scorer: scorer, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Retrieve returns the top-k ranked products for the plan. Missing plan
// defaults are backfilled rather than rejected.
func (e *Engine) Retrieve(plan *models.BuyingGuidePlan, topK int) []*models.RankedProduct {
	plan.ApplyDefaults()
	if topK <= 0 {
		topK = DefaultTopK
	}

	snapshot := e.store.Snapshot()
	ranked := RankProducts(snapshot, plan, e.scorer, topK)

	e.logger.Debug("retrieval complete",
		zap.Int("catalog_size", len(snapshot)),
		zap.Int("returned", len(ranked)),
	)
	return ranked
}

// RankProducts filters, scores, and ranks candidates from the given product
// list. The sort is stable, so candidates with equal scores keep their
// input order; that is the only tie-break.
func RankProducts(products []*models.ProductDocument, plan *models.BuyingGuidePlan, scorer *Scorer, topK int) []*models.RankedProduct {
	candidates := FilterCandidates(products, plan)

	ranked := make([]*models.RankedProduct, 0, len(candidates))
	for _, p := range candidates {
		ranked = append(ranked, scorer.Rank(p, plan))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
