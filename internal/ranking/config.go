// Package ranking filters and scores catalog candidates for a structured
// buying-guide plan.
package ranking

// ScoringConfig holds the weights for the composite score. Weights are
// process-wide configuration passed in explicitly, so multiple catalogs or
// weight sets can coexist in tests.
type ScoringConfig struct {
	// Base score component weights.
	PriceWeight      float64 `yaml:"price_weight"`      // default: 0.5
	RatingWeight     float64 `yaml:"rating_weight"`     // default: 0.35
	PopularityWeight float64 `yaml:"popularity_weight"` // default: 0.15

	// Split between the catalog-fit base score and the keyword aspect score.
	BaseWeight   float64 `yaml:"base_weight"`   // default: 0.7
	AspectWeight float64 `yaml:"aspect_weight"` // default: 0.3
}

// DefaultScoringConfig returns the default scoring weights.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		PriceWeight:      0.5,
		RatingWeight:     0.35,
		PopularityWeight: 0.15,
		BaseWeight:       0.7,
		AspectWeight:     0.3,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *ScoringConfig) ApplyDefaults() {
	defaults := DefaultScoringConfig()
	if c.PriceWeight == 0 {
		c.PriceWeight = defaults.PriceWeight
	}
	if c.RatingWeight == 0 {
		c.RatingWeight = defaults.RatingWeight
	}
	if c.PopularityWeight == 0 {
		c.PopularityWeight = defaults.PopularityWeight
	}
	if c.BaseWeight == 0 {
		c.BaseWeight = defaults.BaseWeight
	}
	if c.AspectWeight == 0 {
		c.AspectWeight = defaults.AspectWeight
	}
}
