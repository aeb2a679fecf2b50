package models

// ReviewMetadata carries the review's own signals plus product fields
// denormalized at build time, so downstream aggregation needs no join.
type ReviewMetadata struct {
	ParentASIN        string   `json:"parent_asin"`
	ASIN              string   `json:"asin,omitempty"`
	ProductTitle      string   `json:"product_title,omitempty"`
	ProductPrice      *float64 `json:"product_price,omitempty"`
	ProductCategories []string `json:"product_categories,omitempty"`
	HelpfulVote       int      `json:"helpful_vote"`
	VerifiedPurchase  bool     `json:"verified_purchase"`
	Timestamp         int64    `json:"timestamp,omitempty"`
}

// ReviewDocument is one filtered review emitted by the second build pass.
// IDs take the form "{product_key}__{n}" where n is a per-build output
// counter; they are not stable across re-runs with reordered input.
type ReviewDocument struct {
	ID         string         `json:"id"`
	ParentASIN string         `json:"parent_asin"`
	ASIN       string         `json:"asin,omitempty"`
	Rating     *float64       `json:"rating"`
	Title      string         `json:"title,omitempty"`
	Text       string         `json:"text"`
	Metadata   ReviewMetadata `json:"metadata"`
}
