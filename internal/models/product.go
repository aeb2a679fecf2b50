package models

import (
	"encoding/json"
	"strings"
)

// RatingHistogram counts reviews per star rating (1-5). The JSON keys match
// the aggregated index format ("1" through "5").
type RatingHistogram struct {
	OneStar   int `json:"1"`
	TwoStar   int `json:"2"`
	ThreeStar int `json:"3"`
	FourStar  int `json:"4"`
	FiveStar  int `json:"5"`
}

// Add increments the bucket for star. Stars outside 1-5 are ignored.
func (h *RatingHistogram) Add(star int) {
	switch star {
	case 1:
		h.OneStar++
	case 2:
		h.TwoStar++
	case 3:
		h.ThreeStar++
	case 4:
		h.FourStar++
	case 5:
		h.FiveStar++
	}
}

// Total returns the sum of all buckets. For a well-formed aggregated record
// this equals the product's review count.
func (h RatingHistogram) Total() int {
	return h.OneStar + h.TwoStar + h.ThreeStar + h.FourStar + h.FiveStar
}

// ProductMetadata holds the per-product facts used during retrieval: fields
// curated from the source catalog plus fields computed at build time.
// Extra preserves any additional source fields (images, detail sub-fields,
// etc.) verbatim; they are flattened into the same JSON object.
type ProductMetadata struct {
	ASIN                 string          `json:"asin"`
	MainCategory         string          `json:"main_category,omitempty"`
	Categories           []string        `json:"categories"`
	Price                *float64        `json:"price"`
	AverageRating        *float64        `json:"average_rating,omitempty"`
	RatingNumber         *int            `json:"rating_number,omitempty"`
	Store                string          `json:"store,omitempty"`
	ReviewCount          int             `json:"review_count"`
	AvgRatingFromReviews *float64        `json:"avg_rating_from_reviews,omitempty"`
	RatingHist           RatingHistogram `json:"rating_hist"`
	// MetaAverageRating and MetaRatingNumber retain the rating stats declared
	// by the source catalog, so both the declared and the review-derived
	// signals stay inspectable side by side.
	MetaAverageRating *float64       `json:"meta_average_rating,omitempty"`
	MetaRatingNumber  *int           `json:"meta_rating_number,omitempty"`
	SamplePros        []string       `json:"sample_pros,omitempty"`
	SampleCons        []string       `json:"sample_cons,omitempty"`
	Extra             map[string]any `json:"-"`
}

// metadataFields are the JSON keys owned by the named struct fields. Anything
// else on the wire round-trips through Extra.
var metadataFields = map[string]bool{
	"asin":                    true,
	"main_category":           true,
	"categories":              true,
	"price":                   true,
	"average_rating":          true,
	"rating_number":           true,
	"store":                   true,
	"review_count":            true,
	"avg_rating_from_reviews": true,
	"rating_hist":             true,
	"meta_average_rating":     true,
	"meta_rating_number":      true,
	"sample_pros":             true,
	"sample_cons":             true,
}

// metadataAlias avoids recursing into the custom marshalers.
type metadataAlias ProductMetadata

// MarshalJSON flattens Extra into the metadata object. Named fields win on
// key conflicts.
func (m ProductMetadata) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(metadataAlias(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return base, nil
	}
	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes named fields and collects everything else into Extra.
func (m *ProductMetadata) UnmarshalJSON(data []byte) error {
	var alias metadataAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*m = ProductMetadata(alias)
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if metadataFields[k] {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// ProductDocument is one product record of the catalog index. Text is the
// derived searchable string (title, features, and description joined at
// build time).
type ProductDocument struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Text     string          `json:"text"`
	Metadata ProductMetadata `json:"metadata"`
}

// CombinedText returns the lowercased concatenation of the searchable text
// and the retained pros/cons snippets. Both the constraint filter and the
// aspect scorer match keywords against this.
func (p *ProductDocument) CombinedText() string {
	parts := make([]string, 0, 1+len(p.Metadata.SamplePros)+len(p.Metadata.SampleCons))
	if p.Text != "" {
		parts = append(parts, p.Text)
	}
	parts = append(parts, p.Metadata.SamplePros...)
	parts = append(parts, p.Metadata.SampleCons...)
	return strings.ToLower(strings.Join(parts, " "))
}

// RankedProduct is a ProductDocument extended with scoring information.
// Produced only by the retrieval engine, never persisted.
type RankedProduct struct {
	ProductDocument
	Score       float64 `json:"score"`
	BaseScore   float64 `json:"base_score"`
	AspectScore float64 `json:"aspect_score"`
}
