// Package cli provides CLI output formatting for erabu.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/pkg/utils"
)

// OutputFormat is the format for ranked result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// snippetPreviewLen bounds pros/cons excerpts in text output.
const snippetPreviewLen = 160

// WriteRankedProducts writes ranked products to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteRankedProducts(w io.Writer, results []*models.RankedProduct, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		writeRankedProductsText(w, results)
		return nil
	}
}

func writeRankedProductsText(w io.Writer, results []*models.RankedProduct) {
	fmt.Fprintf(w, "\nFound %d ranked products\n\n", len(results))
	for i, rp := range results {
		writeOneProduct(w, i+1, rp)
	}
}

func writeOneProduct(w io.Writer, rank int, rp *models.RankedProduct) {
	m := &rp.Metadata
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.4f (Base: %.4f, Aspect: %.4f)\n",
		rank, rp.Score, rp.BaseScore, rp.AspectScore)
	fmt.Fprintf(w, "ID: %s\n", rp.ID)
	fmt.Fprintf(w, "Title: %s\n", rp.Title)
	if m.Price != nil {
		fmt.Fprintf(w, "Price: $%.2f\n", *m.Price)
	}
	if m.AvgRatingFromReviews != nil {
		fmt.Fprintf(w, "Rating: %.2f across %d reviews\n", *m.AvgRatingFromReviews, m.ReviewCount)
	} else {
		fmt.Fprintf(w, "Reviews: %d\n", m.ReviewCount)
	}
	for _, pro := range m.SamplePros {
		fmt.Fprintf(w, "  + %s\n", utils.Truncate(pro, snippetPreviewLen))
	}
	for _, con := range m.SampleCons {
		fmt.Fprintf(w, "  - %s\n", utils.Truncate(con, snippetPreviewLen))
	}
	fmt.Fprintln(w)
}
