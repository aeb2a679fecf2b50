package guide

import (
	"strings"
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func rankedFixture(n int) []*models.RankedProduct {
	out := make([]*models.RankedProduct, n)
	for i := range out {
		price := 49.99
		avg := 4.2
		out[i] = &models.RankedProduct{
			ProductDocument: models.ProductDocument{
				ID:    string(rune('A' + i)),
				Title: "Wireless Over-Ear Headphones",
				Metadata: models.ProductMetadata{
					Price:                &price,
					AvgRatingFromReviews: &avg,
					ReviewCount:          120,
					SamplePros:           []string{"Great battery."},
					SampleCons:           []string{"Tight clamp."},
				},
			},
			Score: 0.8,
		}
	}
	return out
}

func TestCompactViews(t *testing.T) {
	views := CompactViews(rankedFixture(3), 5)
	if len(views) != 3 {
		t.Fatalf("got %d views, want 3", len(views))
	}
	v := views[0]
	if v.ID != "A" || v.Title == "" {
		t.Errorf("view identity = %+v", v)
	}
	if v.Price == nil || *v.Price != 49.99 {
		t.Errorf("price = %v", v.Price)
	}
	if v.AvgRating == nil || *v.AvgRating != 4.2 {
		t.Errorf("avg rating = %v", v.AvgRating)
	}
	if v.ReviewCount != 120 || v.Score != 0.8 {
		t.Errorf("signals = %+v", v)
	}
	if len(v.Pros) != 1 || v.Pros[0] != "Great battery." {
		t.Errorf("pros = %v", v.Pros)
	}
	if len(v.Cons) != 1 || v.Cons[0] != "Tight clamp." {
		t.Errorf("cons = %v", v.Cons)
	}
}

func TestCompactViews_Caps(t *testing.T) {
	if got := len(CompactViews(rankedFixture(10), 3)); got != 3 {
		t.Errorf("explicit cap: got %d views, want 3", got)
	}
	if got := len(CompactViews(rankedFixture(10), 0)); got != DefaultMaxExplainerProducts {
		t.Errorf("default cap: got %d views, want %d", got, DefaultMaxExplainerProducts)
	}
	if got := len(CompactViews(nil, 5)); got != 0 {
		t.Errorf("no candidates: got %d views", got)
	}
}

func TestCompactViews_TruncatesSnippets(t *testing.T) {
	ranked := rankedFixture(1)
	long := strings.Repeat("battery life is outstanding ", 40)
	ranked[0].Metadata.SamplePros = []string{long}

	views := CompactViews(ranked, 1)
	got := views[0].Pros[0]
	if len(got) > snippetMaxLen+len("...") {
		t.Errorf("snippet not truncated: %d chars", len(got))
	}
	if !strings.HasPrefix(long, strings.TrimSuffix(got, "...")) {
		t.Errorf("truncated snippet is not a prefix: %q", got)
	}
}
