package classify

import (
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func record(title string, categories ...string) models.RawRecord {
	cats := make([]any, len(categories))
	for i, c := range categories {
		cats[i] = c
	}
	return models.RawRecord{"title": title, "categories": cats}
}

func TestClassifier_Matches(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name string
		rec  models.RawRecord
		want bool
	}{
		{
			name: "over-ear headphones in headphone category",
			rec:  record("Wireless Over-Ear Headphones", "Electronics", "Headphones"),
			want: true,
		},
		{
			name: "audio adapter in cables category rejected despite audio wording",
			rec:  record("USB-C to 3.5mm Audio Adapter", "Electronics", "Cables"),
			want: false,
		},
		{
			name: "gaming headset",
			rec:  record("Pro Gaming Headset with Mic", "Video Games", "Headsets", "Headphones"),
			want: true,
		},
		{
			name: "carrying case rejected by hard negative",
			rec:  record("Carrying Case for Wireless Headphones", "Electronics", "Headphones"),
			want: false,
		},
		{
			name: "smartwatch rejected",
			rec:  record("Smartwatch with Bluetooth Earbuds Pairing", "Wearable Technology"),
			want: false,
		},
		{
			name: "accessory category without positive title rejected",
			rec:  record("Premium Braided 6ft Cord", "Electronics", "Accessories"),
			want: false,
		},
		{
			name: "positive title but no category signal rejected without detail fallback",
			rec:  record("True Wireless Earbuds", "Electronics"),
			want: false,
		},
		{
			name: "replacement earpads rejected",
			rec:  record("Replacement Earpads for Studio Monitors", "Electronics", "Headphones"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Matches(tt.rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifier_DetailFallback(t *testing.T) {
	c := NewClassifier(nil)

	rec := record("True Wireless Earbuds", "Electronics")
	rec["details"] = map[string]any{"Product Type": "Bluetooth headphone"}
	if !c.Matches(rec) {
		t.Error("detail fallback should accept a positive title with the core noun in details")
	}

	rec["details"] = map[string]any{"Product Type": "speaker"}
	if c.Matches(rec) {
		t.Error("detail fallback should reject when details lack the core noun")
	}
}

func TestClassifier_MissingFieldsNeverPanic(t *testing.T) {
	c := NewClassifier(nil)
	for _, rec := range []models.RawRecord{
		{},
		{"title": nil},
		{"categories": "not a list"},
		{"details": "not a map"},
	} {
		if c.Matches(rec) {
			t.Errorf("empty-ish record %v should not classify", rec)
		}
	}
}

func TestClassifier_CustomKeywords(t *testing.T) {
	cfg := &KeywordConfig{
		NegativePhrases:           []string{"tripod"},
		PositiveTitleKeywords:     []string{"camera"},
		PositiveCategoryKeywords:  []string{"cameras"},
		AccessoryCategoryKeywords: []string{"accessories"},
		CoreNoun:                  "camera",
	}
	c := NewClassifier(cfg)

	if !c.Matches(record("Mirrorless Camera Body", "Electronics", "Cameras")) {
		t.Error("retargeted classifier should accept a camera")
	}
	if c.Matches(record("Wireless Over-Ear Headphones", "Electronics", "Headphones")) {
		t.Error("retargeted classifier should reject headphones")
	}
	if c.Matches(record("Camera Tripod Mount", "Electronics", "Cameras")) {
		t.Error("negative phrase should reject tripod")
	}
}
