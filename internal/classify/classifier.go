package classify

import (
	"fmt"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
)

// Classifier applies the keyword heuristics to raw metadata records.
type Classifier struct {
	cfg *KeywordConfig
}

// NewClassifier creates a classifier. A nil config uses the defaults.
func NewClassifier(cfg *KeywordConfig) *Classifier {
	if cfg == nil {
		cfg = DefaultKeywordConfig()
	}
	cfg.ApplyDefaults()
	return &Classifier{cfg: cfg}
}

// Matches reports whether the record denotes an in-category product.
// Signals are checked in order, short-circuiting on the first decisive one:
//
//  1. A hard-negative phrase in the title rejects, overriding everything.
//  2. A positive title plus a positive category string accepts, unless the
//     category string is accessory-dominated.
//  3. Fallback: a positive title plus the core noun in the detail values.
//  4. Otherwise reject.
//
// Missing title, categories, or details never fail; they behave as empty.
func (c *Classifier) Matches(rec models.RawRecord) bool {
	title := strings.ToLower(rec.Str("title"))

	for _, phrase := range c.cfg.NegativePhrases {
		if strings.Contains(title, phrase) {
			return false
		}
	}

	hasPosTitle := containsAny(title, c.cfg.PositiveTitleKeywords)

	cats := rec.Strs("categories")
	joined := strings.ToLower(strings.Join(cats, " | "))
	catPositive := containsAny(joined, c.cfg.PositiveCategoryKeywords)
	catAccessory := containsAny(joined, c.cfg.AccessoryCategoryKeywords)

	// Something like "Cables" with no strong in-category words in the title.
	if catAccessory && !hasPosTitle {
		return false
	}

	if hasPosTitle && catPositive && !catAccessory {
		return true
	}

	if hasPosTitle && strings.Contains(detailsText(rec), c.cfg.CoreNoun) {
		return true
	}

	return false
}

// detailsText concatenates the record's detail values into one lowercased
// string for the fallback check.
func detailsText(rec models.RawRecord) string {
	details := rec.Map("details")
	if len(details) == 0 {
		return ""
	}
	parts := make([]string, 0, len(details))
	for _, v := range details {
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
