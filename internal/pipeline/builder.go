package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/erabu/internal/classify"
	"github.com/hyperjump/erabu/internal/models"
	"go.uber.org/zap"
)

// defaultProgressEvery is how many input lines pass between progress logs.
const defaultProgressEvery = 1_000_000

// PassStats summarizes one build pass. Malformed lines are skipped and
// counted, never fatal.
type PassStats struct {
	LinesRead int `json:"lines_read"`
	Malformed int `json:"malformed"`
	Kept      int `json:"kept"`
}

// BuildStats summarizes a full two-pass build.
type BuildStats struct {
	Pass1 PassStats `json:"pass1"`
	Pass2 PassStats `json:"pass2"`
}

// Builder runs the two-pass extraction: pass 1 classifies and price-filters
// the metadata stream, pass 2 filters the much larger review stream against
// the keys pass 1 retained. The passes are strictly sequential; pass 2
// depends on the complete pass-1 key set.
type Builder struct {
	classifier    *classify.Classifier
	logger        *zap.Logger
	progressEvery int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets a logger for progress and summary output.
func WithLogger(l *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// WithProgressEvery overrides the progress logging interval.
func WithProgressEvery(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.progressEvery = n
		}
	}
}

// NewBuilder creates a builder. A nil classifier uses the default keyword
// configuration.
func NewBuilder(classifier *classify.Classifier, opts ...BuilderOption) *Builder {
	if classifier == nil {
		classifier = classify.NewClassifier(nil)
	}
	b := &Builder{
		classifier:    classifier,
		logger:        zap.NewNop(),
		progressEvery: defaultProgressEvery,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Pass1 streams the metadata JSONL, keeps records that classify as
// in-category and carry a valid positive price, writes one ProductDocument
// per keeper, and returns the kept records keyed by product key. The map is
// the only structure held in memory across the build; it is sized to the
// qualifying products, not the raw input.
func (b *Builder) Pass1(metadata io.Reader, out io.Writer) (map[string]models.RawRecord, PassStats, error) {
	products := make(map[string]models.RawRecord)
	var stats PassStats
	enc := json.NewEncoder(out)
	var encErr error

	_, err := scanJSONL(metadata, func(line []byte) {
		stats.LinesRead++
		if encErr != nil {
			return
		}
		if b.progressEvery > 0 && stats.LinesRead%b.progressEvery == 0 {
			b.logger.Info("pass 1 progress", zap.Int("lines", stats.LinesRead), zap.Int("kept", stats.Kept))
		}

		var rec models.RawRecord
		if !decodeLine(line, &rec) {
			stats.Malformed++
			return
		}
		key := rec.ProductKey()
		if key == "" {
			return
		}
		if !b.classifier.Matches(rec) {
			return
		}
		price, ok := NormalizePrice(rec["price"])
		if !ok {
			return
		}
		// Normalize in place so pass 2 and aggregation see a float.
		rec["price"] = price

		products[key] = rec
		stats.Kept++

		doc := buildProductDocument(key, rec, price)
		if err := enc.Encode(doc); err != nil {
			encErr = fmt.Errorf("failed to write product document: %w", err)
		}
	})
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read metadata stream: %w", err)
	}
	if encErr != nil {
		return nil, stats, encErr
	}

	b.logger.Info("pass 1 complete",
		zap.Int("lines_read", stats.LinesRead),
		zap.Int("malformed", stats.Malformed),
		zap.Int("products_kept", stats.Kept),
	)
	return products, stats, nil
}

// Pass2 streams the review JSONL, keeps reviews whose product key is in the
// pass-1 set and whose text is non-empty, and writes one ReviewDocument per
// keeper with denormalized product fields. Reviews are never materialized;
// each line is tested and either written through or discarded.
func (b *Builder) Pass2(reviews io.Reader, out io.Writer, products map[string]models.RawRecord) (PassStats, error) {
	var stats PassStats
	enc := json.NewEncoder(out)
	var encErr error

	_, err := scanJSONL(reviews, func(line []byte) {
		stats.LinesRead++
		if encErr != nil {
			return
		}
		if b.progressEvery > 0 && stats.LinesRead%b.progressEvery == 0 {
			b.logger.Info("pass 2 progress", zap.Int("lines", stats.LinesRead), zap.Int("kept", stats.Kept))
		}

		var rec models.RawRecord
		if !decodeLine(line, &rec) {
			stats.Malformed++
			return
		}
		key := rec.ProductKey()
		meta, ok := products[key]
		if !ok {
			return
		}
		text := strings.TrimSpace(rec.Str("text"))
		if text == "" {
			return
		}

		doc := buildReviewDocument(key, rec, meta, text, stats.Kept)
		stats.Kept++
		if err := enc.Encode(doc); err != nil {
			encErr = fmt.Errorf("failed to write review document: %w", err)
		}
	})
	if err != nil {
		return stats, fmt.Errorf("failed to read review stream: %w", err)
	}
	if encErr != nil {
		return stats, encErr
	}

	b.logger.Info("pass 2 complete",
		zap.Int("lines_read", stats.LinesRead),
		zap.Int("malformed", stats.Malformed),
		zap.Int("reviews_kept", stats.Kept),
	)
	return stats, nil
}

// Run executes both passes against files on disk. Unreadable inputs are
// fatal; an empty pass-1 result is a warning that short-circuits pass 2
// and leaves the review output empty.
func (b *Builder) Run(metaPath, reviewsPath, outProducts, outReviews string) (BuildStats, error) {
	var stats BuildStats

	metaIn, err := os.Open(metaPath)
	if err != nil {
		return stats, fmt.Errorf("failed to open metadata input: %w", err)
	}
	defer metaIn.Close()

	prodOut, err := os.Create(outProducts)
	if err != nil {
		return stats, fmt.Errorf("failed to create product output: %w", err)
	}
	defer prodOut.Close()

	products, p1, err := b.Pass1(metaIn, prodOut)
	stats.Pass1 = p1
	if err != nil {
		return stats, err
	}

	revOut, err := os.Create(outReviews)
	if err != nil {
		return stats, fmt.Errorf("failed to create review output: %w", err)
	}
	defer revOut.Close()

	if len(products) == 0 {
		b.logger.Warn("no qualifying products after pass 1; review index will be empty")
		return stats, nil
	}

	revIn, err := os.Open(reviewsPath)
	if err != nil {
		return stats, fmt.Errorf("failed to open review input: %w", err)
	}
	defer revIn.Close()

	p2, err := b.Pass2(revIn, revOut, products)
	stats.Pass2 = p2
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// curatedPass1Fields are the metadata keys set explicitly in pass 1. Detail
// sub-fields only merge in under keys not already taken; curated fields win
// on conflict.
var curatedPass1Fields = map[string]bool{
	"asin":           true,
	"main_category":  true,
	"categories":     true,
	"price":          true,
	"average_rating": true,
	"rating_number":  true,
	"store":          true,
	"images":         true,
}

// buildProductDocument assembles the pass-1 output document for a kept record.
func buildProductDocument(key string, rec models.RawRecord, price float64) *models.ProductDocument {
	md := models.ProductMetadata{
		ASIN:         key,
		MainCategory: rec.Str("main_category"),
		Categories:   rec.Strs("categories"),
		Price:        &price,
		Store:        rec.Str("store"),
	}
	if v, ok := rec.Float("average_rating"); ok {
		md.AverageRating = &v
	}
	if v, ok := rec.Int("rating_number"); ok {
		md.RatingNumber = &v
	}

	extra := make(map[string]any)
	if images, ok := rec["images"]; ok {
		extra["images"] = images
	}
	for k, v := range rec.Map("details") {
		if curatedPass1Fields[k] {
			continue
		}
		if _, taken := extra[k]; !taken {
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		md.Extra = extra
	}

	return &models.ProductDocument{
		ID:       key,
		Title:    rec.Str("title"),
		Text:     buildProductText(rec),
		Metadata: md,
	}
}

// buildProductText derives the searchable text from title, features, and
// description. Reviews are deliberately excluded to keep the product index
// proportional to the catalog, not the review volume.
func buildProductText(rec models.RawRecord) string {
	candidates := []string{
		rec.Str("title"),
		strings.Join(rec.Strs("features"), " "),
		strings.Join(rec.Strs("description"), " "),
	}
	parts := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ". ")
}

// buildReviewDocument assembles a pass-2 output document, denormalizing the
// product fields downstream aggregation needs so no join happens at query
// time. seq is the per-build output counter; the resulting id is therefore
// order-dependent across re-runs.
func buildReviewDocument(key string, rec, meta models.RawRecord, text string, seq int) *models.ReviewDocument {
	doc := &models.ReviewDocument{
		ID:         fmt.Sprintf("%s__%d", key, seq),
		ParentASIN: key,
		ASIN:       rec.Str("asin"),
		Title:      rec.Str("title"),
		Text:       text,
		Metadata: models.ReviewMetadata{
			ParentASIN:        key,
			ASIN:              rec.Str("asin"),
			ProductTitle:      meta.Str("title"),
			ProductCategories: meta.Strs("categories"),
			VerifiedPurchase:  rec.Bool("verified_purchase"),
		},
	}
	if rating, ok := rec.Float("rating"); ok {
		doc.Rating = &rating
	}
	if price, ok := meta.Float("price"); ok {
		doc.Metadata.ProductPrice = &price
	}
	if helpful, ok := rec.Int("helpful_vote"); ok {
		doc.Metadata.HelpfulVote = helpful
	}
	if ts, ok := rec.Float("timestamp"); ok {
		doc.Metadata.Timestamp = int64(ts)
	}
	return doc
}
