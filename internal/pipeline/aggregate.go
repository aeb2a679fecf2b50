package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/hyperjump/erabu/internal/models"
	"go.uber.org/zap"
)

// DefaultMaxSnippets is how many pros and cons snippets are retained per
// product.
const DefaultMaxSnippets = 5

// AggStats summarizes an aggregation run.
type AggStats struct {
	ProductsLoaded  int `json:"products_loaded"`
	ReviewsRead     int `json:"reviews_read"`
	Malformed       int `json:"malformed"`
	ReviewsUsed     int `json:"reviews_used"`
	ProductsWritten int `json:"products_written"`
}

// productAgg is the bounded per-product aggregation state: counters, a
// five-bucket histogram, and two fixed-capacity evidence buffers. Total
// aggregator memory is proportional to the number of qualifying products,
// not to the number of reviews.
type productAgg struct {
	reviewCount int
	ratingSum   float64
	hist        models.RatingHistogram
	pros        *evidenceBuffer
	cons        *evidenceBuffer
}

// Aggregator consumes the pass-2 review stream and produces one aggregated
// catalog record per product with at least one usable review.
type Aggregator struct {
	maxSnippets   int
	logger        *zap.Logger
	progressEvery int

	state map[string]*productAgg
	order []string // product keys in first-review order, for stable output
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithAggregatorLogger sets a logger for progress and summary output.
func WithAggregatorLogger(l *zap.Logger) AggregatorOption {
	return func(a *Aggregator) { a.logger = l }
}

// WithMaxSnippets overrides the per-product pros/cons snippet cap.
func WithMaxSnippets(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxSnippets = n
		}
	}
}

// NewAggregator creates an aggregator with the default snippet cap.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		maxSnippets:   DefaultMaxSnippets,
		logger:        zap.NewNop(),
		progressEvery: defaultProgressEvery,
		state:         make(map[string]*productAgg),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Consume folds one review into the per-product state. It reports whether
// the review was usable: a review is discarded when its rating is missing or
// rounds outside 1-5, or when its text is empty after trimming.
func (a *Aggregator) Consume(rev *models.ReviewDocument) bool {
	if rev.Rating == nil {
		return false
	}
	star := int(math.Round(*rev.Rating))
	if star < 1 || star > 5 {
		return false
	}
	text := strings.TrimSpace(rev.Text)
	if text == "" {
		return false
	}

	key := rev.ParentASIN
	agg, ok := a.state[key]
	if !ok {
		agg = &productAgg{
			pros: newEvidenceBuffer(a.maxSnippets),
			cons: newEvidenceBuffer(a.maxSnippets),
		}
		a.state[key] = agg
		a.order = append(a.order, key)
	}

	agg.reviewCount++
	agg.ratingSum += *rev.Rating
	agg.hist.Add(star)

	if star >= 4 {
		agg.pros.offer(star, rev.Metadata.HelpfulVote, text)
	} else if star <= 2 {
		agg.cons.offer(star, rev.Metadata.HelpfulVote, text)
	}
	return true
}

// Finalize merges the aggregated state into the pass-1 product documents and
// returns one record per reviewed product, in first-review order. The
// declared rating stats move under meta_average_rating/meta_rating_number so
// both the declared and the review-derived signals survive.
func (a *Aggregator) Finalize(products map[string]*models.ProductDocument) []*models.ProductDocument {
	out := make([]*models.ProductDocument, 0, len(a.order))
	for _, key := range a.order {
		agg := a.state[key]
		product, ok := products[key]
		if !ok || agg.reviewCount == 0 {
			continue
		}

		avg := agg.ratingSum / float64(agg.reviewCount)

		merged := *product
		md := merged.Metadata
		md.ReviewCount = agg.reviewCount
		md.AvgRatingFromReviews = &avg
		md.RatingHist = agg.hist
		md.MetaAverageRating = md.AverageRating
		md.MetaRatingNumber = md.RatingNumber
		md.SamplePros = agg.pros.favorableTexts()
		md.SampleCons = agg.cons.unfavorableTexts()
		merged.Metadata = md

		out = append(out, &merged)
	}
	return out
}

// LoadProducts reads the pass-1 product index into a map keyed by product
// key. Malformed lines are counted and skipped.
func LoadProducts(r io.Reader) (map[string]*models.ProductDocument, int, error) {
	products := make(map[string]*models.ProductDocument)
	malformed := 0
	_, err := scanJSONL(r, func(line []byte) {
		var doc models.ProductDocument
		if !decodeLine(line, &doc) {
			malformed++
			return
		}
		if doc.Metadata.ASIN == "" {
			return
		}
		d := doc
		products[doc.Metadata.ASIN] = &d
	})
	if err != nil {
		return nil, malformed, fmt.Errorf("failed to read product index: %w", err)
	}
	return products, malformed, nil
}

// Aggregate streams the review index against the loaded products and writes
// the aggregated catalog.
func (a *Aggregator) Aggregate(products map[string]*models.ProductDocument, reviews io.Reader, out io.Writer) (AggStats, error) {
	stats := AggStats{ProductsLoaded: len(products)}

	_, err := scanJSONL(reviews, func(line []byte) {
		stats.ReviewsRead++
		if a.progressEvery > 0 && stats.ReviewsRead%a.progressEvery == 0 {
			a.logger.Info("aggregation progress", zap.Int("reviews", stats.ReviewsRead))
		}
		var rev models.ReviewDocument
		if !decodeLine(line, &rev) {
			stats.Malformed++
			return
		}
		if _, ok := products[rev.ParentASIN]; !ok {
			return
		}
		if a.Consume(&rev) {
			stats.ReviewsUsed++
		}
	})
	if err != nil {
		return stats, fmt.Errorf("failed to read review index: %w", err)
	}

	enc := json.NewEncoder(out)
	for _, doc := range a.Finalize(products) {
		if err := enc.Encode(doc); err != nil {
			return stats, fmt.Errorf("failed to write aggregated record: %w", err)
		}
		stats.ProductsWritten++
	}

	a.logger.Info("aggregation complete",
		zap.Int("reviews_read", stats.ReviewsRead),
		zap.Int("reviews_used", stats.ReviewsUsed),
		zap.Int("products_written", stats.ProductsWritten),
	)
	return stats, nil
}

// AggregateFiles runs aggregation against files on disk. Unreadable inputs
// are fatal to the run.
func (a *Aggregator) AggregateFiles(productsPath, reviewsPath, outPath string) (AggStats, error) {
	prodIn, err := os.Open(productsPath)
	if err != nil {
		return AggStats{}, fmt.Errorf("failed to open product index: %w", err)
	}
	defer prodIn.Close()

	products, malformed, err := LoadProducts(prodIn)
	if err != nil {
		return AggStats{}, err
	}
	if malformed > 0 {
		a.logger.Warn("skipped malformed product lines", zap.Int("count", malformed))
	}

	revIn, err := os.Open(reviewsPath)
	if err != nil {
		return AggStats{}, fmt.Errorf("failed to open review index: %w", err)
	}
	defer revIn.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return AggStats{}, fmt.Errorf("failed to create aggregated index: %w", err)
	}
	defer out.Close()

	return a.Aggregate(products, revIn, out)
}
