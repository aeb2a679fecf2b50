package catalog

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/hyperjump/erabu/internal/models"
)

// browseDoc is the slice of a product indexed for free-text browsing.
type browseDoc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// BrowseHit is one free-text browse match.
type BrowseHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// BrowseIndex is an in-memory Bleve index over product titles and searchable
// text, for exploring the catalog outside the plan-driven ranking path. It
// is rebuilt from a snapshot, never updated incrementally.
type BrowseIndex struct {
	index bleve.Index
}

// NewBrowseIndex builds an in-memory index over the given snapshot.
func NewBrowseIndex(products []*models.ProductDocument) (*BrowseIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize, no stemming, so queries match
	// the exact words a listing uses.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("text", textFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create browse index: %w", err)
	}

	batch := index.NewBatch()
	for _, p := range products {
		doc := browseDoc{ID: p.ID, Title: p.Title, Text: p.Text}
		if err := batch.Index(p.ID, doc); err != nil {
			return nil, fmt.Errorf("failed to index product %s: %w", p.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to build browse index: %w", err)
	}

	return &BrowseIndex{index: index}, nil
}

// Search runs a match query over title and text, returning up to limit hits.
func (b *BrowseIndex) Search(query string, limit int) ([]*BrowseHit, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("browse search failed: %w", err)
	}
	hits := make([]*BrowseHit, len(results.Hits))
	for i, hit := range results.Hits {
		hits[i] = &BrowseHit{ID: hit.ID, Score: hit.Score}
	}
	return hits, nil
}

// Close releases the index.
func (b *BrowseIndex) Close() error {
	return b.index.Close()
}
