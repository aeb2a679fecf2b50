// Package e2e provides end-to-end tests over the full pipeline: raw catalog
// in, two-pass build, aggregation, and plan-driven retrieval out.
package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// E2EProduct is one raw catalog record in the corpus.
type E2EProduct struct {
	Key        string
	Title      string
	Categories []string
	Price      any
	Features   []string
	// Qualifies records whether the build is expected to keep this product.
	Qualifies bool
}

// E2EReview is one raw review record in the corpus.
type E2EReview struct {
	Key     string
	Rating  float64
	Text    string
	Helpful int
}

// Corpus holds the raw records and the expectations checked against them.
type Corpus struct {
	Products []E2EProduct
	Reviews  []E2EReview
}

// BuildCorpus returns a small catalog with qualifying headphones, accessories
// that must be rejected, off-category noise, and a review stream covering all
// of them. H4 and H6 carry identical prices and review profiles so only their
// listing text tells them apart.
func BuildCorpus() *Corpus {
	products := []E2EProduct{
		{
			Key: "H1", Title: "Wireless Over-Ear Headphones Pro",
			Categories: []string{"Electronics", "Headphones"},
			Price:      "$49.99",
			Features:   []string{"Bluetooth 5.3", "40 hour battery life"},
			Qualifies:  true,
		},
		{
			Key: "H2", Title: "True Wireless Earbuds Sport",
			Categories: []string{"Electronics", "Earbuds"},
			Price:      29.99,
			Features:   []string{"Sweatproof for the gym", "Secure fit wings"},
			Qualifies:  true,
		},
		{
			Key: "H3", Title: "Audiophile Open-Back Headphones",
			Categories: []string{"Electronics", "Headphones"},
			Price:      "$249.00",
			Features:   []string{"Wide soundstage", "Velour earcups"},
			Qualifies:  true,
		},
		{
			Key: "H4", Title: "Gaming Headset with Detachable Mic",
			Categories: []string{"Video Games", "Headphones"},
			Price:      54.99,
			Features:   []string{"Detachable boom microphone", "RGB lighting"},
			Qualifies:  true,
		},
		{
			Key: "H5", Title: "Budget In-Ear Earphones",
			Categories: []string{"Electronics", "Earbuds"},
			Price:      "$9.99",
			Features:   []string{"Tangle-free cable"},
			Qualifies:  true,
		},
		{
			Key: "H6", Title: "Noise Cancelling Over-Ear Headphones Max",
			Categories: []string{"Electronics", "Headphones"},
			Price:      54.99,
			Features:   []string{"Active noise cancelling", "Plush memory foam"},
			Qualifies:  true,
		},
		{
			Key: "H7", Title: "New Release Wireless Headphones",
			Categories: []string{"Electronics", "Headphones"},
			Price:      44.99,
			Features:   []string{"Just launched"},
			Qualifies:  true,
		},
		// Accessories that share headphone vocabulary but must be rejected.
		{
			Key: "A1", Title: "Replacement Earpads for Over-Ear Headphones",
			Categories: []string{"Electronics", "Accessories"},
			Price:      12.99,
		},
		{
			Key: "A2", Title: "USB-C to 3.5mm Audio Adapter",
			Categories: []string{"Electronics", "Cables"},
			Price:      9.99,
		},
		{
			Key: "A3", Title: "Wooden Headphone Stand",
			Categories: []string{"Electronics", "Accessories"},
			Price:      19.99,
		},
		// Off-category noise.
		{
			Key: "N1", Title: "Garden Hose 50ft",
			Categories: []string{"Patio, Lawn & Garden"},
			Price:      24.99,
		},
		// In-category but unpriceable.
		{
			Key: "N2", Title: "Wireless Headphones Clearance",
			Categories: []string{"Electronics", "Headphones"},
			Price:      "currently unavailable",
		},
	}

	var reviews []E2EReview
	reviews = append(reviews, ratedReviews("H1", 30, 4.6, "Crisp sound and the battery runs for days.")...)
	reviews = append(reviews, E2EReview{Key: "H1", Rating: 2, Text: "Headband creaks after a month.", Helpful: 14})
	reviews = append(reviews, ratedReviews("H2", 20, 4.3, "Stays put at the gym and shrugs off sweat.")...)
	reviews = append(reviews, ratedReviews("H3", 12, 4.9, "The soundstage is enormous for the price.")...)
	reviews = append(reviews, ratedReviews("H4", 20, 4.5, "Teammates hear the microphone clearly.")...)
	reviews = append(reviews, ratedReviews("H5", 60, 3.4, "Fine for the price, nothing more.")...)
	reviews = append(reviews, ratedReviews("H6", 20, 4.5, "The noise cancelling silences the train commute.")...)
	reviews = append(reviews, ratedReviews("H7", 3, 5.0, "Early adopter here, loving it.")...)
	// Reviews for rejected and unknown products: pass 2 must drop them.
	reviews = append(reviews, ratedReviews("A2", 5, 4.8, "Adapter works.")...)
	reviews = append(reviews, ratedReviews("N1", 5, 4.0, "Good hose.")...)
	reviews = append(reviews, E2EReview{Key: "ZZZ", Rating: 5, Text: "Product never existed."})

	return &Corpus{Products: products, Reviews: reviews}
}

// ratedReviews generates n reviews averaging close to target by alternating
// ratings around it. Texts are suffixed so evidence snippets stay unique.
func ratedReviews(key string, n int, target float64, text string) []E2EReview {
	out := make([]E2EReview, n)
	for i := range out {
		rating := float64(int(target))
		if float64(i)/float64(n) < target-float64(int(target)) {
			rating++
		}
		if rating > 5 {
			rating = 5
		}
		out[i] = E2EReview{
			Key:     key,
			Rating:  rating,
			Text:    fmt.Sprintf("%s (reviewer %d)", text, i+1),
			Helpful: i % 7,
		}
	}
	return out
}

// QualifyingKeys returns the keys the build is expected to keep.
func (c *Corpus) QualifyingKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, p := range c.Products {
		if p.Qualifies {
			keys[p.Key] = true
		}
	}
	return keys
}

// WriteMetadataFile writes the products as raw metadata JSONL.
func (c *Corpus) WriteMetadataFile(path string) error {
	var sb strings.Builder
	for _, p := range c.Products {
		rec := map[string]any{
			"parent_asin": p.Key,
			"title":       p.Title,
			"categories":  p.Categories,
			"price":       p.Price,
			"features":    p.Features,
			"store":       "E2E Test Store",
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// WriteReviewsFile writes the reviews as raw review JSONL.
func (c *Corpus) WriteReviewsFile(path string) error {
	var sb strings.Builder
	for _, r := range c.Reviews {
		rec := map[string]any{
			"parent_asin":  r.Key,
			"rating":       r.Rating,
			"text":         r.Text,
			"helpful_vote": r.Helpful,
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
