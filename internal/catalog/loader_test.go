package catalog

import (
	"strings"
	"testing"
)

func TestLoadIndex(t *testing.T) {
	input := `{"id":"P1","title":"Wireless Over-Ear Headphones","metadata":{"asin":"P1","price":49.99,"review_count":12}}

{"id":"P2","title":"True Wireless Earbuds","metadata":{"asin":"P2","price":29.99,"review_count":4,"rating_hist":{"1":0,"2":1,"3":0,"4":1,"5":2}}}
`
	products, err := LoadIndex(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("loaded %d products, want 2", len(products))
	}
	if products[0].ID != "P1" || products[1].ID != "P2" {
		t.Errorf("order = %s, %s; want file order", products[0].ID, products[1].ID)
	}
	if products[0].Metadata.ReviewCount != 12 {
		t.Errorf("review count = %d, want 12", products[0].Metadata.ReviewCount)
	}
	if got := products[1].Metadata.RatingHist.Total(); got != 4 {
		t.Errorf("histogram total = %d, want 4", got)
	}
}

func TestLoadIndex_MalformedLineIsFatal(t *testing.T) {
	input := `{"id":"P1","title":"ok","metadata":{"asin":"P1"}}
{broken
`
	if _, err := LoadIndex(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for malformed aggregated line")
	} else if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestLoadIndex_Empty(t *testing.T) {
	products, err := LoadIndex(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("empty input loaded %d products", len(products))
	}
}

func TestLoadIndexFile_Missing(t *testing.T) {
	if _, err := LoadIndexFile("/nonexistent/erabu/index.jsonl"); err == nil {
		t.Fatal("expected error for missing index file")
	}
}
