// Package catalog loads the aggregated product index and shares it as an
// immutable in-memory snapshot, with an optional Bleve browse index on top.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperjump/erabu/internal/models"
)

// maxLineBytes bounds one aggregated index line.
const maxLineBytes = 8 << 20

// LoadIndex reads an aggregated catalog JSONL stream into memory. Blank
// lines are skipped; a malformed line is a hard error here, since the
// aggregated index is produced by our own build and corruption means the
// file is not trustworthy.
func LoadIndex(r io.Reader) ([]*models.ProductDocument, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var products []*models.ProductDocument
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var doc models.ProductDocument
		if err := json.Unmarshal(line, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse aggregated index line %d: %w", lineNo, err)
		}
		d := doc
		products = append(products, &d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aggregated index: %w", err)
	}
	return products, nil
}

// LoadIndexFile loads the aggregated catalog from a file path.
func LoadIndexFile(path string) ([]*models.ProductDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open aggregated index: %w", err)
	}
	defer f.Close()
	return LoadIndex(f)
}
