// Package catalog reads the product catalog from its JSON data file.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMissingData is returned when the catalog file has no "data" array.
var ErrMissingData = errors.New("catalog file has no data field")

// Product is one catalog record, kept exactly as it appears in the file.
type Product map[string]any

// ItemCode returns the record's item_code as text. Numeric codes are
// returned in their original JSON form.
func (p Product) ItemCode() (string, bool) {
	switch v := p["item_code"].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

type document struct {
	Data *[]Product `json:"data"`
}

// Loader re-reads the catalog file on every call so that edits to the file
// are picked up without a restart.
type Loader struct {
	Path string
}

func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

func (l *Loader) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	// Strips a leading UTF-8 byte-order mark if present.
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", l.Path, err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("decode catalog %s: %w", l.Path, ErrMissingData)
	}

	return *doc.Data, nil
}

// Find returns the first product whose item_code equals itemCode.
func Find(products []Product, itemCode string) (Product, bool) {
	for _, p := range products {
		if code, ok := p.ItemCode(); ok && code == itemCode {
			return p, true
		}
	}
	return nil, false
}
