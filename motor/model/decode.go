package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeStats reports how many records relied on a non-canonical key.
// The canonical keys are "category" and "api_featured_image"; "product_category"
// and "image_link" are accepted only when the canonical key is empty.
type DecodeStats struct {
	Products           int
	CategoryNormalized int
	ImageNormalized    int
}

// Normalized reports whether any record used a variant key.
func (s DecodeStats) Normalized() bool {
	return s.CategoryNormalized > 0 || s.ImageNormalized > 0
}

type wireProduct struct {
	ID               int        `json:"id"`
	Brand            string     `json:"brand"`
	Name             string     `json:"name"`
	Price            flexString `json:"price"`
	PriceSign        string     `json:"price_sign"`
	Currency         string     `json:"currency"`
	ProductType      string     `json:"product_type"`
	Category         string     `json:"category"`
	ProductCategory  string     `json:"product_category"`
	TagList          []string   `json:"tag_list"`
	APIFeaturedImage string     `json:"api_featured_image"`
	ImageLink        string     `json:"image_link"`
	ProductLink      string     `json:"product_link"`
	Rating           *float64   `json:"rating"`
}

func (w *wireProduct) toProduct(stats *DecodeStats) Product {
	p := Product{
		ID:          w.ID,
		Brand:       w.Brand,
		Name:        w.Name,
		Price:       string(w.Price),
		PriceSign:   w.PriceSign,
		Currency:    w.Currency,
		ProductType: w.ProductType,
		Category:    w.Category,
		TagList:     w.TagList,
		ImageURL:    w.APIFeaturedImage,
		ProductLink: w.ProductLink,
		Rating:      w.Rating,
	}

	if p.Category == "" && w.ProductCategory != "" {
		p.Category = w.ProductCategory
		if stats != nil {
			stats.CategoryNormalized++
		}
	}
	if p.ImageURL == "" && w.ImageLink != "" {
		p.ImageURL = w.ImageLink
		if stats != nil {
			stats.ImageNormalized++
		}
	}
	return p
}

// UnmarshalJSON decodes a single product, folding variant keys into the canonical fields.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w wireProduct
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = w.toProduct(nil)
	return nil
}

// DecodeCatalog parses a JSON array of products.
// A JSON null body decodes to an empty catalog.
func DecodeCatalog(data []byte) ([]Product, DecodeStats, error) {
	var stats DecodeStats

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, stats, fmt.Errorf("empty catalog payload")
	}
	if trimmed[0] != '[' && !bytes.Equal(trimmed, []byte("null")) {
		return nil, stats, fmt.Errorf("expected JSON array, got %q", firstByte(trimmed))
	}

	var wire []wireProduct
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, stats, fmt.Errorf("unmarshal catalog payload: %w", err)
	}

	products := make([]Product, 0, len(wire))
	for i := range wire {
		products = append(products, wire[i].toProduct(&stats))
	}
	stats.Products = len(products)

	return products, stats, nil
}

func firstByte(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return string(b[:1])
}

// flexString accepts a JSON string, number or null.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or number: %w", err)
	}
	*s = flexString(n.String())
	return nil
}
