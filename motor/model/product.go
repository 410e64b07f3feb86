package model

import (
	"strings"
)

// Product describes a single cosmetics product as published by the catalog API.
type Product struct {
	// ID is the catalog identifier, zero when the source did not supply one.
	ID int `json:"id,omitempty"`

	// Brand name, e.g. "maybelline". Optional.
	Brand string `json:"brand,omitempty"`

	// Name is the display name of the product.
	Name string `json:"name,omitempty"`

	// Price as published, kept as text because the API mixes strings and numbers.
	Price string `json:"price,omitempty"`

	// PriceSign is the currency symbol, e.g. "$".
	PriceSign string `json:"price_sign,omitempty"`

	// Currency is the ISO currency code, e.g. "USD".
	Currency string `json:"currency,omitempty"`

	// ProductType is the top level facet, e.g. "lipstick". Optional.
	ProductType string `json:"product_type,omitempty"`

	// Category refines ProductType, e.g. "lip_gloss". Optional.
	Category string `json:"category,omitempty"`

	// TagList holds free form tags such as "Vegan". May be nil.
	TagList []string `json:"tag_list,omitempty"`

	// ImageURL is the product image, possibly protocol-relative ("//host/path").
	ImageURL string `json:"api_featured_image,omitempty"`

	// ProductLink points to the vendor product page.
	ProductLink string `json:"product_link,omitempty"`

	// Rating is the average rating, nil when unrated.
	Rating *float64 `json:"rating,omitempty"`
}

// TagsDisplay joins the tag list with ", ", or returns an empty string when there are no tags.
func (p *Product) TagsDisplay() string {
	if len(p.TagList) == 0 {
		return ""
	}
	return strings.Join(p.TagList, ", ")
}

// HasTag reports whether the tag list contains tag exactly (case-sensitive).
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.TagList {
		if t == tag {
			return true
		}
	}
	return false
}

// ResolvedImageURL returns the image URL ready to be fetched.
func (p *Product) ResolvedImageURL() string {
	return NormalizeImageURL(p.ImageURL)
}

// NormalizeImageURL rewrites protocol-relative URLs ("//host/path") to https.
// Blank input yields an empty string.
func NormalizeImageURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
