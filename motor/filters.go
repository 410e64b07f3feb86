package motor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pb33f/glam/motor/model"
)

// Selection is the state of the four pickers. An empty string means "no constraint".
type Selection struct {
	Brand       string
	ProductType string
	Category    string
	Tag         string
}

// IsRemote reports whether the remote API must be queried, brand and type are filtered server-side.
func (s Selection) IsRemote() bool {
	return s.Brand != "" || s.ProductType != ""
}

// IsEmpty reports whether no picker constrains the results.
func (s Selection) IsEmpty() bool {
	return s == Selection{}
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return "all products"
	}

	var parts []string
	if s.Brand != "" {
		parts = append(parts, "brand="+s.Brand)
	}
	if s.ProductType != "" {
		parts = append(parts, "type="+s.ProductType)
	}
	if s.Category != "" {
		parts = append(parts, "category="+s.Category)
	}
	if s.Tag != "" {
		parts = append(parts, "tag="+s.Tag)
	}
	return strings.Join(parts, " ")
}

// ProductFilter defines a local predicate that can show/hide products
type ProductFilter interface {
	ShouldShow(product *model.Product) bool
	IsActive() bool
}

// CategoryFilter keeps products whose category equals Category exactly.
// Products without a category never match an active filter.
type CategoryFilter struct {
	Category string
}

func (f CategoryFilter) ShouldShow(product *model.Product) bool {
	return product.Category == f.Category
}

func (f CategoryFilter) IsActive() bool {
	return f.Category != ""
}

// TagFilter keeps products whose tag list contains Tag exactly
type TagFilter struct {
	Tag string
}

func (f TagFilter) ShouldShow(product *model.Product) bool {
	return product.TagList != nil && product.HasTag(f.Tag)
}

func (f TagFilter) IsActive() bool {
	return f.Tag != ""
}

// FilterChain combines multiple filters, a product must pass all of them
type FilterChain struct {
	filters []ProductFilter
}

// NewFilterChain creates a new filter chain
func NewFilterChain() *FilterChain {
	return &FilterChain{
		filters: make([]ProductFilter, 0, 2),
	}
}

// Add appends a filter, inactive filters are ignored
func (fc *FilterChain) Add(filter ProductFilter) {
	if filter != nil && filter.IsActive() {
		fc.filters = append(fc.filters, filter)
	}
}

// Clear removes all filters
func (fc *FilterChain) Clear() {
	fc.filters = fc.filters[:0]
}

// HasActiveFilters returns true if any filters are active
func (fc *FilterChain) HasActiveFilters() bool {
	return len(fc.filters) > 0
}

// Apply returns a new slice with the products passing every filter, in input order.
// The input slice is never modified.
func (fc *FilterChain) Apply(products []model.Product) []model.Product {
	if !fc.HasActiveFilters() {
		return products
	}

	filtered := make([]model.Product, 0, len(products))
	for i := range products {
		passesAll := true
		for _, filter := range fc.filters {
			if !filter.ShouldShow(&products[i]) {
				passesAll = false
				break
			}
		}
		if passesAll {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}

// RemoteFetch performs a server-side brand/type query.
type RemoteFetch func(ctx context.Context, brand, productType string) ([]model.Product, error)

// Filter resolves a selection into results. Brand and type constraints are delegated
// to fetch; otherwise a copy of full is used. Category then tag predicates are applied
// locally. full is never modified, and fetch errors are returned to the caller.
func Filter(ctx context.Context, sel Selection, full []model.Product, fetch RemoteFetch) ([]model.Product, error) {
	var candidates []model.Product

	if sel.IsRemote() {
		if fetch == nil {
			return nil, fmt.Errorf("selection %q needs a remote fetch", sel)
		}
		fetched, err := fetch(ctx, sel.Brand, sel.ProductType)
		if err != nil {
			return nil, fmt.Errorf("fetch products for %s: %w", sel, err)
		}
		candidates = fetched
	} else {
		candidates = slices.Clone(full)
	}

	if candidates == nil {
		candidates = []model.Product{}
	}

	chain := NewFilterChain()
	chain.Add(CategoryFilter{Category: sel.Category})
	chain.Add(TagFilter{Tag: sel.Tag})

	return chain.Apply(candidates), nil
}
