package motor

import (
	"slices"

	"github.com/samber/lo"

	"github.com/pb33f/glam/motor/model"
)

// FacetIndex holds the values offered by each picker. It is rebuilt from scratch
// for every catalog load and never patched incrementally.
type FacetIndex struct {
	Brands           []string
	Types            []string
	CategoriesByType map[string][]string
	TagsByType       map[string][]string
}

// BuildFacetIndex derives sorted unique brands and types, plus per-type sorted
// unique categories and tags. Ordering is ordinal (byte-wise, case-sensitive),
// so the output does not depend on input order.
func BuildFacetIndex(products []model.Product) *FacetIndex {
	brands := lo.Uniq(lo.FilterMap(products, func(p model.Product, _ int) (string, bool) {
		return p.Brand, p.Brand != ""
	}))
	slices.Sort(brands)

	types := lo.Uniq(lo.FilterMap(products, func(p model.Product, _ int) (string, bool) {
		return p.ProductType, p.ProductType != ""
	}))
	slices.Sort(types)

	idx := &FacetIndex{
		Brands:           brands,
		Types:            types,
		CategoriesByType: make(map[string][]string, len(types)),
		TagsByType:       make(map[string][]string, len(types)),
	}

	seenCategory := make(map[string]map[string]struct{}, len(types))
	seenTag := make(map[string]map[string]struct{}, len(types))

	for i := range products {
		p := &products[i]
		if p.ProductType == "" {
			continue
		}

		if _, ok := idx.CategoriesByType[p.ProductType]; !ok {
			idx.CategoriesByType[p.ProductType] = []string{}
			idx.TagsByType[p.ProductType] = []string{}
			seenCategory[p.ProductType] = make(map[string]struct{})
			seenTag[p.ProductType] = make(map[string]struct{})
		}

		if p.Category != "" {
			if _, dup := seenCategory[p.ProductType][p.Category]; !dup {
				seenCategory[p.ProductType][p.Category] = struct{}{}
				idx.CategoriesByType[p.ProductType] = append(idx.CategoriesByType[p.ProductType], p.Category)
			}
		}

		for _, tag := range p.TagList {
			if tag == "" {
				continue
			}
			if _, dup := seenTag[p.ProductType][tag]; !dup {
				seenTag[p.ProductType][tag] = struct{}{}
				idx.TagsByType[p.ProductType] = append(idx.TagsByType[p.ProductType], tag)
			}
		}
	}

	for _, categories := range idx.CategoriesByType {
		slices.Sort(categories)
	}
	for _, tags := range idx.TagsByType {
		slices.Sort(tags)
	}

	return idx
}

// CategoriesFor returns the categories seen for productType, never nil.
func (f *FacetIndex) CategoriesFor(productType string) []string {
	if f == nil {
		return []string{}
	}
	if categories, ok := f.CategoriesByType[productType]; ok {
		return slices.Clone(categories)
	}
	return []string{}
}

// TagsFor returns the tags seen for productType, never nil.
func (f *FacetIndex) TagsFor(productType string) []string {
	if f == nil {
		return []string{}
	}
	if tags, ok := f.TagsByType[productType]; ok {
		return slices.Clone(tags)
	}
	return []string{}
}

// HasType reports whether productType was seen with at least one product.
func (f *FacetIndex) HasType(productType string) bool {
	if f == nil {
		return false
	}
	_, ok := f.CategoriesByType[productType]
	return ok
}
