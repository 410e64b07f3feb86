package motor

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb33f/glam/catgen"
	"github.com/pb33f/glam/motor/model"
)

func TestBuildFacetIndex_CategoriesByType(t *testing.T) {
	products := []model.Product{
		{Brand: "zeta", ProductType: "T1", Category: "b"},
		{Brand: "Alpha", ProductType: "T1", Category: "a"},
		{Brand: "zeta", ProductType: "T1", Category: "b"},
		{Brand: "alpha", ProductType: "T2"},
		{ProductType: ""},
	}

	idx := BuildFacetIndex(products)

	assert.Equal(t, []string{"Alpha", "alpha", "zeta"}, idx.Brands)
	assert.Equal(t, []string{"T1", "T2"}, idx.Types)
	assert.Equal(t, []string{"a", "b"}, idx.CategoriesByType["T1"])

	t2, ok := idx.CategoriesByType["T2"]
	require.True(t, ok, "a type without categories still gets an entry")
	assert.Empty(t, t2)
	assert.NotNil(t, t2)
	assert.Len(t, idx.CategoriesByType, 2)
}

func TestBuildFacetIndex_Tags(t *testing.T) {
	products := []model.Product{
		{ProductType: "lipstick", TagList: []string{"Vegan", "cruelty free"}},
		{ProductType: "lipstick", TagList: []string{"Natural", "Vegan", ""}},
		{ProductType: "blush", TagList: nil},
		{ProductType: "mascara", TagList: []string{"vegan"}},
	}

	idx := BuildFacetIndex(products)

	assert.Equal(t, []string{"Natural", "Vegan", "cruelty free"}, idx.TagsFor("lipstick"))
	assert.Equal(t, []string{}, idx.TagsFor("blush"))
	assert.Equal(t, []string{"vegan"}, idx.TagsFor("mascara"))
	assert.Equal(t, []string{}, idx.TagsFor("unknown"))
	assert.Equal(t, []string{}, idx.CategoriesFor("unknown"))
}

func TestBuildFacetIndex_Empty(t *testing.T) {
	for _, products := range [][]model.Product{nil, {}} {
		idx := BuildFacetIndex(products)
		assert.Empty(t, idx.Brands)
		assert.Empty(t, idx.Types)
		assert.Empty(t, idx.CategoriesByType)
		assert.False(t, idx.HasType("lipstick"))
	}
}

func TestBuildFacetIndex_SortedAndUniqueForAnyOrder(t *testing.T) {
	products := catgen.Generate(catgen.GenerateOptions{ProductCount: 300, Seed: 11})
	reference := BuildFacetIndex(products)

	rng := rand.New(rand.NewSource(5))
	for round := 0; round < 5; round++ {
		shuffled := slices.Clone(products)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		idx := BuildFacetIndex(shuffled)
		assert.Equal(t, reference, idx)

		assertSortedUnique(t, idx.Brands)
		assertSortedUnique(t, idx.Types)
		for _, productType := range idx.Types {
			assertSortedUnique(t, idx.CategoriesFor(productType))
			assertSortedUnique(t, idx.TagsFor(productType))
		}
	}
}

func TestFacetIndex_AccessorsReturnCopies(t *testing.T) {
	idx := BuildFacetIndex([]model.Product{{ProductType: "blush", Category: "powder"}})

	categories := idx.CategoriesFor("blush")
	categories[0] = "mutated"
	assert.Equal(t, []string{"powder"}, idx.CategoriesFor("blush"))

	var nilIndex *FacetIndex
	assert.Equal(t, []string{}, nilIndex.CategoriesFor("blush"))
	assert.False(t, nilIndex.HasType("blush"))
}

func assertSortedUnique(t *testing.T, values []string) {
	t.Helper()
	assert.True(t, slices.IsSorted(values), "not sorted: %v", values)
	assert.Len(t, slices.Compact(slices.Clone(values)), len(values), "duplicates: %v", values)
}
