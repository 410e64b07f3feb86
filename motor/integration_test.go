package motor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// integration test to exercise the full pipeline against the mock catalog API
func TestFullPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, products, cleanup := newCatalogServer(200, 42)
	defer cleanup()

	session := NewSession(client, nil)
	ctx := context.Background()

	loaded, err := session.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Snapshot.Catalog, len(products))
	assert.Equal(t, BuildFacetIndex(products), loaded.Snapshot.Facets)

	snap := session.Snapshot()
	require.NotEmpty(t, snap.Facets.Brands)
	require.NotEmpty(t, snap.Facets.Types)

	// brand is resolved server-side, category locally
	brand := snap.Facets.Brands[0]
	byBrand, err := session.Search(ctx, Selection{Brand: brand})
	require.NoError(t, err)
	require.NotEmpty(t, byBrand.Products)
	for _, p := range byBrand.Products {
		assert.Equal(t, brand, p.Brand)
	}

	productType := "foundation"
	categories := snap.Facets.CategoriesFor(productType)
	if len(categories) > 0 {
		sel := Selection{ProductType: productType, Category: categories[0]}
		result, err := session.Search(ctx, sel)
		require.NoError(t, err)
		require.NotEmpty(t, result.Products)
		for _, p := range result.Products {
			assert.Equal(t, productType, p.ProductType)
			assert.Equal(t, categories[0], p.Category)
		}
	}

	// thumbnails for the first visible rows
	loader := NewImageLoader(client, ImageLoaderOptions{Renderer: RenderThumbnailFunc(6, 3)})
	rows := make([]RowVisibility, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, RowVisibility{Index: i, Visible: true})
	}

	expected := 0
	for i := 0; i < min(10, len(byBrand.Products)); i++ {
		if byBrand.Products[i].ImageURL != "" {
			expected++
		}
	}

	assigned := loader.LoadVisible(ctx, len(byBrand.Products), rows,
		func(index int) string { return byBrand.Products[index].ImageURL },
		nil)
	assert.Equal(t, expected, assigned)
	assert.Equal(t, expected, loader.Slots().Size())

	t.Logf("catalog: %d products, %d brands, %d types, %d thumbnails",
		len(snap.Catalog), len(snap.Facets.Brands), len(snap.Facets.Types), assigned)
}
