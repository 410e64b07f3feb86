package catgen

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb33f/glam/motor/model"
)

func TestGenerate_Deterministic(t *testing.T) {
	opts := GenerateOptions{ProductCount: 50, Seed: 42, ImageBaseURL: "//localhost/images"}

	first := Generate(opts)
	second := Generate(opts)

	require.Len(t, first, 50)
	assert.Equal(t, first, second)
}

func TestGenerate_ShapesProducts(t *testing.T) {
	products := Generate(GenerateOptions{ProductCount: 200, Seed: 7, ImageBaseURL: "//localhost/images"})

	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
		assert.Contains(t, productTypes, p.ProductType)

		// categories always belong to the product type
		if p.Category != "" {
			assert.Contains(t, categoriesByType[p.ProductType], p.Category)
		}
		if p.ImageURL != "" {
			assert.Regexp(t, `^//localhost/images/\d+\.png$`, p.ImageURL)
		}
		assert.LessOrEqual(t, len(p.TagList), DefaultGenerateOptions.MaxTags)
	}
}

func TestGenerate_NoImageBase(t *testing.T) {
	products := Generate(GenerateOptions{ProductCount: 20, Seed: 1})
	for _, p := range products {
		assert.Empty(t, p.ImageURL)
	}
}

func TestGenerateToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")

	written, err := GenerateToFile(path, GenerateOptions{ProductCount: 25, Seed: 3})
	require.NoError(t, err)

	loaded, stats, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 25, stats.Products)
	assert.False(t, stats.Normalized())
	assert.Equal(t, written, loaded)
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	_, _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"an array"}`), 0644))
	_, _, err = LoadCatalogFile(bad)
	assert.Error(t, err)
}

func TestSwatchPNG(t *testing.T) {
	data, err := SwatchPNG(3, 16)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	again, err := SwatchPNG(3, 16)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	_, err = SwatchPNG(3, 0)
	assert.Error(t, err)
}

func fixtureProducts() []model.Product {
	return []model.Product{
		{ID: 1, Brand: "nyx", ProductType: "lipstick", Category: "lipstick"},
		{ID: 2, Brand: "nyx", ProductType: "blush", Category: "powder"},
		{ID: 3, Brand: "nyx cosmetics", ProductType: "lipstick"},
		{ID: 4, Brand: "maybelline", ProductType: "lipstick", Category: "lip_gloss"},
	}
}

func getProducts(t *testing.T, server *httptest.Server, query string) []model.Product {
	t.Helper()
	resp, err := http.Get(server.URL + CatalogPath + query)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var products []model.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	return products
}

func TestHandler_FiltersExactly(t *testing.T) {
	server := httptest.NewServer(NewHandler(fixtureProducts(), nil))
	defer server.Close()

	assert.Len(t, getProducts(t, server, ""), 4)

	byBrand := getProducts(t, server, "?brand=nyx")
	require.Len(t, byBrand, 2)
	assert.Equal(t, 1, byBrand[0].ID)
	assert.Equal(t, 2, byBrand[1].ID)

	both := getProducts(t, server, "?brand=nyx&product_type=lipstick")
	require.Len(t, both, 1)
	assert.Equal(t, 1, both[0].ID)

	spaced := getProducts(t, server, "?brand=nyx%20cosmetics")
	require.Len(t, spaced, 1)
	assert.Equal(t, 3, spaced[0].ID)

	none := getProducts(t, server, "?brand=unknown")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestHandler_Images(t *testing.T) {
	server := httptest.NewServer(NewHandler(nil, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/images/12.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	notFound, err := http.Get(server.URL + "/images/nope.jpg")
	require.NoError(t, err)
	notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
}
