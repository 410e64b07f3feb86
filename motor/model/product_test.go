package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"protocol relative", "//img.cdn/x.png", "https://img.cdn/x.png"},
		{"already https", "https://img.cdn/x.png", "https://img.cdn/x.png"},
		{"plain http kept", "http://img.cdn/x.png", "http://img.cdn/x.png"},
		{"surrounding whitespace", "  //img.cdn/x.png ", "https://img.cdn/x.png"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeImageURL(tt.raw))
		})
	}
}

func TestProduct_TagsDisplay(t *testing.T) {
	p := Product{TagList: []string{"Vegan", "Natural"}}
	assert.Equal(t, "Vegan, Natural", p.TagsDisplay())

	empty := Product{}
	assert.Equal(t, "", empty.TagsDisplay())

	none := Product{TagList: []string{}}
	assert.Equal(t, "", none.TagsDisplay())
}

func TestProduct_HasTag(t *testing.T) {
	p := Product{TagList: []string{"Vegan", "Gluten Free"}}

	assert.True(t, p.HasTag("Vegan"))
	assert.False(t, p.HasTag("vegan"), "tag match is case-sensitive")
	assert.False(t, p.HasTag("Gluten"))

	var untagged Product
	assert.False(t, untagged.HasTag("Vegan"))
}

func TestDecodeCatalog_CanonicalKeys(t *testing.T) {
	payload := `[
		{
			"id": 1048,
			"brand": "colourpop",
			"name": "Lippie Pencil",
			"price": "5.0",
			"price_sign": "$",
			"currency": "CAD",
			"product_type": "lip_liner",
			"category": "pencil",
			"tag_list": ["cruelty free", "Vegan"],
			"api_featured_image": "//s3.amazonaws.com/donovanbailey/products/api_featured_images/000/001/048/original/open-uri20180708-4-13okqci.jpg",
			"image_link": "https://cdn.shopify.com/s/files/1/1338/0845/collections/lippie-pencil_grande.jpg",
			"rating": null
		},
		{
			"id": 1047,
			"brand": null,
			"price": 7.5,
			"product_type": "blush",
			"category": null,
			"tag_list": null,
			"rating": 4.5
		}
	]`

	products, stats, err := DecodeCatalog([]byte(payload))
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, 1048, first.ID)
	assert.Equal(t, "colourpop", first.Brand)
	assert.Equal(t, "5.0", first.Price)
	assert.Equal(t, "pencil", first.Category)
	assert.Equal(t, []string{"cruelty free", "Vegan"}, first.TagList)
	assert.Equal(t, "//s3.amazonaws.com/donovanbailey/products/api_featured_images/000/001/048/original/open-uri20180708-4-13okqci.jpg", first.ImageURL)
	assert.Nil(t, first.Rating)

	second := products[1]
	assert.Equal(t, "", second.Brand)
	assert.Equal(t, "7.5", second.Price)
	assert.Equal(t, "", second.Category)
	assert.Nil(t, second.TagList)
	require.NotNil(t, second.Rating)
	assert.InDelta(t, 4.5, *second.Rating, 0.0001)

	assert.Equal(t, 2, stats.Products)
	assert.False(t, stats.Normalized())
}

func TestDecodeCatalog_VariantKeysAreNormalized(t *testing.T) {
	payload := `[
		{"brand": "nyx", "product_type": "lipstick", "product_category": "lip_gloss", "image_link": "https://img.cdn/a.png"},
		{"brand": "nyx", "product_type": "lipstick", "category": "lipstick", "product_category": "ignored", "api_featured_image": "//img.cdn/b.png", "image_link": "https://img.cdn/ignored.png"}
	]`

	products, stats, err := DecodeCatalog([]byte(payload))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "lip_gloss", products[0].Category)
	assert.Equal(t, "https://img.cdn/a.png", products[0].ImageURL)

	// canonical keys always win
	assert.Equal(t, "lipstick", products[1].Category)
	assert.Equal(t, "//img.cdn/b.png", products[1].ImageURL)

	assert.Equal(t, 1, stats.CategoryNormalized)
	assert.Equal(t, 1, stats.ImageNormalized)
	assert.True(t, stats.Normalized())
}

func TestDecodeCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty body", ""},
		{"object instead of array", `{"brand": "nyx"}`},
		{"truncated array", `[{"brand": "nyx"`},
		{"bad price", `[{"price": true}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeCatalog([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestDecodeCatalog_NullIsEmpty(t *testing.T) {
	products, stats, err := DecodeCatalog([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, 0, stats.Products)
}

func TestProduct_JSONRoundTripUsesCanonicalKeys(t *testing.T) {
	p := Product{
		Brand:       "nyx",
		ProductType: "lipstick",
		Category:    "lip_gloss",
		ImageURL:    "//img.cdn/x.png",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"category":"lip_gloss"`)
	assert.Contains(t, string(data), `"api_featured_image":"//img.cdn/x.png"`)

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}
