package catgen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pb33f/glam/motor/model"
)

// GenerateOptions configures catalog generation
type GenerateOptions struct {
	ProductCount      int     // number of products to generate
	Seed              int64   // random seed for reproducibility (0 = use time)
	ImageBaseURL      string  // prefix for image urls, e.g. "//localhost:9876/images" (empty = no images)
	MaxTags           int     // maximum tags per product (default: 3)
	MissingBrandRatio float64 // share of products without a brand
	MissingImageRatio float64 // share of products without an image
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	ProductCount:      100,
	MaxTags:           3,
	MissingBrandRatio: 0.02,
	MissingImageRatio: 0.05,
}

// Generate creates a synthetic catalog shaped like the public makeup API
func Generate(opts GenerateOptions) []model.Product {
	if opts.MaxTags == 0 {
		opts.MaxTags = DefaultGenerateOptions.MaxTags
	}

	// create local rng (avoid mutating global rand)
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	products := make([]model.Product, 0, opts.ProductCount)
	for i := 0; i < opts.ProductCount; i++ {
		products = append(products, generateProduct(i+1, opts, rng))
	}
	return products
}

func generateProduct(id int, opts GenerateOptions, rng *rand.Rand) model.Product {
	productType := pick(productTypes, rng)
	currency := currencies[rng.Intn(len(currencies))]

	p := model.Product{
		ID:          id,
		Brand:       pick(brands, rng),
		Name:        pick(nameAdjectives, rng) + " " + pick(nameNouns[productType], rng),
		Price:       fmt.Sprintf("%.1f", 3+rng.Float64()*40),
		PriceSign:   currency.sign,
		Currency:    currency.code,
		ProductType: productType,
		Category:    pick(categoriesByType[productType], rng),
		TagList:     pickTags(rng, opts.MaxTags),
	}

	if rng.Float64() < opts.MissingBrandRatio {
		p.Brand = ""
	}

	if p.Brand != "" {
		p.ProductLink = fmt.Sprintf("https://example.com/%s/%d", slug(p.Brand), id)
	}

	if opts.ImageBaseURL != "" && rng.Float64() >= opts.MissingImageRatio {
		p.ImageURL = fmt.Sprintf("%s/%d.png", strings.TrimRight(opts.ImageBaseURL, "/"), id)
	}

	if rng.Intn(3) > 0 {
		rating := float64(rng.Intn(41)+10) / 10
		p.Rating = &rating
	}

	return p
}

func slug(s string) string {
	replacer := strings.NewReplacer(" ", "-", "'", "", ".", "")
	return replacer.Replace(strings.ToLower(s))
}

// GenerateToFile generates a catalog and writes it to a specific file path
func GenerateToFile(path string, opts GenerateOptions) ([]model.Product, error) {
	products := Generate(opts)

	// ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(products); err != nil {
		return nil, fmt.Errorf("failed to write catalog: %w", err)
	}

	return products, nil
}

// LoadCatalogFile reads a catalog JSON array from disk, normalising variant keys
func LoadCatalogFile(path string) ([]model.Product, model.DecodeStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.DecodeStats{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	products, stats, err := model.DecodeCatalog(data)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return products, stats, nil
}
