package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pb33f/glam/catgen"
	"github.com/pb33f/glam/motor"
	"github.com/pb33f/glam/motor/model"
)

var (
	genProductCount int
	genOutputFile   string
	genSeed         int64
	genImageBase    string
	genMaxTags      int
	genShowSummary  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic makeup catalog",
	Long: `Generate a catalog JSON file shaped like the public makeup API, for
offline testing with 'glam serve'. Image links are only written when an
image base url is given.

Examples:
  glam generate -n 100 -o catalog.json
  glam generate -n 1000 --seed 42 --image-base http://localhost:9876/images
  glam generate --products 10 --summary`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genProductCount, "products", "n", catgen.DefaultGenerateOptions.ProductCount, "Number of products to generate")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: catalog-{timestamp}.json)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVar(&genImageBase, "image-base", "", "Prefix for image links, e.g. http://localhost:9876/images")
	generateCmd.Flags().IntVar(&genMaxTags, "max-tags", catgen.DefaultGenerateOptions.MaxTags, "Maximum tags per product")
	generateCmd.Flags().BoolVar(&genShowSummary, "summary", true, "Show a facet summary after generation")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genProductCount <= 0 {
		return fmt.Errorf("products must be positive, got %d", genProductCount)
	}

	opts := catgen.DefaultGenerateOptions
	opts.ProductCount = genProductCount
	opts.Seed = genSeed
	opts.ImageBaseURL = genImageBase
	opts.MaxTags = genMaxTags

	output := genOutputFile
	if output == "" {
		output = fmt.Sprintf("catalog-%s.json", time.Now().Format("20060102-150405"))
	}

	fmt.Printf("Generating catalog with %d products...\n", genProductCount)

	products, err := catgen.GenerateToFile(output, opts)
	if err != nil {
		return fmt.Errorf("failed to generate catalog: %w", err)
	}

	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	fmt.Printf("\n✓ Generated catalog: %s\n", abs)
	fmt.Printf("  Total products: %d\n", len(products))

	if genShowSummary {
		facets := motor.BuildFacetIndex(products)
		withImages := lo.CountBy(products, func(p model.Product) bool { return p.ImageURL != "" })

		fmt.Printf("  Brands: %d\n", len(facets.Brands))
		fmt.Printf("  Types:  %d\n", len(facets.Types))
		fmt.Printf("  With images: %d\n", withImages)
		for _, productType := range facets.Types {
			fmt.Printf("  • %s: %d categories, %d tags\n", productType,
				len(facets.CategoriesFor(productType)), len(facets.TagsFor(productType)))
		}
	}

	return nil
}
