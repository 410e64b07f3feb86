package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/tree"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pb33f/glam/motor"
	"github.com/pb33f/glam/tui"
)

var (
	facetsType string
	facetsJSON bool
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Print the brands, types, categories and tags of the catalog",
	Long: `Load the full catalog and print the values offered by each filter.
Categories and tags are grouped by product type, exactly as the terminal UI
offers them once a type is chosen.`,
	Args: cobra.NoArgs,
	Example: `  glam facets
  glam facets --type lipstick
  glam facets --json`,
	RunE: runFacets,
}

func init() {
	rootCmd.AddCommand(facetsCmd)

	facetsCmd.Flags().StringVar(&facetsType, "type", "", "Only show categories and tags for this product type")
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "Print the facet index as JSON")
}

func runFacets(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	session := motor.NewSession(newCatalogClient(logger), logger)
	result, err := session.Load(cmd.Context())
	if err != nil {
		return err
	}

	facets := result.Snapshot.Facets
	if facetsType != "" && !facets.HasType(facetsType) {
		return fmt.Errorf("unknown product type %q, known types: %s", facetsType, strings.Join(facets.Types, ", "))
	}

	if facetsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(facets)
	}

	fmt.Println(renderFacetTree(facets, facetsType))
	fmt.Printf("%d products, %d brands, %d types\n", len(result.Snapshot.Catalog), len(facets.Brands), len(facets.Types))
	return nil
}

func renderFacetTree(facets *motor.FacetIndex, onlyType string) string {
	rootStyle := lipgloss.NewStyle().Foreground(tui.RGBPink).Bold(true)
	branchStyle := lipgloss.NewStyle().Foreground(tui.RGBBlue).Bold(true)

	t := tree.Root(rootStyle.Render("catalog"))

	if onlyType == "" {
		t.Child(tree.Root(branchStyle.Render("brands")).Child(lo.ToAnySlice(facets.Brands)...))
	}

	types := tree.Root(branchStyle.Render("types"))
	for _, productType := range facets.Types {
		if onlyType != "" && productType != onlyType {
			continue
		}
		types.Child(tree.Root(productType).Child(
			tree.Root("categories").Child(lo.ToAnySlice(facets.CategoriesFor(productType))...),
			tree.Root("tags").Child(lo.ToAnySlice(facets.TagsFor(productType))...),
		))
	}
	t.Child(types)

	return t.String()
}
