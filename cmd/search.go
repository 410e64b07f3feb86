package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pb33f/glam/motor"
	"github.com/pb33f/glam/motor/model"
	"github.com/pb33f/glam/tui"
)

var (
	searchBrand    string
	searchType     string
	searchCategory string
	searchTag      string
	searchJSON     bool
	searchLimit    int
	searchColors   int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter the catalog without the terminal UI",
	Long: `Load the catalog, apply the brand, type, category and tag filters and print
the matching products. Brand and type are resolved by the remote API, category
and tag are applied locally with exact, case-sensitive matching.`,
	Args: cobra.NoArgs,
	Example: `  glam search --brand maybelline
  glam search --type lipstick --category lip_gloss --tag Vegan
  glam search --type blush --json
  glam search --brand nyx --colors 5`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchBrand, "brand", "", "Brand to match exactly")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Product type to match exactly")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Category to match exactly")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Tag the product must carry")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print matches as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "Print at most this many rows (0 = all)")
	searchCmd.Flags().IntVar(&searchColors, "colors", 0, "Fetch images for the first N rows and show their average colour")
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	ctx := cmd.Context()

	session := motor.NewSession(newCatalogClient(logger), logger)

	sel := motor.Selection{
		Brand:       searchBrand,
		ProductType: searchType,
		Category:    searchCategory,
		Tag:         searchTag,
	}

	// local-only filters need the full catalog, remote ones do not
	if !sel.IsRemote() {
		if _, err := session.Load(ctx); err != nil {
			return err
		}
	}

	result, err := session.Search(ctx, sel)
	if err != nil {
		return err
	}

	products := result.Products
	if searchLimit > 0 && len(products) > searchLimit {
		products = products[:searchLimit]
	}

	logger.Debug("search finished",
		"selection", sel.String(),
		"matches", len(result.Products),
		"duration", result.Duration)

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}

	colors := averageColors(cmd, session.Client(), products, searchColors)
	fmt.Println(renderProductTable(products, colors))
	fmt.Printf("Products found: %d (%s)\n", len(result.Products), sel.String())
	return nil
}

// averageColors fetches images for the first n products, one after another
func averageColors(cmd *cobra.Command, client motor.CatalogClient, products []model.Product, n int) map[int]string {
	colors := make(map[int]string)
	if n <= 0 || len(products) == 0 {
		return colors
	}

	loader := motor.NewImageLoader(client, motor.ImageLoaderOptions{Logger: GetLogger()})
	rows := lo.Times(min(n, len(products)), func(i int) motor.RowVisibility {
		return motor.RowVisibility{Index: i, Visible: true}
	})

	loader.LoadVisible(cmd.Context(), len(products), rows,
		func(index int) string { return products[index].ImageURL },
		func(index int, data []byte) {
			if c, err := motor.AverageColor(data); err == nil {
				colors[index] = c
			}
		})

	return colors
}

func renderProductTable(products []model.Product, colors map[int]string) string {
	withColors := len(colors) > 0

	headers := []string{"ID", "Brand", "Type", "Category", "Tags", "Price"}
	if withColors {
		headers = append(headers, "Colour")
	}

	rows := lo.Map(products, func(p model.Product, i int) []string {
		row := []string{
			strconv.Itoa(p.ID),
			formatCell(p.Brand),
			formatCell(p.ProductType),
			formatCell(p.Category),
			p.TagsDisplay(),
			p.PriceSign + p.Price,
		}
		if withColors {
			row = append(row, swatch(colors[i]))
		}
		return row
	})

	headerStyle := lipgloss.NewStyle().Foreground(tui.RGBPink).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.RGBBlue)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

func formatCell(value string) string {
	if value == "" {
		return "---"
	}
	return value
}

func swatch(hex string) string {
	if hex == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██") + " " + hex
}
