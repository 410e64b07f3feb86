package tui

import (
	"github.com/charmbracelet/bubbles/v2/table"

	"github.com/pb33f/glam/motor"
	"github.com/pb33f/glam/motor/model"
)

func (m *CatalogViewModel) buildTableRows() {
	var slots motor.ThumbnailSlots
	if m.loader != nil {
		slots = m.loader.Slots()
	}

	rows := make([]table.Row, 0, len(m.products))
	for i := range m.products {
		loaded := false
		if slots != nil {
			_, loaded = slots.Get(i)
		}
		rows = append(rows, formatProductRow(&m.products[i], loaded))
	}

	m.rows = rows
}

func formatProductRow(product *model.Product, loaded bool) table.Row {
	return table.Row{
		formatImageCell(product, loaded),
		formatFacet(product.Brand),
		formatFacet(product.ProductType),
		formatFacet(product.Category),
		product.TagsDisplay(),
	}
}

func formatImageCell(product *model.Product, loaded bool) string {
	switch {
	case product.ResolvedImageURL() == "":
		return imageGlyphNone
	case loaded:
		return imageGlyphLoaded
	default:
		return imageGlyphPending
	}
}

func formatFacet(value string) string {
	if value == "" {
		return "---"
	}
	return value
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
