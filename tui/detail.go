package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/pb33f/glam/motor/model"
)

func (m *CatalogViewModel) toggleDetail() {
	m.detailVisible = !m.detailVisible
	m.updateTableDimensions()
	if m.detailVisible {
		m.updateDetailDimensions()
		m.updateDetailContent()
	}
}

// detailPanelWidth leaves room for a full thumbnail next to the field labels
func (m *CatalogViewModel) detailPanelWidth() int {
	thumb := m.opts.ThumbWidth + detailPanelPadding + 1
	return max(minDetailPanelWidth, thumb, int(float64(m.width)*detailPanelWidthRatio))
}

func (m *CatalogViewModel) updateDetailDimensions() {
	width := m.detailPanelWidth() - detailPanelPadding
	height := m.visibleHeight()

	if m.detailViewport.Width() == 0 {
		m.detailViewport = viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
	} else {
		m.detailViewport.SetWidth(width)
		m.detailViewport.SetHeight(height)
	}
}

func (m *CatalogViewModel) selectedProduct() *model.Product {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.products) {
		return nil
	}
	return &m.products[cursor]
}

func (m *CatalogViewModel) updateDetailContent() {
	m.detailViewport.SetContent(m.formatDetail())
	m.detailViewport.GotoTop()
}

// formatDetail renders the selected product: thumbnail when loaded, then its fields
func (m *CatalogViewModel) formatDetail() string {
	product := m.selectedProduct()
	if product == nil {
		return lipgloss.NewStyle().Faint(true).Render("No product selected")
	}

	var b strings.Builder

	switch {
	case product.ResolvedImageURL() == "" || m.loader == nil:
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("(no image)"))
	default:
		thumb, ok := m.loader.Slots().Get(m.table.Cursor())
		switch {
		case ok && thumb.Rendered != "":
			b.WriteString(thumb.Rendered)
		case ok:
			b.WriteString(StyleImageLoaded.Render(fmt.Sprintf("%s image loaded (%d bytes)", imageGlyphLoaded, len(thumb.Data))))
		default:
			// reserve the thumbnail's rows so the fields do not jump when it arrives
			b.WriteString(StyleImagePending.Render(imageGlyphPending + " loading image..."))
			b.WriteString(strings.Repeat("\n", max(0, m.opts.ThumbHeight-1)))
		}
	}
	b.WriteString("\n\n")

	if product.Name != "" {
		b.WriteString(TitleStyle.Render(product.Name))
		b.WriteString("\n\n")
	}

	for _, field := range detailFields(product) {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-10s", field[0])))
		b.WriteString(" ")
		b.WriteString(field[1])
		b.WriteString("\n")
	}

	return b.String()
}

func detailFields(product *model.Product) [][2]string {
	fields := [][2]string{
		{"Brand", formatFacet(product.Brand)},
		{"Type", formatFacet(product.ProductType)},
		{"Category", formatFacet(product.Category)},
		{"Tags", formatFacet(product.TagsDisplay())},
	}

	if product.Price != "" {
		price := product.PriceSign + product.Price
		if product.Currency != "" {
			price += " " + product.Currency
		}
		fields = append(fields, [2]string{"Price", price})
	}
	if product.Rating != nil {
		fields = append(fields, [2]string{"Rating", fmt.Sprintf("%.1f", *product.Rating)})
	}
	if product.ProductLink != "" {
		fields = append(fields, [2]string{"Link", product.ProductLink})
	}
	if url := product.ResolvedImageURL(); url != "" {
		fields = append(fields, [2]string{"Image", url})
	}
	return fields
}

func (m *CatalogViewModel) renderDetailPanel() string {
	panelStyle := lipgloss.NewStyle().
		Width(m.detailPanelWidth() - detailPanelPadding).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		BorderTop(false).BorderBottom(false).BorderRight(false).BorderLeft(true).
		PaddingLeft(1)

	return panelStyle.Render(m.detailViewport.View())
}
