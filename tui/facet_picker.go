package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/pb33f/glam/motor"
)

type pickerField int

const (
	fieldBrand pickerField = iota
	fieldType
	fieldCategory
	fieldTag
	fieldCount
)

var pickerLabels = [fieldCount]string{"Brand", "Type", "Category", "Tag"}

// the first entry of every picker, meaning "no constraint"
var pickerAllLabels = [fieldCount]string{"All brands", "All types", "All categories", "All tags"}

// facetPicker holds the four dropdowns. selected[f] == 0 is the "all" entry,
// otherwise options[f][selected[f]-1] is chosen.
type facetPicker struct {
	facets   *motor.FacetIndex
	options  [fieldCount][]string
	selected [fieldCount]int
	cursor   pickerField
}

func newFacetPicker() facetPicker {
	return facetPicker{}
}

// reset repopulates every picker from a freshly built index. Category and tag
// stay empty until a type is chosen.
func (p *facetPicker) reset(facets *motor.FacetIndex) {
	p.facets = facets
	p.options = [fieldCount][]string{}
	if facets != nil {
		p.options[fieldBrand] = facets.Brands
		p.options[fieldType] = facets.Types
	}
	p.selected = [fieldCount]int{}
	p.cursor = fieldBrand
}

// clear moves every picker back to its "all" entry
func (p *facetPicker) clear() {
	p.selected[fieldBrand] = 0
	p.selected[fieldType] = 0
	p.onTypeChanged()
}

// onTypeChanged repopulates category and tag from the index and resets both.
func (p *facetPicker) onTypeChanged() {
	productType := p.value(fieldType)
	if productType == "" {
		p.options[fieldCategory] = nil
		p.options[fieldTag] = nil
	} else {
		p.options[fieldCategory] = p.facets.CategoriesFor(productType)
		p.options[fieldTag] = p.facets.TagsFor(productType)
	}
	p.selected[fieldCategory] = 0
	p.selected[fieldTag] = 0
}

func (p *facetPicker) value(field pickerField) string {
	idx := p.selected[field]
	if idx <= 0 || idx > len(p.options[field]) {
		return ""
	}
	return p.options[field][idx-1]
}

func (p *facetPicker) display(field pickerField) string {
	if v := p.value(field); v != "" {
		return v
	}
	return pickerAllLabels[field]
}

// step moves the focused picker by delta entries, wrapping around the "all" entry.
func (p *facetPicker) step(delta int) {
	field := p.cursor
	count := len(p.options[field]) + 1
	p.selected[field] = ((p.selected[field]+delta)%count + count) % count
	if field == fieldType {
		p.onTypeChanged()
	}
}

func (p *facetPicker) selectAll() {
	p.selected[p.cursor] = 0
	if p.cursor == fieldType {
		p.onTypeChanged()
	}
}

func (p *facetPicker) moveCursor(delta int) {
	p.cursor = pickerField((int(p.cursor) + delta + int(fieldCount)) % int(fieldCount))
}

// selection converts the picker state into a filter selection
func (p *facetPicker) selection() motor.Selection {
	return motor.Selection{
		Brand:       p.value(fieldBrand),
		ProductType: p.value(fieldType),
		Category:    p.value(fieldCategory),
		Tag:         p.value(fieldTag),
	}
}

func (m *CatalogViewModel) renderPickerModal() string {
	modalStyle := lipgloss.NewStyle().
		Width(pickerModalWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue).
		Padding(1)

	highlightStyle := lipgloss.NewStyle().
		Background(RGBSubtlePink).
		Foreground(RGBPink).
		Bold(true)

	var content strings.Builder

	content.WriteString(LabelStyle.Render("Filter Products"))
	content.WriteString("\n\n")

	valueWidth := pickerModalWidth - 20
	for f := fieldBrand; f < fieldCount; f++ {
		cursor := " "
		if m.picker.cursor == f {
			cursor = ">"
		}

		position := fmt.Sprintf("%d/%d", m.picker.selected[f], len(m.picker.options[f]))
		line := fmt.Sprintf("%s %-9s ‹ %-*s › %s", cursor, pickerLabels[f]+":", valueWidth,
			truncateString(m.picker.display(f), valueWidth), position)

		if m.picker.cursor == f {
			line = highlightStyle.Render(line)
		}

		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(HelpStyle.Render("↑/↓: Field | ←/→: Change | Home: All\nEnter: Search | c: Clear | Esc: Close"))

	return modalStyle.Render(content.String())
}

func (m *CatalogViewModel) handlePickerKeys(key string) (bool, tea.Cmd) {
	if m.activeModal != ModalFilter {
		return false, nil
	}

	switch key {
	case "esc", "f":
		m.activeModal = ModalNone
		return true, nil

	case "up", "shift+tab":
		m.picker.moveCursor(-1)
		return true, nil

	case "down", "tab":
		m.picker.moveCursor(1)
		return true, nil

	case "left":
		m.picker.step(-1)
		return true, nil

	case "right", " ", "space":
		m.picker.step(1)
		return true, nil

	case "home":
		m.picker.selectAll()
		return true, nil

	case "c":
		return true, m.clearResults()

	case "enter", "s":
		m.activeModal = ModalNone
		return true, m.startSearch(m.picker.selection())
	}

	return true, nil
}
