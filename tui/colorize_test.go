package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/stretchr/testify/assert"
)

func testColumns() []table.Column {
	return []table.Column{
		{Title: "Image", Width: imageColumnWidth},
		{Title: "Brand", Width: 14},
		{Title: "Type", Width: typeColumnWidth},
		{Title: "Category", Width: categoryColumnWidth},
		{Title: "Tags", Width: 20},
	}
}

func TestTableStructure(t *testing.T) {
	rows := []table.Row{
		{imageGlyphLoaded, "nyx", "lipstick", "lipstick", "Vegan"},
		{imageGlyphPending, "dior", "blush", "powder", ""},
		{imageGlyphNone, "---", "mascara", "---", "Natural, Vegan"},
	}

	tbl := table.New(
		table.WithColumns(testColumns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(80),
	)
	tbl = ApplyTableStyles(tbl)

	// Test with different cursor positions
	for cursor := 0; cursor < len(rows); cursor++ {
		tbl.SetCursor(cursor)
		output := tbl.View()

		t.Logf("\n========== CURSOR AT POSITION %d (Row: %v) ==========\n", cursor, rows[cursor])
		for i, line := range strings.Split(output, "\n") {
			t.Logf("Line %2d: %q", i, line)
		}

		colorized := ColorizeCatalogTableOutput(output, cursor, rows)
		assert.Equal(t, len(strings.Split(output, "\n")), len(strings.Split(colorized, "\n")),
			"colorizing never adds or removes lines")
	}
}

func TestColorizeImageGlyph(t *testing.T) {
	loaded := colorizeImageGlyph(" " + imageGlyphLoaded + "    nyx ")
	assert.Contains(t, loaded, renderedLoaded)

	pending := colorizeImageGlyph(" " + imageGlyphPending + "    dior ")
	assert.Contains(t, pending, renderedPending)

	none := colorizeImageGlyph(" " + imageGlyphNone + "    --- ")
	assert.Contains(t, none, renderedNone)

	// a dash inside a brand name is not an image marker
	plain := " x    anti-shine "
	assert.Equal(t, plain, colorizeImageGlyph(plain))
}

func TestColorizeMissingFacets(t *testing.T) {
	line := " ●  --- lipstick --- Vegan"
	colorized := colorizeMissingFacets(line)
	assert.Equal(t, 2, strings.Count(colorized, renderedMissing))
}

func TestColorizeHeaderUntouched(t *testing.T) {
	view := " Image  Brand\n " + imageGlyphLoaded + "  nyx"
	colorized := ColorizeCatalogTableOutput(view, -1, nil)

	lines := strings.Split(colorized, "\n")
	assert.Equal(t, " Image  Brand", lines[0])
	assert.Contains(t, lines[1], renderedLoaded)
}
