package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/table"
)

// pre-rendered glyph strings to avoid repeated style.Render() calls in hot path
var (
	renderedLoaded  string
	renderedPending string
	renderedNone    string
	renderedMissing string
)

func init() {
	renderedLoaded = StyleImageLoaded.Render(imageGlyphLoaded)
	renderedPending = StyleImagePending.Render(imageGlyphPending)
	renderedNone = StyleImageNone.Render(imageGlyphNone)
	renderedMissing = StyleImageNone.Render("---")
}

// colorizes table output following vacuum pattern - skips selected row to preserve background
func ColorizeCatalogTableOutput(tableView string, cursor int, rows []table.Row) string {
	lines := strings.Split(tableView, "\n")

	// build unique identifier from selected row to handle cases where table background fails when scrolled
	var selectedIdentifier string
	if cursor >= 0 && cursor < len(rows) && len(rows[cursor]) >= 5 {
		selectedIdentifier = strings.Join(rows[cursor][1:], "")
	}

	// ANSI escape sequence for pink background (matches table selected style from styles.go)
	selectedLineMarker := "\x1b[1;38;5;201;48;2;42;26;42m"

	var result strings.Builder
	// estimate output size: input + ANSI overhead per line (~40 bytes per colorized line)
	result.Grow(len(tableView) + (len(lines) * 40))

	for i, line := range lines {
		isSelectedLine := strings.Contains(line, selectedLineMarker) ||
			(selectedIdentifier != "" && strings.Contains(strings.Join(strings.Fields(line), ""), selectedIdentifier))

		// skip header row (i=0) and selected rows (already styled by table)
		if i >= 1 && !isSelectedLine {
			line = colorizeImageGlyph(line)
			line = colorizeMissingFacets(line)
		}

		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// colorizes the image marker in the first column, only the first occurrence is touched
func colorizeImageGlyph(line string) string {
	if strings.Contains(line, " "+imageGlyphLoaded+" ") {
		return strings.Replace(line, " "+imageGlyphLoaded+" ", " "+renderedLoaded+" ", 1)
	}
	if strings.Contains(line, " "+imageGlyphPending+" ") {
		return strings.Replace(line, " "+imageGlyphPending+" ", " "+renderedPending+" ", 1)
	}
	if strings.HasPrefix(strings.TrimLeft(line, " "), imageGlyphNone+" ") {
		return strings.Replace(line, imageGlyphNone+" ", renderedNone+" ", 1)
	}
	return line
}

// fades the placeholder used for empty brand, type or category cells
func colorizeMissingFacets(line string) string {
	return strings.ReplaceAll(line, " --- ", " "+renderedMissing+" ")
}
