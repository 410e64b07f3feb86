package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func (m *CatalogViewModel) render() string {
	var builder strings.Builder

	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")

	// post-process table view to add colorization (vacuum pattern)
	tableView := ColorizeCatalogTableOutput(m.table.View(), m.table.Cursor(), m.rows)
	if m.detailVisible {
		tableView = lipgloss.JoinHorizontal(lipgloss.Top, tableView, m.renderDetailPanel())
	}
	builder.WriteString(tableView)

	builder.WriteString("\n")
	builder.WriteString(m.renderStatusBar())

	return builder.String()
}

func (m *CatalogViewModel) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).BorderForeground(RGBBlue).BorderTop(false).BorderLeft(false).BorderRight(false).BorderBottom(true)

	titleText := lipgloss.NewStyle().Bold(true).Render("glam: " + m.selection.String() + " | ")

	summary := fmt.Sprintf("(%d of %d products", len(m.products), len(m.session.Snapshot().Catalog))
	if m.loadDuration > 0 {
		summary += fmt.Sprintf(", loaded in %v", m.loadDuration.Round(time.Millisecond))
	}
	summary += ")"

	countStyle := lipgloss.NewStyle().
		Faint(true)

	return titleStyle.Render(titleText + countStyle.Render(summary))
}

func (m *CatalogViewModel) renderStatusBar() string {
	var status string
	switch {
	case m.statusIsError:
		status = StatusErrorStyle.Render(m.status)
	case m.searching:
		status = m.loadingSpinner.View() + " " + StatusWarningStyle.Render(m.status)
	default:
		status = StatusOKStyle.Render(m.status)
	}

	var parts []string
	parts = append(parts, "↑/↓: Navigate")
	if m.detailVisible {
		parts = append(parts, "Esc: Close Details")
	} else {
		parts = append(parts, "Enter: View Details")
	}
	parts = append(parts, "f: Filters")
	parts = append(parts, "s: Search")
	parts = append(parts, "c: Clear")
	parts = append(parts, "q: Quit")

	if len(m.products) > 0 {
		parts = append(parts, fmt.Sprintf("Product %d/%d", m.table.Cursor()+1, len(m.products)))
	}

	statusStyle := lipgloss.NewStyle().Faint(true)
	return status + "  " + statusStyle.Render(strings.Join(parts, " | "))
}

func (m *CatalogViewModel) renderErrorModal() string {
	modalWidth := min(60, max(30, m.width-4))

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBRed).
		Padding(1)

	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(RGBRed).Render(m.errTitle))
	content.WriteString("\n\n")
	if m.err != nil {
		content.WriteString(lipgloss.NewStyle().Width(modalWidth - 4).Render(m.err.Error()))
		content.WriteString("\n\n")
	}
	content.WriteString(HelpStyle.Render("Enter/Esc: Dismiss"))

	return modalStyle.Render(content.String())
}

// overlay draws modal centered on top of base, keeping the base visible around it.
func (m *CatalogViewModel) overlay(base, modal string) string {
	baseLines := strings.Split(base, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := lipgloss.Width(modal)
	x := max(0, (m.width-modalWidth)/2)
	y := max(0, (m.height-len(modalLines))/2)

	for len(baseLines) < y+len(modalLines) {
		baseLines = append(baseLines, "")
	}

	for i, modalLine := range modalLines {
		row := baseLines[y+i]

		left := ansi.Truncate(row, x, "")
		if gap := x - ansi.StringWidth(left); gap > 0 {
			left += strings.Repeat(" ", gap)
		}
		right := ansi.TruncateLeft(row, x+modalWidth, "")

		baseLines[y+i] = left + modalLine + right
	}

	return strings.Join(baseLines, "\n")
}
