package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pb33f/glam/motor"
)

type thumbnailMsg struct {
	result motor.ThumbnailResult
}

// waitForThumbnail blocks on the loader's result stream; the model re-issues it
// after every delivery. A closed stream ends the subscription.
func waitForThumbnail(results <-chan motor.ThumbnailResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			return nil
		}
		return thumbnailMsg{result: result}
	}
}

// visibleWindow keeps the cursor inside a window of height rows starting at start,
// scrolling the minimum amount. Returns the new start and the exclusive end.
func visibleWindow(cursor, start, height, total int) (int, int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	if height > total {
		height = total
	}
	cursor = max(0, min(cursor, total-1))

	if cursor < start {
		start = cursor
	}
	if cursor >= start+height {
		start = cursor - height + 1
	}
	start = max(0, min(start, total-height))

	return start, start + height
}

// visibleRows reports every row of the current results with its visibility.
func (m *CatalogViewModel) visibleRows() []motor.RowVisibility {
	start, end := visibleWindow(m.table.Cursor(), m.viewStart, m.visibleHeight(), len(m.products))
	m.viewStart = start

	rows := make([]motor.RowVisibility, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, motor.RowVisibility{Index: i, Visible: true})
	}
	return rows
}

// requestVisibleImages queues a fetch for each visible row that has an image url
// and no thumbnail yet. Fetches happen on the loader's worker; a row still pending
// is superseded rather than duplicated, and failed rows are retried on the next scroll.
func (m *CatalogViewModel) requestVisibleImages() tea.Cmd {
	if m.loader == nil {
		return nil
	}

	slots := m.loader.Slots()
	for _, row := range m.visibleRows() {
		if !row.Visible || row.Index >= len(m.products) {
			continue
		}
		if _, ok := slots.Get(row.Index); ok {
			continue
		}
		m.loader.Enqueue(m.generation, row.Index, m.products[row.Index].ImageURL)
	}
	return nil
}

func (m *CatalogViewModel) handleThumbnail(msg thumbnailMsg) tea.Cmd {
	next := waitForThumbnail(m.loader.Results())

	// a result for an older result set never touches the grid
	if msg.result.Generation != m.generation || msg.result.Index >= len(m.products) {
		return next
	}

	if msg.result.Index < len(m.rows) {
		m.rows[msg.result.Index][0] = imageGlyphLoaded
		m.table.SetRows(m.rows)
	}

	if m.detailVisible && m.table.Cursor() == msg.result.Index {
		m.updateDetailContent()
	}

	return next
}
