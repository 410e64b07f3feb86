package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/pb33f/glam/motor"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

const (
	statusReady       = "Ready."
	statusLoading     = "Loading data..."
	statusSearching   = "Searching products..."
	statusLoadError   = "Error loading catalog."
	statusFilterError = "Error filtering products."
)

func statusFound(count int) string {
	return fmt.Sprintf("Products found: %d", count)
}

type catalogLoadedMsg struct {
	result motor.LoadResult
}

type catalogErrorMsg struct {
	seq uint64
	err error
}

type searchCompleteMsg struct {
	result motor.SearchResult
}

type searchErrorMsg struct {
	seq uint64
	err error
}

func (m *CatalogViewModel) startLoad() tea.Cmd {
	m.status = statusLoading
	m.statusIsError = false
	session := m.session
	ctx := m.ctx

	return func() tea.Msg {
		result, err := session.Load(ctx)
		if err != nil {
			return catalogErrorMsg{seq: result.Seq, err: err}
		}
		return catalogLoadedMsg{result: result}
	}
}

func (m *CatalogViewModel) startSearch(sel motor.Selection) tea.Cmd {
	m.searching = true
	m.selection = sel
	m.status = statusSearching
	m.statusIsError = false
	session := m.session
	ctx := m.ctx

	return tea.Batch(m.loadingSpinner.Tick, func() tea.Msg {
		result, err := session.Search(ctx, sel)
		if err != nil {
			return searchErrorMsg{seq: result.Seq, err: err}
		}
		return searchCompleteMsg{result: result}
	})
}

func (m *CatalogViewModel) handleCatalogLoaded(msg catalogLoadedMsg) tea.Cmd {
	if !m.session.IsCurrentLoad(msg.result.Seq) {
		return nil
	}

	snap := msg.result.Snapshot
	m.loadState = LoadStateLoaded
	m.loadDuration = snap.Duration
	m.picker.reset(snap.Facets)

	if m.width > 0 && m.height > 0 && !m.ready {
		m.initializeTable()
		m.ready = true
	}

	// populate the grid with an unconstrained search right after indexing
	return m.startSearch(motor.Selection{})
}

func (m *CatalogViewModel) handleCatalogError(msg catalogErrorMsg) tea.Cmd {
	if errors.Is(msg.err, motor.ErrSuperseded) || !m.session.IsCurrentLoad(msg.seq) {
		return nil
	}

	if m.loadState == LoadStateLoading {
		m.loadState = LoadStateError
	}
	m.status = statusLoadError
	m.statusIsError = true
	m.showError("Error loading catalog", msg.err)
	return nil
}

func (m *CatalogViewModel) handleSearchComplete(msg searchCompleteMsg) tea.Cmd {
	if !m.session.IsCurrentSearch(msg.result.Seq) {
		return nil
	}

	m.searching = false
	m.setResults(msg.result.Products)
	m.status = statusFound(len(msg.result.Products))
	m.statusIsError = false
	m.lastSearch = msg.result.Duration

	return m.requestVisibleImages()
}

func (m *CatalogViewModel) handleSearchError(msg searchErrorMsg) tea.Cmd {
	if errors.Is(msg.err, motor.ErrSuperseded) || !m.session.IsCurrentSearch(msg.seq) {
		return nil
	}

	// the grid keeps its previous results
	m.searching = false
	m.status = statusFilterError
	m.statusIsError = true
	m.showError("Error filtering products", msg.err)
	return nil
}

func (m *CatalogViewModel) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	sourceStyle := lipgloss.NewStyle().
		Foreground(RGBGrey)

	title := titleStyle.Render("Loading Catalog")
	source := sourceStyle.Render(fmt.Sprintf("\n%s", m.opts.Source))

	spinnerText := fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, source)

	messageStyle := lipgloss.NewStyle().
		Foreground(RGBBlue).
		MarginTop(2)
	spinnerText += "\n\n" + messageStyle.Render(m.status)

	return spinnerStyle.Render(spinnerText)
}

func (m *CatalogViewModel) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	errorMsg := fmt.Sprintf("❌ %s\n\n%v\n\nPress 'r' to retry or 'q' to quit", statusLoadError, m.err)
	return errorStyle.Render(errorMsg)
}

// matching vacuum's Dot spinner
func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
