package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pb33f/glam/motor"
	"github.com/pb33f/glam/motor/model"
)

// ModalType represents which modal is currently active
type ModalType int

const (
	ModalNone ModalType = iota
	ModalFilter
	ModalError
)

// Options configures the catalog view
type Options struct {
	Source      string // shown while loading, usually the catalog base url
	ThumbWidth  int    // thumbnail width in cells
	ThumbHeight int    // thumbnail height in cells
}

type CatalogViewModel struct {
	table   table.Model
	rows    []table.Row
	columns []table.Column

	session    *motor.Session
	loader     *motor.ImageLoader
	products   []model.Product
	generation uint64
	viewStart  int

	selection motor.Selection
	picker    facetPicker

	activeModal ModalType
	errTitle    string

	detailVisible  bool
	detailViewport viewport.Model

	width    int
	height   int
	ready    bool
	quitting bool

	loadState      LoadState
	loadingSpinner spinner.Model
	searching      bool
	status         string
	statusIsError  bool
	loadDuration   time.Duration
	lastSearch     time.Duration

	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	err error
}

// NewCatalogViewModel wires a session and an image loader into the interactive view.
// The loader should render thumbnails (see motor.RenderThumbnailFunc) for the detail panel.
func NewCatalogViewModel(session *motor.Session, loader *motor.ImageLoader, opts Options) *CatalogViewModel {
	if opts.ThumbWidth <= 0 {
		opts.ThumbWidth = defaultThumbWidth
	}
	if opts.ThumbHeight <= 0 {
		opts.ThumbHeight = defaultThumbHeight
	}

	columns := []table.Column{
		{Title: "Image", Width: imageColumnWidth},
		{Title: "Brand", Width: maxBrandColumnWidth},
		{Title: "Type", Width: typeColumnWidth},
		{Title: "Category", Width: categoryColumnWidth},
		{Title: "Tags", Width: minTagsColumnWidth},
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &CatalogViewModel{
		session:        session,
		loader:         loader,
		columns:        columns,
		picker:         newFacetPicker(),
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
		status:         statusReady,
		opts:           opts,
		ctx:            ctx,
		cancel:         cancel,
	}

	if loader != nil {
		m.generation = loader.Generation()
	}

	return m
}

func (m *CatalogViewModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadingSpinner.Tick, m.startLoad()}
	if m.loader != nil {
		m.loader.Start(m.ctx)
		cmds = append(cmds, waitForThumbnail(m.loader.Results()))
	}
	return tea.Batch(cmds...)
}

func (m *CatalogViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading || m.searching {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case catalogLoadedMsg:
		cmds = append(cmds, m.handleCatalogLoaded(msg))
		return m, tea.Batch(cmds...)

	case catalogErrorMsg:
		cmds = append(cmds, m.handleCatalogError(msg))
		return m, tea.Batch(cmds...)

	case searchCompleteMsg:
		cmds = append(cmds, m.handleSearchComplete(msg))
		return m, tea.Batch(cmds...)

	case searchErrorMsg:
		cmds = append(cmds, m.handleSearchError(msg))
		return m, tea.Batch(cmds...)

	case thumbnailMsg:
		cmds = append(cmds, m.handleThumbnail(msg))
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.loadState != LoadStateLoading && !m.ready {
			m.initializeTable()
			m.ready = true
		} else if m.ready {
			m.updateTableDimensions()
		}

		if m.detailVisible {
			m.updateDetailDimensions()
		}
		cmds = append(cmds, m.requestVisibleImages())

	case tea.KeyPressMsg:
		if handled, keyCmd := m.handleKey(msg.String()); handled {
			cmds = append(cmds, keyCmd)
			return m, tea.Batch(cmds...)
		}
	}

	if m.ready && m.activeModal == ModalNone {
		before := m.table.Cursor()
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)

		// cursor movement scrolls the grid, so fetch whatever became visible
		if m.table.Cursor() != before {
			cmds = append(cmds, m.requestVisibleImages())
			if m.detailVisible {
				m.updateDetailContent()
			}
		}

		if m.detailVisible {
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes a key press to the active modal or the global bindings.
// Keys not handled here fall through to the table.
func (m *CatalogViewModel) handleKey(key string) (bool, tea.Cmd) {
	if key == "ctrl+c" {
		return true, m.quit()
	}

	switch m.activeModal {
	case ModalError:
		switch key {
		case "enter", "esc", "q":
			m.activeModal = ModalNone
		}
		return true, nil

	case ModalFilter:
		return m.handlePickerKeys(key)
	}

	switch key {
	case "q":
		return true, m.quit()

	case "r":
		switch m.loadState {
		case LoadStateError:
			m.loadState = LoadStateLoading
			return true, tea.Batch(m.loadingSpinner.Tick, m.startLoad())
		case LoadStateLoaded:
			return true, m.startLoad()
		}
		return true, nil
	}

	if m.loadState != LoadStateLoaded {
		return false, nil
	}

	switch key {
	case "f":
		m.activeModal = ModalFilter
		return true, nil

	case "s":
		return true, m.startSearch(m.picker.selection())

	case "c":
		return true, m.clearResults()

	case "enter", "return":
		m.toggleDetail()
		return true, nil

	case "esc":
		if m.detailVisible {
			m.toggleDetail()
		}
		return true, nil
	}

	return false, nil
}

func (m *CatalogViewModel) View() string {
	if m.quitting {
		return ""
	}

	var base string
	switch m.loadState {
	case LoadStateLoading:
		base = m.renderLoadingView()
	case LoadStateError:
		base = m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		base = m.render()
	default:
		return "Unknown state"
	}

	switch m.activeModal {
	case ModalFilter:
		return m.overlay(base, m.renderPickerModal())
	case ModalError:
		return m.overlay(base, m.renderErrorModal())
	}
	return base
}

// Cleanup stops the image worker and cancels in-flight requests
func (m *CatalogViewModel) Cleanup() error {
	m.cancel()
	if m.loader != nil {
		m.loader.Close()
	}
	return nil
}

func (m *CatalogViewModel) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}

// setResults replaces the grid with a new result set, starting a new image generation.
func (m *CatalogViewModel) setResults(products []model.Product) {
	if m.loader != nil {
		m.generation = m.loader.Reset()
	}

	m.products = products
	m.viewStart = 0
	m.buildTableRows()

	if m.ready {
		m.table.SetRows(m.rows)
		m.table.SetCursor(0)
	}
	if m.detailVisible {
		m.updateDetailContent()
	}
}

// clearResults resets every picker to "all" and empties the grid; an in-flight
// search can no longer repopulate it.
func (m *CatalogViewModel) clearResults() tea.Cmd {
	m.session.InvalidateSearches()
	m.picker.clear()
	m.selection = motor.Selection{}
	m.searching = false
	m.setResults(nil)
	m.status = statusReady
	m.statusIsError = false
	return nil
}

func (m *CatalogViewModel) showError(title string, err error) {
	m.err = err
	m.errTitle = title
	m.activeModal = ModalError
}

func (m *CatalogViewModel) initializeTable() {
	m.buildTableRows()

	m.table = table.New(
		table.WithColumns(m.columns),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(m.visibleHeight()),
		table.WithWidth(m.tableWidth()),
	)

	m.table = ApplyTableStyles(m.table)
	m.adjustColumnWidths()
}

func (m *CatalogViewModel) updateTableDimensions() {
	m.table.SetHeight(m.visibleHeight())
	m.table.SetWidth(m.tableWidth())
	m.adjustColumnWidths()
}

// visibleHeight is the number of grid rows on screen
func (m *CatalogViewModel) visibleHeight() int {
	return max(1, m.height-tableVerticalPadding)
}

func (m *CatalogViewModel) tableWidth() int {
	if m.detailVisible {
		return max(0, m.width-m.detailPanelWidth())
	}
	return m.width
}

func (m *CatalogViewModel) adjustColumnWidths() {
	available := m.tableWidth() - imageColumnWidth - typeColumnWidth - categoryColumnWidth - borderPadding

	brandWidth := max(minBrandColumnWidth, min(maxBrandColumnWidth, available/3))
	tagsWidth := max(minTagsColumnWidth, available-brandWidth)

	m.columns[0].Width = imageColumnWidth
	m.columns[1].Width = brandWidth
	m.columns[2].Width = typeColumnWidth
	m.columns[3].Width = categoryColumnWidth
	m.columns[4].Width = tagsWidth

	m.table.SetColumns(m.columns)
}

// Selection returns the filter selection of the most recent search
func (m *CatalogViewModel) Selection() motor.Selection {
	return m.selection
}

// Products returns the rows currently shown in the grid
func (m *CatalogViewModel) Products() []model.Product {
	return m.products
}
