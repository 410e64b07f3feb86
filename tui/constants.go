package tui

const (
	tableVerticalPadding = 4
	borderPadding        = 12

	imageColumnWidth    = 5
	typeColumnWidth     = 12
	categoryColumnWidth = 12
	minBrandColumnWidth = 12
	maxBrandColumnWidth = 24
	minTagsColumnWidth  = 20

	// Detail panel dimensions
	detailPanelWidthRatio = 0.4 // 40% of horizontal space
	minDetailPanelWidth   = 30
	detailPanelPadding    = 2

	// Default thumbnail size in terminal cells
	defaultThumbWidth  = 24
	defaultThumbHeight = 12

	pickerModalWidth = 48
)

// image column glyphs
const (
	imageGlyphNone    = "-"
	imageGlyphPending = "○"
	imageGlyphLoaded  = "●"
)
