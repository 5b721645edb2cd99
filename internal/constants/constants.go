// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Unit conversion constants
const (
	// DefaultDPI is the print resolution used when none is configured
	DefaultDPI = 300.0

	// DefaultBleedMm is the default bleed margin beyond the trim edge
	DefaultBleedMm = 3.0

	// DefaultSafeMm is the default safe-area inset used for guide overlays
	DefaultSafeMm = 5.0
)

// Item model constants
const (
	// MinItemSize is the minimum width and height of any item in pixels
	MinItemSize = 20.0

	// DefaultAspectRatio is used when an asset's source dimensions are unknown
	DefaultAspectRatio = 3.0 / 2.0

	// DefaultOpacity is the opacity of newly created items
	DefaultOpacity = 1.0
)

// Placement constants
const (
	// PlacementStep is the scan step in pixels for both axes
	PlacementStep = 16.0

	// DefaultTargetWidthRatio is the share of the working area width used
	// for a newly placed photo when no target width is given
	DefaultTargetWidthRatio = 0.4

	// AutoFillWidthDivisor splits the working area width for auto-filled photos
	AutoFillWidthDivisor = 3.0

	// MinShrinkFactor is the smallest scale tried before giving up on a free slot
	MinShrinkFactor = 0.5

	// ShrinkStep is the amount the scale is reduced after each failed scan
	ShrinkStep = 0.1
)

// Layout constants
const (
	// MaxAutoColumns caps the column count chosen by the automatic grid
	MaxAutoColumns = 4

	// DefaultRowHeight is the target row height of the balanced mosaic
	DefaultRowHeight = 280.0

	// DefaultGap is the gap between items in the balanced mosaic
	DefaultGap = 16.0

	// MinRowHeight is the smallest row height the balanced mosaic produces
	MinRowHeight = 80.0

	// MaxRowHeightFactor bounds the row height relative to the target
	MaxRowHeightFactor = 1.4
)

// Snap constants
const (
	// DefaultMagnetTolerance is the maximum distance in pixels at which magnet snapping engages
	DefaultMagnetTolerance = 8.0

	// DefaultGridSize is the grid-snap spacing in pixels
	DefaultGridSize = 20.0
)

// Editor constants
const (
	// HistoryLimit is the maximum number of snapshots kept on each history stack
	HistoryLimit = 100

	// MaxAssets is the maximum number of assets in a project catalog
	MaxAssets = 150

	// DefaultZoom is the initial canvas zoom factor
	DefaultZoom = 1.0
)

// Project defaults
const (
	// DefaultPageWidthCm is the page width of a new project
	DefaultPageWidthCm = 20.0

	// DefaultPageHeightCm is the page height of a new project
	DefaultPageHeightCm = 20.0

	// DefaultPageBackground is the background color of new pages
	DefaultPageBackground = "#ffffff"
)

// Text item defaults
const (
	DefaultTextWidth   = 320.0
	DefaultTextHeight  = 80.0
	DefaultFontSize    = 32.0
	DefaultFontFamily  = "Inter"
	DefaultTextColor   = "#1f1f1f"
	DefaultTextContent = "Text"
)
