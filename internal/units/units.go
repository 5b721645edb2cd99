// Package units converts physical album measurements (cm, mm) to pixel space.
package units

import (
	"math"

	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/geometry"
)

const (
	cmPerInch = 2.54
	mmPerInch = 25.4
)

// Converter converts between physical units and pixels at a fixed DPI.
type Converter struct {
	DPI float64
}

// NewConverter returns a converter for dpi. A non-positive or non-finite dpi
// falls back to constants.DefaultDPI.
func NewConverter(dpi float64) Converter {
	if dpi <= 0 || math.IsNaN(dpi) || math.IsInf(dpi, 0) {
		dpi = constants.DefaultDPI
	}
	return Converter{DPI: dpi}
}

// CmToPx converts centimeters to pixels: dpi/2.54 * cm.
func (c Converter) CmToPx(cm float64) float64 {
	return c.DPI / cmPerInch * cm
}

// MmToPx converts millimeters to pixels: dpi/25.4 * mm.
func (c Converter) MmToPx(mm float64) float64 {
	return c.DPI / mmPerInch * mm
}

// PxToCm converts pixels back to centimeters.
func (c Converter) PxToCm(px float64) float64 {
	if c.DPI == 0 {
		return 0
	}
	return px * cmPerInch / c.DPI
}

// PxToMm converts pixels back to millimeters.
func (c Converter) PxToMm(px float64) float64 {
	if c.DPI == 0 {
		return 0
	}
	return px * mmPerInch / c.DPI
}

// SpreadSize returns the pixel size of a double-page spread whose single
// page measures widthCm x heightCm.
func (c Converter) SpreadSize(widthCm, heightCm float64) (w, h float64) {
	return c.CmToPx(widthCm * 2), c.CmToPx(heightCm)
}

// Insets returns the bleed and safe insets in pixels.
func (c Converter) Insets(bleedMm, safeMm float64) (bleed, safe float64) {
	return c.MmToPx(bleedMm), c.MmToPx(safeMm)
}

// Spread returns the full spread rectangle anchored at the origin.
func (c Converter) Spread(widthCm, heightCm float64) geometry.Rect {
	w, h := c.SpreadSize(widthCm, heightCm)
	return geometry.Rect{W: w, H: h}
}

// WorkingArea returns the spread rectangle inset by the bleed on every side.
// Auto-placement and auto-layout operate inside this rectangle.
func (c Converter) WorkingArea(widthCm, heightCm, bleedMm float64) geometry.Rect {
	return c.Spread(widthCm, heightCm).Inset(c.MmToPx(bleedMm))
}

// SafeArea returns the spread rectangle inset by bleed plus the safe margin.
func (c Converter) SafeArea(widthCm, heightCm, bleedMm, safeMm float64) geometry.Rect {
	return c.Spread(widthCm, heightCm).Inset(c.MmToPx(bleedMm) + c.MmToPx(safeMm))
}
