package layout

import (
	"github.com/kozaktomas/album-editor/internal/geometry"
)

// mosaicLeadShare is the width share of the large zone in the three-photo template.
const mosaicLeadShare = 0.6

// MosaicZones returns the hand-authored zone template for n photos, or nil
// when no template exists (n < 1 or n > 4).
// Zones are relative to area and listed in assignment order.
func MosaicZones(area geometry.Rect, n int) []geometry.Rect {
	x, y, w, h := area.X, area.Y, area.W, area.H
	halfW, halfH := w/2, h/2

	switch n {
	case 1:
		// Zone 0: full area.
		return []geometry.Rect{
			{X: x, Y: y, W: w, H: h},
		}

	case 2:
		// Zone 0: left half  |  Zone 1: right half.
		return []geometry.Rect{
			{X: x, Y: y, W: halfW, H: h},
			{X: x + halfW, Y: y, W: halfW, H: h},
		}

	case 3:
		// Zone 0: lead zone, 60% width, full height.
		// Zones 1,2: stacked in the remaining 40%.
		leadW := w * mosaicLeadShare
		sideW := w - leadW
		return []geometry.Rect{
			{X: x, Y: y, W: leadW, H: h},
			{X: x + leadW, Y: y, W: sideW, H: halfH},
			{X: x + leadW, Y: y + halfH, W: sideW, H: halfH},
		}

	case 4:
		// Zone 0: top left   |  Zone 1: top right.
		// Zone 2: bottom left |  Zone 3: bottom right.
		return []geometry.Rect{
			{X: x, Y: y, W: halfW, H: halfH},
			{X: x + halfW, Y: y, W: halfW, H: halfH},
			{X: x, Y: y + halfH, W: halfW, H: halfH},
			{X: x + halfW, Y: y + halfH, W: halfW, H: halfH},
		}

	default:
		return nil
	}
}
