// Package layout arranges every photo on a page into a grid, a fixed mosaic
// template or balanced rows.
//
// All functions are pure: they read the photos they are given and return new
// frames. Committing the frames onto a page is done with Apply, which returns
// a new page and leaves the input untouched.
package layout

import (
	"math"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/geometry"
)

// Frame is the computed position of one item.
type Frame struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

// Rect returns the frame bounds.
func (f Frame) Rect() geometry.Rect {
	return geometry.Rect{X: f.X, Y: f.Y, W: f.W, H: f.H}
}

func frameIn(id string, r geometry.Rect) Frame {
	return Frame{ID: id, X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// GridCells partitions area into columns x ceil(n/columns) equal cells in
// row-major order and returns the first n.
func GridCells(area geometry.Rect, n, columns int) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	columns = max(1, columns)
	rows := (n + columns - 1) / columns
	cellW := area.W / float64(columns)
	cellH := area.H / float64(rows)

	cells := make([]geometry.Rect, n)
	for i := range n {
		row, col := i/columns, i%columns
		cells[i] = geometry.Rect{
			X: area.X + float64(col)*cellW,
			Y: area.Y + float64(row)*cellH,
			W: cellW,
			H: cellH,
		}
	}
	return cells
}

// Grid fits each photo, in order, into its grid cell by aspect and centers it.
func Grid(area geometry.Rect, photos []*album.Photo, columns int) []Frame {
	cells := GridCells(area, len(photos), columns)
	return fitInto(cells, photos)
}

// AutoColumns returns clamp(round(sqrt(n)), 1, constants.MaxAutoColumns).
func AutoColumns(n int) int {
	cols := int(math.Round(math.Sqrt(float64(n))))
	return max(1, min(cols, constants.MaxAutoColumns))
}

// Auto lays photos out in a grid with AutoColumns(len(photos)) columns.
func Auto(area geometry.Rect, photos []*album.Photo) []Frame {
	return Grid(area, photos, AutoColumns(len(photos)))
}

// Mosaic uses a fixed zone template for one to four photos and falls back to
// Auto for more.
func Mosaic(area geometry.Rect, photos []*album.Photo) []Frame {
	zones := MosaicZones(area, len(photos))
	if zones == nil {
		return Auto(area, photos)
	}
	return fitInto(zones, photos)
}

func fitInto(zones []geometry.Rect, photos []*album.Photo) []Frame {
	frames := make([]Frame, len(photos))
	for i, p := range photos {
		ar := album.ResolveAR(p.AR, 1)
		frames[i] = frameIn(p.ID, geometry.FitAspect(zones[i], ar))
	}
	return frames
}

// Apply returns a copy of page with every frame committed to the item of
// the same ID. Each frame is rounded inward to whole pixels, so the item
// stays inside it, then clamped to the minimum item size. Items without a
// frame are copied unchanged.
func Apply(page *album.Page, frames []Frame) *album.Page {
	byID := make(map[string]Frame, len(frames))
	for _, f := range frames {
		byID[f.ID] = f
	}

	out := page.Clone()
	for _, it := range out.Items {
		f, ok := byID[it.Base().ID]
		if !ok {
			continue
		}
		r := f.Rect().RoundInward()
		base := it.Base()
		base.X, base.Y = r.X, r.Y
		base.Width = math.Max(constants.MinItemSize, r.W)
		base.Height = math.Max(constants.MinItemSize, r.H)
	}
	return out
}
