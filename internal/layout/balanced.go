package layout

import (
	"math"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
)

// Tile is an item to pack into balanced rows.
type Tile struct {
	ID string
	AR float64
}

// TilesFromPhotos converts photos to tiles, preserving order.
func TilesFromPhotos(photos []*album.Photo) []Tile {
	tiles := make([]Tile, len(photos))
	for i, p := range photos {
		tiles[i] = Tile{ID: p.ID, AR: album.ResolveAR(p.AR, 1)}
	}
	return tiles
}

// Balanced packs tiles into justified rows. Tiles accumulate into a row while
// the sum of their aspect ratios stays below containerWidth/targetRowHeight;
// the tile that reaches the limit closes the row. Each row gets a uniform
// height H = clamp(rowWidth/sumAR, 80, 1.4*targetRowHeight), where rowWidth
// is containerWidth minus the inner gaps. Frames are relative to (0, 0).
//
// Non-positive targetRowHeight or negative gap fall back to the defaults.
func Balanced(tiles []Tile, containerWidth, targetRowHeight, gap float64) []Frame {
	if targetRowHeight <= 0 || !album.IsFinite(targetRowHeight) {
		targetRowHeight = constants.DefaultRowHeight
	}
	if gap < 0 || !album.IsFinite(gap) {
		gap = constants.DefaultGap
	}
	if containerWidth <= 0 || !album.IsFinite(containerWidth) || len(tiles) == 0 {
		return nil
	}

	limit := containerWidth / targetRowHeight
	maxH := targetRowHeight * constants.MaxRowHeightFactor

	frames := make([]Frame, 0, len(tiles))
	var row []Tile
	var sumAR, y float64

	flush := func() {
		if len(row) == 0 {
			return
		}
		rowWidth := containerWidth - gap*float64(len(row)-1)
		h := math.Max(constants.MinRowHeight, math.Min(rowWidth/sumAR, maxH))
		x := 0.0
		for _, t := range row {
			w := t.AR * h
			frames = append(frames, Frame{ID: t.ID, X: x, Y: y, W: w, H: h})
			x += w + gap
		}
		y += h + gap
		row = row[:0]
		sumAR = 0
	}

	for _, t := range tiles {
		ar := album.ResolveAR(t.AR, 1)
		row = append(row, Tile{ID: t.ID, AR: ar})
		sumAR += ar
		if sumAR >= limit {
			flush()
		}
	}
	flush()
	return frames
}
