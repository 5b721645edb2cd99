package editor

import (
	"fmt"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/geometry"
	"github.com/kozaktomas/album-editor/internal/layout"
)

// applyLayout computes frames for every photo on the current page and
// commits them as one undoable command. Membership is unchanged.
func (s *Session) applyLayout(op string, compute func(area geometry.Rect, photos []*album.Photo) []layout.Frame) error {
	page := s.pages[s.current]
	photos := page.Clone().Photos()
	if len(photos) == 0 {
		return nil
	}

	frames := compute(s.WorkingArea(), photos)
	return s.mutate(op, func() error {
		s.pages[s.current] = layout.Apply(page, frames)
		return nil
	})
}

// LayoutGrid arranges the current page's photos in a grid of columns.
func (s *Session) LayoutGrid(columns int) error {
	if columns <= 0 {
		return fmt.Errorf("grid layout with %d columns: %w", columns, ErrInvalidValue)
	}
	return s.applyLayout("layout-grid", func(area geometry.Rect, photos []*album.Photo) []layout.Frame {
		return layout.Grid(area, photos, columns)
	})
}

// LayoutAuto arranges the photos in a grid with a column count derived from
// their number.
func (s *Session) LayoutAuto() error {
	return s.applyLayout("layout-auto", layout.Auto)
}

// LayoutMosaic arranges up to four photos in a fixed template, more in an
// automatic grid.
func (s *Session) LayoutMosaic() error {
	return s.applyLayout("layout-mosaic", layout.Mosaic)
}

// LayoutBalanced packs the photos into justified rows across the working
// area width. A non-positive row height or a negative gap uses the default;
// a zero gap packs the photos edge to edge.
func (s *Session) LayoutBalanced(targetRowHeight, gap float64) error {
	return s.applyLayout("layout-balanced", func(area geometry.Rect, photos []*album.Photo) []layout.Frame {
		frames := layout.Balanced(layout.TilesFromPhotos(photos), area.W, targetRowHeight, gap)
		for i, f := range frames {
			r := f.Rect().Translate(area.X, area.Y)
			frames[i].X, frames[i].Y = r.X, r.Y
		}
		return frames
	})
}
