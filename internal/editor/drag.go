package editor

import (
	"fmt"
	"math"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/geometry"
	"github.com/kozaktomas/album-editor/internal/snap"
)

type dragState struct {
	gesture *snap.Gesture
	origin  geometry.Rect
	last    geometry.Rect
}

// BeginDrag starts dragging an item on the current page. Snap candidates
// are collected once here; a previous unfinished drag is discarded.
func (s *Session) BeginDrag(itemID string) error {
	page := s.pages[s.current]
	idx, item := page.Find(itemID)
	if idx < 0 {
		return fmt.Errorf("begin drag %s: %w", itemID, ErrItemNotFound)
	}

	spread := s.SpreadRect()
	bleed := s.converter().MmToPx(s.bleedMm)
	targets := snap.Candidates(page, itemID, spread.W, spread.H, bleed)

	r := item.Base().Rect()
	s.drag = &dragState{
		gesture: snap.NewGesture(itemID, targets, snap.Options{
			Magnet:    s.settings.Magnet,
			Tolerance: s.settings.MagnetTolerance,
			Grid:      s.settings.Grid,
			GridSize:  s.settings.GridSize,
		}),
		origin: r,
		last:   r,
	}
	return nil
}

// DragMove moves the dragged item's top-left corner to (x, y) and returns
// the snapped rectangle with the active guides. The page is not modified
// until EndDrag.
func (s *Session) DragMove(x, y float64) (snap.Result, error) {
	if s.drag == nil {
		return snap.Result{}, ErrNoDrag
	}
	r := s.drag.origin
	r.X = album.SafeNumber(x, s.drag.last.X)
	r.Y = album.SafeNumber(y, s.drag.last.Y)

	res := s.drag.gesture.Move(r)
	s.drag.last = res.Rect
	return res, nil
}

// EndDrag commits the last dragged position, grid-rounded when the magnet
// never engaged, and records one history entry. The committed position is
// rounded to whole pixels.
func (s *Session) EndDrag() (album.Item, error) {
	if s.drag == nil {
		return nil, ErrNoDrag
	}
	d := s.drag
	s.drag = nil
	final := d.gesture.End(d.last)
	final.X, final.Y = math.Round(final.X), math.Round(final.Y)

	page := s.pages[s.current]
	idx, item := page.Find(d.gesture.ItemID)
	if idx < 0 {
		return nil, fmt.Errorf("end drag %s: %w", d.gesture.ItemID, ErrItemNotFound)
	}
	if final.X == item.Base().X && final.Y == item.Base().Y {
		return item.Clone(), nil
	}

	moved := album.Apply(item, album.Patch{X: album.Float(final.X), Y: album.Float(final.Y)})
	err := s.mutate("drag", func() error {
		s.pages[s.current].Items[idx] = moved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved.Clone(), nil
}

// CancelDrag abandons the current drag without changing the page.
func (s *Session) CancelDrag() {
	s.drag = nil
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	return s.drag != nil
}
