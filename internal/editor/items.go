package editor

import (
	"fmt"
	"math"
	"slices"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/constants"
)

// AddText adds a text box centred in the working area of the current page
// and selects it. An empty text uses a placeholder.
func (s *Session) AddText(text string) (*album.Text, error) {
	text = album.NormalizeText(text)
	if text == "" {
		text = constants.DefaultTextContent
	}
	area := s.WorkingArea()

	item := &album.Text{
		Frame: album.Frame{
			ID:      s.ids.NewID("text"),
			X:       math.Round(area.CenterX() - constants.DefaultTextWidth/2),
			Y:       math.Round(area.CenterY() - constants.DefaultTextHeight/2),
			Width:   constants.DefaultTextWidth,
			Height:  constants.DefaultTextHeight,
			Opacity: constants.DefaultOpacity,
		},
		Text:       text,
		FontSize:   constants.DefaultFontSize,
		FontFamily: constants.DefaultFontFamily,
		Align:      album.AlignCenter,
		Color:      constants.DefaultTextColor,
	}

	err := s.mutate("add-text", func() error {
		page := s.pages[s.current]
		page.Items = append(page.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.selection = []string{item.ID}
	return item.Clone().(*album.Text), nil
}

// UpdateItem applies patch to an item. Photo sizing keeps the aspect ratio
// unless both dimensions are patched together. Asset usage is not affected.
func (s *Session) UpdateItem(pageID, itemID string, patch album.Patch) (album.Item, error) {
	pi, page, err := s.page(pageID)
	if err != nil {
		return nil, fmt.Errorf("update item %s: %w", itemID, err)
	}
	idx, item := page.Find(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("update item %s on page %s: %w", itemID, pageID, ErrItemNotFound)
	}

	updated := album.Apply(item, patch)
	err = s.mutate("update-item", func() error {
		s.pages[pi].Items[idx] = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// DeleteItem removes an item and clears the used flag of its asset when no
// other photo references it. Unknown items are ignored.
func (s *Session) DeleteItem(pageID, itemID string) error {
	pi, page, err := s.page(pageID)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", itemID, err)
	}
	if idx, _ := page.Find(itemID); idx < 0 {
		return nil
	}

	err = s.mutate("delete-item", func() error {
		s.pages[pi].Remove(itemID)
		s.recomputeUsage()
		return nil
	})
	if err != nil {
		return err
	}
	s.selection = slices.DeleteFunc(s.selection, func(id string) bool { return id == itemID })
	return nil
}

// ClearPage removes every item from the current page.
func (s *Session) ClearPage() error {
	if len(s.pages[s.current].Items) == 0 {
		return nil
	}
	err := s.mutate("clear-page", func() error {
		s.pages[s.current].Items = nil
		s.recomputeUsage()
		return nil
	})
	if err != nil {
		return err
	}
	s.selection = nil
	return nil
}

// BringToFront moves an item to the top of its page's z-order.
func (s *Session) BringToFront(pageID, itemID string) error {
	return s.reorder("bring-to-front", pageID, itemID, (*album.Page).BringToFront)
}

// SendToBack moves an item to the bottom of its page's z-order.
func (s *Session) SendToBack(pageID, itemID string) error {
	return s.reorder("send-to-back", pageID, itemID, (*album.Page).SendToBack)
}

func (s *Session) reorder(op, pageID, itemID string, move func(*album.Page, string) bool) error {
	pi, page, err := s.page(pageID)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, itemID, err)
	}
	if idx, _ := page.Find(itemID); idx < 0 {
		return fmt.Errorf("%s %s: %w", op, itemID, ErrItemNotFound)
	}
	return s.mutate(op, func() error {
		move(s.pages[pi], itemID)
		return nil
	})
}

// Alignment is a target edge or centre line of the working area.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
	AlignTop    Alignment = "top"
	AlignMiddle Alignment = "middle"
	AlignBottom Alignment = "bottom"
)

// AlignItems moves items on the current page against an edge or centre line
// of the working area. An empty ids list aligns the selection. Results are
// rounded and clamped so every item stays on the spread.
func (s *Session) AlignItems(ids []string, align Alignment) error {
	switch align {
	case AlignLeft, AlignCenter, AlignRight, AlignTop, AlignMiddle, AlignBottom:
	default:
		return fmt.Errorf("align %q: %w", align, ErrInvalidValue)
	}
	if len(ids) == 0 {
		ids = s.Selection()
	}
	if len(ids) == 0 {
		return nil
	}

	page := s.pages[s.current]
	for _, id := range ids {
		if idx, _ := page.Find(id); idx < 0 {
			return fmt.Errorf("align %s: %w", id, ErrItemNotFound)
		}
	}

	area := s.WorkingArea()
	spread := s.SpreadRect()
	return s.mutate("align-items", func() error {
		page := s.pages[s.current]
		for _, id := range ids {
			_, it := page.Find(id)
			f := it.Base()
			switch align {
			case AlignLeft:
				f.X = area.X
			case AlignCenter:
				f.X = area.CenterX() - f.Width/2
			case AlignRight:
				f.X = area.Right() - f.Width
			case AlignTop:
				f.Y = area.Y
			case AlignMiddle:
				f.Y = area.CenterY() - f.Height/2
			case AlignBottom:
				f.Y = area.Bottom() - f.Height
			}
			f.X = clamp(math.Round(f.X), 0, spread.W-f.Width)
			f.Y = clamp(math.Round(f.Y), 0, spread.H-f.Height)
		}
		return nil
	})
}

// clamp limits v to [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Select replaces the selection. Unknown IDs are ignored.
func (s *Session) Select(ids ...string) {
	page := s.pages[s.current]
	s.selection = s.selection[:0]
	for _, id := range ids {
		if idx, _ := page.Find(id); idx >= 0 && !slices.Contains(s.selection, id) {
			s.selection = append(s.selection, id)
		}
	}
}

// ToggleSelect adds id to the selection or removes it if already selected.
func (s *Session) ToggleSelect(id string) {
	if i := slices.Index(s.selection, id); i >= 0 {
		s.selection = slices.Delete(s.selection, i, i+1)
		return
	}
	if idx, _ := s.pages[s.current].Find(id); idx >= 0 {
		s.selection = append(s.selection, id)
	}
}

// ClearSelection deselects everything.
func (s *Session) ClearSelection() {
	s.selection = nil
}
