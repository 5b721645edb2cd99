package editor

import (
	"fmt"

	"github.com/kozaktomas/album-editor/internal/album"
)

func positive(name string, v float64) error {
	if v <= 0 || !album.IsFinite(v) {
		return fmt.Errorf("%s %v: %w", name, v, ErrInvalidValue)
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if v < 0 || !album.IsFinite(v) {
		return fmt.Errorf("%s %v: %w", name, v, ErrInvalidValue)
	}
	return nil
}

// SetSize changes the album page size. Item geometry is left as is.
func (s *Session) SetSize(size album.Size) error {
	if err := positive("width", size.WidthCm); err != nil {
		return err
	}
	if err := positive("height", size.HeightCm); err != nil {
		return err
	}
	return s.mutate("set-size", func() error {
		s.size = size
		return nil
	})
}

// SetBleed changes the bleed margin in millimetres.
func (s *Session) SetBleed(mm float64) error {
	if err := nonNegative("bleed", mm); err != nil {
		return err
	}
	return s.mutate("set-bleed", func() error {
		s.bleedMm = mm
		return nil
	})
}

// SetDPI changes the print resolution used for unit conversion.
func (s *Session) SetDPI(dpi float64) error {
	if err := positive("dpi", dpi); err != nil {
		return err
	}
	s.settings.DPI = dpi
	return nil
}

// SetSafe changes the safe-area margin in millimetres.
func (s *Session) SetSafe(mm float64) error {
	if err := nonNegative("safe margin", mm); err != nil {
		return err
	}
	s.settings.SafeMm = mm
	return nil
}

// SetZoom changes the canvas zoom factor.
func (s *Session) SetZoom(zoom float64) error {
	if err := positive("zoom", zoom); err != nil {
		return err
	}
	s.settings.Zoom = zoom
	return nil
}

// SetGrid toggles grid snapping. A non-positive size keeps the current one.
func (s *Session) SetGrid(enabled bool, size float64) {
	s.settings.Grid = enabled
	if size > 0 && album.IsFinite(size) {
		s.settings.GridSize = size
	}
}

// SetGuides toggles the bleed/safe guide overlay.
func (s *Session) SetGuides(enabled bool) {
	s.settings.Guides = enabled
}

// SetMagnet toggles magnetic snapping while dragging.
func (s *Session) SetMagnet(enabled bool) {
	s.settings.Magnet = enabled
}

// SetMagnetTolerance sets the distance at which magnet snapping engages.
func (s *Session) SetMagnetTolerance(px float64) error {
	if err := nonNegative("magnet tolerance", px); err != nil {
		return err
	}
	s.settings.MagnetTolerance = px
	return nil
}
