package units

import (
	"math"
	"testing"

	"github.com/kozaktomas/album-editor/internal/constants"
)

func TestCmMmConsistency(t *testing.T) {
	for _, dpi := range []float64{72, 96, 150, 300, 600, 1200} {
		c := NewConverter(dpi)
		if math.Abs(c.CmToPx(1)-c.MmToPx(10)) > 1e-9 {
			t.Errorf("dpi %v: CmToPx(1) = %v, MmToPx(10) = %v", dpi, c.CmToPx(1), c.MmToPx(10))
		}
	}
}

func TestCmToPx(t *testing.T) {
	c := NewConverter(254)
	if got := c.CmToPx(2.54); math.Abs(got-254) > 1e-9 {
		t.Errorf("CmToPx(2.54) = %v, want 254", got)
	}
	if got := c.MmToPx(25.4); math.Abs(got-254) > 1e-9 {
		t.Errorf("MmToPx(25.4) = %v, want 254", got)
	}
}

func TestRoundTrip(t *testing.T) {
	c := NewConverter(300)
	if got := c.PxToCm(c.CmToPx(21)); math.Abs(got-21) > 1e-9 {
		t.Errorf("PxToCm(CmToPx(21)) = %v", got)
	}
	if got := c.PxToMm(c.MmToPx(3)); math.Abs(got-3) > 1e-9 {
		t.Errorf("PxToMm(MmToPx(3)) = %v", got)
	}
}

func TestNewConverter_InvalidDPI(t *testing.T) {
	for _, dpi := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		if c := NewConverter(dpi); c.DPI != constants.DefaultDPI {
			t.Errorf("NewConverter(%v).DPI = %v, want %v", dpi, c.DPI, constants.DefaultDPI)
		}
	}
}

func TestSpreadSize(t *testing.T) {
	c := NewConverter(254)
	w, h := c.SpreadSize(20, 10)
	if math.Abs(w-4000) > 1e-9 || math.Abs(h-1000) > 1e-9 {
		t.Errorf("SpreadSize(20, 10) = (%v, %v), want (4000, 1000)", w, h)
	}
}

func TestWorkingArea(t *testing.T) {
	c := NewConverter(254)
	// 20x10cm page -> 4000x1000px spread, bleed 10mm -> 100px.
	area := c.WorkingArea(20, 10, 10)
	if math.Abs(area.X-100) > 1e-9 || math.Abs(area.Y-100) > 1e-9 {
		t.Errorf("WorkingArea origin = (%v, %v), want (100, 100)", area.X, area.Y)
	}
	if math.Abs(area.W-3800) > 1e-9 || math.Abs(area.H-800) > 1e-9 {
		t.Errorf("WorkingArea size = (%v, %v), want (3800, 800)", area.W, area.H)
	}

	safe := c.SafeArea(20, 10, 10, 5)
	if math.Abs(safe.X-150) > 1e-9 {
		t.Errorf("SafeArea.X = %v, want 150", safe.X)
	}
}
