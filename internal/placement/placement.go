// Package placement finds a free rectangle for a new photo on a page.
//
// The planner scans candidate top-left positions in row-major order with a
// fixed step and accepts the first candidate that overlaps no obstacle. When
// the full-size rectangle fits nowhere, the scan repeats at 90%, 80%, ...
// down to 50% of the target size.
package placement

import (
	"errors"
	"math"

	"github.com/kozaktomas/album-editor/internal/constants"
	"github.com/kozaktomas/album-editor/internal/geometry"
)

// ErrNoFreeSlot is returned in strict mode when no shrink level yields a
// non-overlapping rectangle.
var ErrNoFreeSlot = errors.New("no free slot for placement")

// Mode selects how placement exhaustion is reported.
type Mode int

const (
	// ModePermissive returns the last scanned candidate at the smallest
	// shrink level even if it overlaps an existing item.
	ModePermissive Mode = iota
	// ModeStrict returns ErrNoFreeSlot instead of an overlapping rectangle.
	ModeStrict
)

// String returns the mode name used in configuration.
func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "permissive"
}

// Result is the outcome of a placement.
type Result struct {
	Rect geometry.Rect
	// Scale is the shrink factor at which the rectangle was found (1.0 = full size).
	Scale float64
	// Overlapping is true when the planner fell back to an overlapping rectangle.
	Overlapping bool
}

// Planner computes collision-free placements.
type Planner struct {
	Step float64
	Mode Mode
}

// NewPlanner returns a planner with the default scan step.
func NewPlanner(mode Mode) *Planner {
	return &Planner{Step: constants.PlacementStep, Mode: mode}
}

// DesiredSize returns the size of a rectangle with aspect ratio ar and width
// targetWidth (constants.DefaultTargetWidthRatio of the area width when
// targetWidth is not positive), shrunk on its limiting dimension to fit area.
func DesiredSize(area geometry.Rect, ar, targetWidth float64) (w, h float64) {
	if ar <= 0 || math.IsNaN(ar) || math.IsInf(ar, 0) {
		ar = constants.DefaultAspectRatio
	}
	if targetWidth <= 0 || math.IsNaN(targetWidth) || math.IsInf(targetWidth, 0) {
		targetWidth = area.W * constants.DefaultTargetWidthRatio
	}
	w = targetWidth
	h = w / ar
	if w > area.W {
		w = area.W
		h = w / ar
	}
	if h > area.H {
		h = area.H
		w = h * ar
	}
	return w, h
}

// Plan finds a rectangle with aspect ratio ar inside area that overlaps none
// of obstacles. The earliest row-major scan position at the largest scale wins.
// The returned rectangle has integer coordinates, so committing it needs no
// further rounding.
func (p *Planner) Plan(area geometry.Rect, ar, targetWidth float64, obstacles []geometry.Rect) (Result, error) {
	step := math.Round(p.Step)
	if step <= 0 {
		step = constants.PlacementStep
	}
	if ar <= 0 || math.IsNaN(ar) || math.IsInf(ar, 0) {
		ar = constants.DefaultAspectRatio
	}

	area = area.RoundInward()
	w, _ := DesiredSize(area, ar, targetWidth)

	var last geometry.Rect
	var lastScale float64
	// Iterate shrink levels by integer tenths to avoid float drift (1.0, 0.9, ... 0.5).
	maxLevel := int(math.Round(1 / constants.ShrinkStep))
	minLevel := int(math.Round(constants.MinShrinkFactor / constants.ShrinkStep))
	for level := maxLevel; level >= minLevel; level-- {
		scale := float64(level) * constants.ShrinkStep
		sw, sh := pixelSize(w*scale, ar, area)

		rect, found, scanned := scan(area, sw, sh, step, obstacles)
		if found {
			return Result{Rect: rect, Scale: scale}, nil
		}
		last, lastScale = scanned, scale
	}

	if p.Mode == ModeStrict {
		return Result{}, ErrNoFreeSlot
	}
	return Result{Rect: last, Scale: lastScale, Overlapping: true}, nil
}

// scan walks candidate positions in row-major order. It returns the first
// free rectangle, or the last scanned candidate when none is free.
func scan(area geometry.Rect, w, h, step float64, obstacles []geometry.Rect) (geometry.Rect, bool, geometry.Rect) {
	last := geometry.Rect{X: area.X, Y: area.Y, W: w, H: h}
	maxX := area.Right() - w
	maxY := area.Bottom() - h

	for y := area.Y; y <= maxY; y += step {
		for x := area.X; x <= maxX; x += step {
			candidate := geometry.Rect{X: x, Y: y, W: w, H: h}
			last = candidate
			if !collides(candidate, obstacles) {
				return candidate, true, last
			}
		}
	}
	return geometry.Rect{}, false, last
}

// pixelSize converts a width to whole-pixel dimensions preserving ar and
// fitting inside area.
func pixelSize(w, ar float64, area geometry.Rect) (float64, float64) {
	w = math.Floor(w)
	h := math.Round(w / ar)
	if h > area.H {
		h = math.Floor(area.H)
		w = math.Floor(h * ar)
	}
	return math.Max(1, w), math.Max(1, h)
}

func collides(r geometry.Rect, obstacles []geometry.Rect) bool {
	for _, o := range obstacles {
		if geometry.Overlaps(r, o) {
			return true
		}
	}
	return false
}
