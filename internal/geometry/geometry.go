// Package geometry provides axis-aligned rectangle primitives shared by the
// placement planner, layout generator and snap engine.
package geometry

import "math"

// Rect is an axis-aligned rectangle in pixel space. X and Y are the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Aspect returns W/H, or 0 for a degenerate rectangle.
func (r Rect) Aspect() float64 {
	if r.H <= 0 {
		return 0
	}
	return r.W / r.H
}

// Inset shrinks the rectangle by d on every side. A negative result size is clamped to zero.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		X: r.X + d,
		Y: r.Y + d,
		W: math.Max(0, r.W-2*d),
		H: math.Max(0, r.H-2*d),
	}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Overlaps reports whether two rectangles overlap. Rectangles that only share
// an edge do not overlap: two rects overlap unless one lies entirely to the
// left, right, above or below the other.
func Overlaps(a, b Rect) bool {
	return !(a.Right() <= b.X ||
		b.Right() <= a.X ||
		a.Bottom() <= b.Y ||
		b.Bottom() <= a.Y)
}

// containsEpsilon absorbs float rounding when checking containment.
const containsEpsilon = 1e-6

// Contains reports whether inner lies fully inside outer.
func Contains(outer, inner Rect) bool {
	return inner.X >= outer.X-containsEpsilon &&
		inner.Y >= outer.Y-containsEpsilon &&
		inner.Right() <= outer.Right()+containsEpsilon &&
		inner.Bottom() <= outer.Bottom()+containsEpsilon
}

// FitAspect fits a rectangle with aspect ratio ar into cell and centers it.
// When ar is wider than the cell the result spans the cell width, otherwise
// it spans the cell height.
func FitAspect(cell Rect, ar float64) Rect {
	if ar <= 0 || math.IsNaN(ar) || math.IsInf(ar, 0) {
		return cell
	}
	var w, h float64
	if ar > cell.Aspect() {
		w = cell.W
		h = w / ar
	} else {
		h = cell.H
		w = h * ar
	}
	return Rect{
		X: cell.X + (cell.W-w)/2,
		Y: cell.Y + (cell.H-h)/2,
		W: w,
		H: h,
	}
}

// Round returns the rectangle with every coordinate rounded to the nearest integer.
func (r Rect) Round() Rect {
	return Rect{X: math.Round(r.X), Y: math.Round(r.Y), W: math.Round(r.W), H: math.Round(r.H)}
}

// RoundInward returns the largest rectangle with integer edges inside r.
// Edges within float noise of an integer stay on it.
func (r Rect) RoundInward() Rect {
	x := math.Ceil(r.X - containsEpsilon)
	y := math.Ceil(r.Y - containsEpsilon)
	right := math.Floor(r.Right() + containsEpsilon)
	bottom := math.Floor(r.Bottom() + containsEpsilon)
	return Rect{X: x, Y: y, W: math.Max(0, right-x), H: math.Max(0, bottom-y)}
}
