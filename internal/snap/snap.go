// Package snap computes magnetic alignment for items dragged across a page.
//
// Candidate values are collected once per gesture with Candidates. During the
// drag every pointer move is passed through Magnetize (or Gesture.Move), which
// shifts the moving rectangle so one of its reference points lands exactly on
// the closest candidate within tolerance. X and Y are resolved independently.
package snap

import (
	"math"

	"github.com/kozaktomas/album-editor/internal/album"
	"github.com/kozaktomas/album-editor/internal/geometry"
)

// Targets holds candidate snap values per axis in priority order.
type Targets struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Guides are the matched snap values the renderer draws as alignment lines.
// A nil axis means nothing matched on that axis.
type Guides struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// Empty reports whether no guide is active.
func (g Guides) Empty() bool {
	return g.X == nil && g.Y == nil
}

// Result is the outcome of a single magnetize call.
type Result struct {
	Rect   geometry.Rect `json:"rect"`
	Guides Guides        `json:"guides"`
}

// Snapped reports whether either axis snapped.
func (r Result) Snapped() bool {
	return !r.Guides.Empty()
}

// Candidates collects snap values for the item movingID on page.
// Page guides come first (bleed inset, centre line, far edge minus bleed),
// followed by every other photo in z-order (left, right, centre for X and
// top, bottom, centre for Y). Text items are not snap targets.
func Candidates(page *album.Page, movingID string, pageW, pageH, bleed float64) Targets {
	t := Targets{
		X: []float64{bleed, pageW / 2, pageW - bleed},
		Y: []float64{bleed, pageH / 2, pageH - bleed},
	}
	if page == nil {
		return t
	}
	for _, p := range page.Photos() {
		if p.ID == movingID {
			continue
		}
		r := p.Rect()
		t.X = append(t.X, r.X, r.Right(), r.CenterX())
		t.Y = append(t.Y, r.Y, r.Bottom(), r.CenterY())
	}
	return t
}

// Magnetize snaps r to targets. On each axis the (reference point, candidate)
// pair with the smallest distance not above tol wins; candidates are visited
// in order and, for each, the left/top edge, right/bottom edge and centre are
// tried in that order. The first pair found keeps a tie.
func Magnetize(r geometry.Rect, targets Targets, tol float64) Result {
	res := Result{Rect: r}

	if ref, v, ok := nearest([3]float64{r.X, r.Right(), r.CenterX()}, targets.X, tol); ok {
		res.Rect.X = place(ref, v, r.W)
		res.Guides.X = &v
	}
	if ref, v, ok := nearest([3]float64{r.Y, r.Bottom(), r.CenterY()}, targets.Y, tol); ok {
		res.Rect.Y = place(ref, v, r.H)
		res.Guides.Y = &v
	}
	return res
}

const (
	refStart = iota
	refEnd
	refCenter
)

// place returns the origin that puts reference point ref exactly on v.
func place(ref int, v, size float64) float64 {
	switch ref {
	case refStart:
		return v
	case refEnd:
		return v - size
	default:
		return v - size/2
	}
}

// nearest returns the index of the winning reference point and its candidate.
func nearest(refs [3]float64, candidates []float64, tol float64) (ref int, value float64, ok bool) {
	if tol < 0 || !album.IsFinite(tol) {
		return 0, 0, false
	}
	best := math.Inf(1)
	for _, c := range candidates {
		if !album.IsFinite(c) {
			continue
		}
		for i, r := range refs {
			d := math.Abs(c - r)
			if d > tol || d >= best {
				continue
			}
			best, ref, value, ok = d, i, c, true
		}
	}
	return ref, value, ok
}

// GridRound rounds v to the nearest multiple of size. A non-positive size
// leaves v unchanged.
func GridRound(v, size float64) float64 {
	if size <= 0 || !album.IsFinite(size) {
		return v
	}
	return math.Round(v/size) * size
}
