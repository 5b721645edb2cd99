package snap

import (
	"github.com/kozaktomas/album-editor/internal/geometry"
)

// Options configure a drag gesture.
type Options struct {
	Magnet    bool
	Tolerance float64
	Grid      bool
	GridSize  float64
}

// Gesture tracks one drag from pointer down to pointer up. Magnet snapping
// and grid rounding are mutually exclusive per gesture: once the magnet has
// fired, End leaves the position alone.
type Gesture struct {
	ItemID  string
	targets Targets
	opts    Options
	fired   bool
	guides  Guides
}

// NewGesture starts a gesture for itemID against the given targets.
func NewGesture(itemID string, targets Targets, opts Options) *Gesture {
	return &Gesture{ItemID: itemID, targets: targets, opts: opts}
}

// Move handles a pointer move. Each call fully supersedes the previous one.
func (g *Gesture) Move(r geometry.Rect) Result {
	if !g.opts.Magnet {
		g.guides = Guides{}
		return Result{Rect: r}
	}
	res := Magnetize(r, g.targets, g.opts.Tolerance)
	if res.Snapped() {
		g.fired = true
	}
	g.guides = res.Guides
	return res
}

// End finishes the gesture and returns the final rectangle. Active guides
// are cleared.
func (g *Gesture) End(r geometry.Rect) geometry.Rect {
	g.guides = Guides{}
	if g.fired || !g.opts.Grid {
		return r
	}
	r.X = GridRound(r.X, g.opts.GridSize)
	r.Y = GridRound(r.Y, g.opts.GridSize)
	return r
}

// Guides returns the guides produced by the latest Move.
func (g *Gesture) Guides() Guides {
	return g.guides
}

// MagnetFired reports whether the magnet engaged at least once.
func (g *Gesture) MagnetFired() bool {
	return g.fired
}
