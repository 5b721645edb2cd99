package album

import (
	"math"

	"github.com/kozaktomas/album-editor/internal/constants"
)

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SafeNumber returns v when it is finite, otherwise fallback.
func SafeNumber(v, fallback float64) float64 {
	if IsFinite(v) {
		return v
	}
	return fallback
}

// SafeDimension returns v clamped to constants.MinItemSize, or fallback
// (also clamped) when v is not finite.
func SafeDimension(v, fallback float64) float64 {
	return math.Max(constants.MinItemSize, SafeNumber(v, fallback))
}

// ResolveAR returns width/height, or constants.DefaultAspectRatio when either
// dimension is zero, negative or not finite.
func ResolveAR(width, height float64) float64 {
	if !IsFinite(width) || !IsFinite(height) || width <= 0 || height <= 0 {
		return constants.DefaultAspectRatio
	}
	ar := width / height
	if !IsFinite(ar) || ar <= 0 {
		return constants.DefaultAspectRatio
	}
	return ar
}
