package anim

import (
	"github.com/chewxy/math32"
	"github.com/matjam/zoomview/internal/types"
)

// Ease maps a linear progress t in [0,1] through the named curve. Unknown
// modes fall back to linear. Every curve is monotonic and fixes 0 and 1.
func Ease(mode types.EasingMode, t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch mode {
	case types.EasingLinear:
		return t
	case types.EasingEaseIn:
		return t * t
	case types.EasingEaseOut:
		return t * (2 - t)
	case types.EasingEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		} else {
			return -1 + (4-2*t)*t
		}
	case types.EasingAccelerateDecelerate:
		return math32.Cos((t+1)*math32.Pi)/2 + 0.5
	default:
		return t
	}
}

// ValidEasing reports whether mode names a known curve.
func ValidEasing(mode types.EasingMode) bool {
	switch mode {
	case types.EasingLinear, types.EasingEaseIn, types.EasingEaseOut,
		types.EasingEaseInOut, types.EasingAccelerateDecelerate:
		return true
	}
	return false
}
