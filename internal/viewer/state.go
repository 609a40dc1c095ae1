package viewer

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f64"
)

// State is the interaction state of a view. The zero value is at rest: no
// pan, fit-to-view scale.
type State struct {
	OffsetX       float32 `json:"offset_x"`
	OffsetY       float32 `json:"offset_y"`
	Big           bool    `json:"big"`
	ScaleFraction float32 `json:"scale_fraction"`
}

// Pan applies a drag by (distanceX, distanceY), positive when the pointer
// moved up or left. It only moves a magnified view, and reports whether the
// view needs a redraw.
func (s State) Pan(g Geometry, distanceX, distanceY float32) (State, bool) {
	if !s.Big {
		return s, false
	}
	maxX, maxY := g.PanBounds()
	s.OffsetX = clamp(s.OffsetX-distanceX, -maxX, maxX)
	s.OffsetY = clamp(s.OffsetY-distanceY, -maxY, maxY)
	return s, true
}

// Toggle flips between the fit and magnified levels. The scale fraction is
// left to the animator.
func (s State) Toggle() State {
	s.Big = !s.Big
	return s
}

// WithFraction sets the scale fraction, clamped to [0,1].
func (s State) WithFraction(fraction float32) (State, bool) {
	s.ScaleFraction = clamp(fraction, 0, 1)
	return s, true
}

// WithOffset moves the view to an absolute offset.
func (s State) WithOffset(x, y float32) (State, bool) {
	s.OffsetX, s.OffsetY = x, y
	return s, true
}

// Transform derives the render transform for s under g.
func (s State) Transform(g Geometry) Transform {
	return Transform{
		OffsetX: s.OffsetX,
		OffsetY: s.OffsetY,
		Scale:   g.ScaleAt(s.ScaleFraction),
		PivotX:  g.ViewWidth / 2,
		PivotY:  g.ViewHeight / 2,
		OriginX: g.OriginalOffsetX,
		OriginY: g.OriginalOffsetY,
	}
}

// Transform places the bitmap on screen: translate by the offset, scale about
// the pivot, then draw the bitmap at the origin.
type Transform struct {
	OffsetX, OffsetY float32
	Scale            float32
	PivotX, PivotY   float32
	OriginX, OriginY float32
}

// Apply maps a bitmap pixel coordinate to a screen coordinate.
func (t Transform) Apply(u, v float32) (x, y float32) {
	x = t.OffsetX + t.PivotX + t.Scale*(t.OriginX+u-t.PivotX)
	y = t.OffsetY + t.PivotY + t.Scale*(t.OriginY+v-t.PivotY)
	return x, y
}

// Matrix returns t as an affine matrix from bitmap to screen coordinates.
func (t Transform) Matrix() f64.Aff3 {
	s := float64(t.Scale)
	tx, ty := t.Apply(0, 0)
	return f64.Aff3{
		s, 0, float64(tx),
		0, s, float64(ty),
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
