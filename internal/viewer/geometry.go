package viewer

import "github.com/chewxy/math32"

// OverScaleFactor is how far past full-bleed the magnified scale goes.
const OverScaleFactor float32 = 1.5

// Geometry is derived from the view bounds and the bitmap size. It is
// recomputed whenever the view is resized.
type Geometry struct {
	ViewWidth, ViewHeight     float32
	BitmapWidth, BitmapHeight float32

	// OriginalOffsetX/Y center the unscaled bitmap in the view.
	OriginalOffsetX, OriginalOffsetY float32

	SmallScale float32 // whole bitmap fits in the view
	BigScale   float32 // bitmap overflows the view on both axes
}

// DefaultGeometry is used until the first valid size change.
func DefaultGeometry() Geometry {
	return Geometry{SmallScale: 1, BigScale: 1}
}

// ComputeGeometry fits a bitmap into a view. It returns false, and a zero
// Geometry, when any dimension is not positive.
func ComputeGeometry(viewW, viewH, bitmapW, bitmapH float32) (Geometry, bool) {
	if viewW <= 0 || viewH <= 0 || bitmapW <= 0 || bitmapH <= 0 {
		return Geometry{}, false
	}

	g := Geometry{
		ViewWidth:       viewW,
		ViewHeight:      viewH,
		BitmapWidth:     bitmapW,
		BitmapHeight:    bitmapH,
		OriginalOffsetX: (viewW - bitmapW) / 2,
		OriginalOffsetY: (viewH - bitmapH) / 2,
	}

	widthRatio := viewW / bitmapW
	heightRatio := viewH / bitmapH
	if widthRatio > heightRatio {
		g.SmallScale = heightRatio
		g.BigScale = widthRatio * OverScaleFactor
	} else {
		g.BigScale = heightRatio * OverScaleFactor
		g.SmallScale = widthRatio
	}
	return g, true
}

// Valid reports whether g was computed from real dimensions.
func (g Geometry) Valid() bool {
	return g.ViewWidth > 0 && g.ViewHeight > 0 && g.BitmapWidth > 0 && g.BitmapHeight > 0
}

// ScaleAt interpolates between SmallScale (fraction 0) and BigScale (1).
func (g Geometry) ScaleAt(fraction float32) float32 {
	return g.SmallScale + (g.BigScale-g.SmallScale)*fraction
}

// Overflow is how far the magnified bitmap extends past the view on each axis.
func (g Geometry) Overflow() (x, y float32) {
	return g.BitmapWidth*g.BigScale - g.ViewWidth, g.BitmapHeight*g.BigScale - g.ViewHeight
}

// PanBounds returns the largest offset a drag may reach on each axis: half
// the overflow, so the magnified bitmap always covers the view.
func (g Geometry) PanBounds() (maxX, maxY float32) {
	ox, oy := g.Overflow()
	return math32.Max(ox/2, 0), math32.Max(oy/2, 0)
}

// FlingBounds returns the limits handed to the fling simulator. These span
// the full overflow, twice the drag bounds.
func (g Geometry) FlingBounds() (minX, maxX, minY, maxY int) {
	ox, oy := g.Overflow()
	return -int(ox), int(ox), -int(oy), int(oy)
}
