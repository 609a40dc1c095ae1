package viewer

import (
	"image"
	"time"
)

// Animator plays the scale fraction between 0 and 1. Start plays towards 1,
// Reverse towards 0; both turn a running animation around in place.
type Animator interface {
	Start()
	Reverse()
	Running() bool
}

// AnimatorFactory builds the animator on first use. set receives every
// animated value.
type AnimatorFactory func(set func(float32)) Animator

// FlingSimulator integrates a fling inside bounds.
type FlingSimulator interface {
	Fling(startX, startY, velocityX, velocityY, minX, maxX, minY, maxY int)
	// ComputeScrollOffset advances to now and reports whether there is a
	// position to apply.
	ComputeScrollOffset(now time.Time) bool
	CurrX() int
	CurrY() int
	// ForceFinished abandons the fling at its current position.
	ForceFinished()
}

// FrameScheduler runs callbacks on the next frame and collects redraw
// requests.
type FrameScheduler interface {
	PostFrameCallback(cb func(frameTime time.Time))
	Invalidate()
}

// Canvas is a drawing surface with a transform stack.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float32)
	// Scale scales by (sx, sy) about the pivot (px, py).
	Scale(sx, sy, px, py float32)
	DrawImage(img image.Image, x, y float32)
}
