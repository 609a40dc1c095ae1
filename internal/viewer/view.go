// Package viewer implements a pan/zoom image view. A double tap toggles
// between a fit-to-view scale and a magnified scale; while magnified the
// image can be dragged and flung.
//
// All methods must be called from the goroutine that runs the frame
// scheduler. The view holds no locks.
package viewer

import (
	"image"
	"time"

	"github.com/charmbracelet/log"
)

// View owns the bitmap, its geometry and the interaction state, and turns
// gesture callbacks into state changes and redraw requests.
type View struct {
	bitmap image.Image
	geom   Geometry
	state  State

	scheduler   FrameScheduler
	scroller    FlingSimulator
	newAnimator AnimatorFactory
	animator    Animator

	flingGen uint64
	flinging bool
}

// New creates a view for bitmap. The animator is built lazily through
// newAnimator and reused for every toggle.
func New(bitmap image.Image, scheduler FrameScheduler, scroller FlingSimulator, newAnimator AnimatorFactory) *View {
	return &View{
		bitmap:      bitmap,
		geom:        DefaultGeometry(),
		scheduler:   scheduler,
		scroller:    scroller,
		newAnimator: newAnimator,
	}
}

func (v *View) Bitmap() image.Image { return v.bitmap }

func (v *View) Geometry() Geometry { return v.geom }

func (v *View) State() State { return v.state }

func (v *View) Transform() Transform { return v.state.Transform(v.geom) }

// Flinging reports whether a fling is still being advanced frame by frame.
func (v *View) Flinging() bool { return v.flinging }

// Animating reports whether the scale animation is running.
func (v *View) Animating() bool { return v.animator != nil && v.animator.Running() }

// OnSizeChanged recomputes the geometry for new view bounds. Degenerate
// sizes keep the previous geometry.
func (v *View) OnSizeChanged(width, height int) {
	b := v.bitmap.Bounds()
	g, ok := ComputeGeometry(float32(width), float32(height), float32(b.Dx()), float32(b.Dy()))
	if !ok {
		log.Debugf("ignoring size %dx%d for %dx%d bitmap", width, height, b.Dx(), b.Dy())
		return
	}
	v.geom = g
	log.Debugf("geometry: view %vx%v small %.3f big %.3f origin (%.1f, %.1f)",
		g.ViewWidth, g.ViewHeight, g.SmallScale, g.BigScale, g.OriginalOffsetX, g.OriginalOffsetY)
}

// OnDown accepts every gesture and stops a fling in progress.
func (v *View) OnDown(x, y float32) bool {
	if v.flinging {
		v.stopFling()
	}
	return true
}

// OnScroll pans a magnified view by the drag distance.
func (v *View) OnScroll(distanceX, distanceY float32) bool {
	log.Debugf("distanceX:%v;distanceY:%v", distanceX, distanceY)
	next, redraw := v.state.Pan(v.geom, distanceX, distanceY)
	v.state = next
	if redraw {
		v.scheduler.Invalidate()
	}
	return false
}

// OnDoubleTap toggles between the fit and magnified scales and animates the
// change.
func (v *View) OnDoubleTap(x, y float32) bool {
	v.state = v.state.Toggle()
	a := v.getAnimator()
	if v.state.Big {
		a.Start()
	} else {
		a.Reverse()
	}
	return false
}

// OnFling hands a magnified view to the fling simulator and advances it once
// per frame until it comes to rest.
//
// The fling bounds span the full overflow while drags are clamped to half of
// it, so a fling can carry the image further than a drag can. Kept as is
// pending a product decision.
func (v *View) OnFling(velocityX, velocityY float32) bool {
	if !v.state.Big {
		return false
	}
	minX, maxX, minY, maxY := v.geom.FlingBounds()
	v.scroller.Fling(int(v.state.OffsetX), int(v.state.OffsetY), int(velocityX), int(velocityY),
		minX, maxX, minY, maxY)

	v.flingGen++
	v.flinging = true
	v.postFlingFrame(v.flingGen)
	return false
}

// Draw paints the bitmap under the current transform. It draws nothing
// until the view has had a valid size.
func (v *View) Draw(c Canvas) {
	if !v.geom.Valid() {
		return
	}
	t := v.Transform()

	c.Save()
	c.Translate(t.OffsetX, t.OffsetY)
	c.Scale(t.Scale, t.Scale, t.PivotX, t.PivotY)
	c.DrawImage(v.bitmap, t.OriginX, t.OriginY)
	c.Restore()
}

func (v *View) setScaleFraction(fraction float32) {
	next, redraw := v.state.WithFraction(fraction)
	v.state = next
	if redraw {
		v.scheduler.Invalidate()
	}
}

func (v *View) getAnimator() Animator {
	if v.animator == nil {
		v.animator = v.newAnimator(v.setScaleFraction)
	}
	return v.animator
}

func (v *View) postFlingFrame(gen uint64) {
	v.scheduler.PostFrameCallback(func(now time.Time) { v.advanceFling(gen, now) })
}

func (v *View) advanceFling(gen uint64, now time.Time) {
	// a newer fling, or a touch, owns the scroller now
	if gen != v.flingGen {
		return
	}
	if !v.scroller.ComputeScrollOffset(now) {
		v.flinging = false
		return
	}

	next, redraw := v.state.WithOffset(float32(v.scroller.CurrX()), float32(v.scroller.CurrY()))
	v.state = next
	if redraw {
		v.scheduler.Invalidate()
	}
	v.postFlingFrame(gen)
}

func (v *View) stopFling() {
	v.flingGen++
	v.flinging = false
	v.scroller.ForceFinished()
}
