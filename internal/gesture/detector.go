// Package gesture turns a stream of single-pointer touch events into down,
// scroll, fling and double-tap callbacks.
package gesture

import (
	"time"

	"github.com/chewxy/math32"
	"golang.org/x/mobile/event/touch"
)

// Defaults in density-independent pixels and milliseconds.
const (
	TouchSlopDp         = 8
	DoubleTapSlopDp     = 100
	MinFlingVelocityDp  = 50
	MaxFlingVelocityDp  = 8000
	DoubleTapTimeout    = 300 * time.Millisecond
	DoubleTapMinTime    = 40 * time.Millisecond
	defaultDensity      = 1.0
	minScrollStepPixels = 1
)

// Listener receives recognized gestures. Scroll distances are the previous
// pointer position minus the current one, so they are positive when the
// finger moves up or left. Return values report whether the event was
// consumed.
type Listener interface {
	OnDown(x, y float32) bool
	OnScroll(distanceX, distanceY float32) bool
	OnFling(velocityX, velocityY float32) bool
	OnDoubleTap(x, y float32) bool
}

// Detector recognizes gestures from one pointer. It must be fed from a single
// goroutine.
type Detector struct {
	listener Listener

	touchSlopSquare     float32
	doubleTapSlopSquare float32
	minFlingVelocity    float32
	maxFlingVelocity    float32

	tracker VelocityTracker

	down              bool
	downX, downY      float32
	lastX, lastY      float32
	alwaysInTapRegion bool
	isDoubleTapping   bool

	hasPreviousTap bool
	previousUp     time.Time
	previousDownX  float32
	previousDownY  float32
}

// NewDetector returns a detector whose thresholds are scaled by density
// (pixels per density-independent pixel).
func NewDetector(listener Listener, density float32) *Detector {
	if density <= 0 {
		density = defaultDensity
	}
	touchSlop := TouchSlopDp * density
	doubleTapSlop := DoubleTapSlopDp * density
	return &Detector{
		listener:            listener,
		touchSlopSquare:     touchSlop * touchSlop,
		doubleTapSlopSquare: doubleTapSlop * doubleTapSlop,
		minFlingVelocity:    MinFlingVelocityDp * density,
		maxFlingVelocity:    MaxFlingVelocityDp * density,
	}
}

// OnTouchEvent feeds one event observed at the given time. Only the
// TypeBegin/TypeMove/TypeEnd lifecycle of a single sequence is tracked.
func (d *Detector) OnTouchEvent(e touch.Event, at time.Time) bool {
	switch e.Type {
	case touch.TypeBegin:
		return d.onBegin(e.X, e.Y, at)
	case touch.TypeMove:
		return d.onMove(e.X, e.Y, at)
	case touch.TypeEnd:
		return d.onEnd(e.X, e.Y, at)
	}
	return false
}

func (d *Detector) onBegin(x, y float32, at time.Time) bool {
	isDoubleTap := d.isConsideredDoubleTap(x, y, at)

	d.tracker.Clear()
	d.tracker.Add(at, x, y)

	d.down = true
	d.downX, d.downY = x, y
	d.lastX, d.lastY = x, y
	d.alwaysInTapRegion = true

	handled := d.listener.OnDown(x, y)
	if isDoubleTap {
		d.isDoubleTapping = true
		handled = d.listener.OnDoubleTap(x, y) || handled
	}
	return handled
}

func (d *Detector) onMove(x, y float32, at time.Time) bool {
	if !d.down {
		return false
	}
	d.tracker.Add(at, x, y)

	if d.isDoubleTapping {
		return true
	}

	scrollX := d.lastX - x
	scrollY := d.lastY - y

	if d.alwaysInTapRegion {
		dx := x - d.downX
		dy := y - d.downY
		if dx*dx+dy*dy <= d.touchSlopSquare {
			return false
		}
		d.alwaysInTapRegion = false
	} else if math32.Abs(scrollX) < minScrollStepPixels && math32.Abs(scrollY) < minScrollStepPixels {
		return false
	}

	d.lastX, d.lastY = x, y
	return d.listener.OnScroll(scrollX, scrollY)
}

func (d *Detector) onEnd(x, y float32, at time.Time) bool {
	if !d.down {
		return false
	}
	d.down = false
	d.tracker.Add(at, x, y)

	if d.isDoubleTapping {
		// the second tap of a double tap never starts a third
		d.isDoubleTapping = false
		d.hasPreviousTap = false
		return true
	}

	if d.alwaysInTapRegion {
		d.hasPreviousTap = true
		d.previousUp = at
		d.previousDownX, d.previousDownY = d.downX, d.downY
		return false
	}

	d.hasPreviousTap = false
	vx, vy := d.tracker.Velocity(d.maxFlingVelocity)
	if math32.Abs(vx) > d.minFlingVelocity || math32.Abs(vy) > d.minFlingVelocity {
		return d.listener.OnFling(vx, vy)
	}
	return false
}

func (d *Detector) isConsideredDoubleTap(x, y float32, at time.Time) bool {
	if !d.hasPreviousTap {
		return false
	}
	delta := at.Sub(d.previousUp)
	if delta > DoubleTapTimeout || delta < DoubleTapMinTime {
		return false
	}
	dx := x - d.previousDownX
	dy := y - d.previousDownY
	return dx*dx+dy*dy < d.doubleTapSlopSquare
}
