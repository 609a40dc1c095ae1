// Package anim drives a float property between 0 and 1 over a fixed duration.
package anim

import (
	"time"

	"github.com/matjam/zoomview/internal/types"
)

const DefaultDuration = 300 * time.Millisecond

// FrameScheduler is the part of the frame loop the animator needs.
type FrameScheduler interface {
	PostFrameCallback(cb func(frameTime time.Time))
}

// FloatAnimator writes an eased value in [0,1] to a property once per frame.
// A single animator is meant to be reused: Start and Reverse turn a running
// animation around from wherever it is instead of starting a second one.
type FloatAnimator struct {
	Duration time.Duration
	Easing   types.EasingMode

	scheduler FrameScheduler
	set       func(float32)

	running   bool
	target    float32
	pos       float32 // linear position along the 0..1 track
	startPos  float32
	startTime time.Time
	gen       uint64
}

func NewFloatAnimator(scheduler FrameScheduler, set func(float32)) *FloatAnimator {
	return &FloatAnimator{
		Duration:  DefaultDuration,
		Easing:    types.EasingEaseInOut,
		scheduler: scheduler,
		set:       set,
	}
}

// Start plays towards 1. An idle animator starts from 0.
func (a *FloatAnimator) Start() {
	if !a.running {
		a.pos = 0
	}
	a.play(1)
}

// Reverse plays towards 0. An idle animator starts from 1.
func (a *FloatAnimator) Reverse() {
	if !a.running {
		a.pos = 1
	}
	a.play(0)
}

func (a *FloatAnimator) Running() bool {
	return a.running
}

// Fraction returns the eased value last written to the property.
func (a *FloatAnimator) Fraction() float32 {
	return Ease(a.Easing, a.pos)
}

func (a *FloatAnimator) play(target float32) {
	a.gen++
	a.running = true
	a.target = target
	a.startPos = a.pos
	a.startTime = time.Time{}

	gen := a.gen
	a.scheduler.PostFrameCallback(func(now time.Time) { a.onFrame(gen, now) })
}

func (a *FloatAnimator) onFrame(gen uint64, now time.Time) {
	if gen != a.gen || !a.running {
		return
	}
	// the clock starts on the first frame, not when play was requested
	if a.startTime.IsZero() {
		a.startTime = now
	}

	span := a.target - a.startPos
	if span < 0 {
		span = -span
	}
	total := time.Duration(float32(a.Duration) * span)

	fraction := float32(1)
	if total > 0 {
		fraction = float32(now.Sub(a.startTime)) / float32(total)
		if fraction > 1 {
			fraction = 1
		}
	}

	a.pos = a.startPos + (a.target-a.startPos)*fraction
	if fraction >= 1 {
		a.pos = a.target
		a.running = false
	}
	a.set(Ease(a.Easing, a.pos))

	if a.running {
		a.scheduler.PostFrameCallback(func(now time.Time) { a.onFrame(gen, now) })
	}
}
