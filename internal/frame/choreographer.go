// Package frame provides the per-frame callback queue that drives animations
// and fling advances on the UI goroutine.
package frame

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultFPS = 60

// Choreographer collects callbacks for the next frame and a coalesced redraw
// request. It is not safe for concurrent use; every method must be called from
// the goroutine that pumps frames.
type Choreographer struct {
	clock     clockwork.Clock
	callbacks []func(frameTime time.Time)
	dirty     bool
	frames    uint64
}

func New(clock clockwork.Clock) *Choreographer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Choreographer{clock: clock}
}

// PostFrameCallback schedules cb to run once on the next frame.
func (c *Choreographer) PostFrameCallback(cb func(frameTime time.Time)) {
	c.callbacks = append(c.callbacks, cb)
}

// Invalidate requests a redraw. Multiple calls within one frame collapse into
// a single redraw.
func (c *Choreographer) Invalidate() {
	c.dirty = true
}

// Pending returns the number of callbacks waiting for the next frame.
func (c *Choreographer) Pending() int {
	return len(c.callbacks)
}

// Idle reports whether nothing is scheduled and no redraw is outstanding.
func (c *Choreographer) Idle() bool {
	return len(c.callbacks) == 0 && !c.dirty
}

// Frames returns how many frames have been run.
func (c *Choreographer) Frames() uint64 {
	return c.frames
}

// DoFrame runs the callbacks that were posted before this frame began and
// reports whether a redraw was requested since the previous frame. Callbacks
// posted while running are deferred to the following frame.
func (c *Choreographer) DoFrame(now time.Time) bool {
	c.frames++
	pending := c.callbacks
	c.callbacks = nil
	for _, cb := range pending {
		cb(now)
	}

	redraw := c.dirty
	c.dirty = false
	return redraw
}

// Tick runs a frame stamped with the choreographer's clock.
func (c *Choreographer) Tick() bool {
	return c.DoFrame(c.clock.Now())
}

// Run pumps a frame fps times a second on the choreographer's clock and hands
// each frame's redraw flag to onFrame. It returns when onFrame returns false,
// or with the context's error once ctx is done.
func (c *Choreographer) Run(ctx context.Context, fps int, onFrame func(redraw bool) bool) error {
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := c.clock.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.Chan():
			if !onFrame(c.DoFrame(now)) {
				return nil
			}
		}
	}
}

// Clock returns the clock frames are stamped with.
func (c *Choreographer) Clock() clockwork.Clock {
	return c.clock
}
