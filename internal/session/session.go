// Package session wires a viewer to its gesture detector, animator, fling
// scroller and frame loop, and applies control commands to it. It holds no
// windowing code so the whole interaction path runs headless.
package session

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/jonboulle/clockwork"
	"github.com/matjam/zoomview/internal/anim"
	"github.com/matjam/zoomview/internal/fling"
	"github.com/matjam/zoomview/internal/frame"
	"github.com/matjam/zoomview/internal/gesture"
	"github.com/matjam/zoomview/internal/ipc"
	"github.com/matjam/zoomview/internal/types"
	"github.com/matjam/zoomview/internal/viewer"
	"golang.org/x/mobile/event/touch"
)

type Options struct {
	ImagePath    string
	Density      float32
	Easing       types.EasingMode
	AnimDuration time.Duration
}

type Session struct {
	opts     Options
	clock    clockwork.Clock
	choreo   *frame.Choreographer
	view     *viewer.View
	detector *gesture.Detector

	width, height int
	pressed       bool
}

func New(clock clockwork.Clock, bitmap image.Image, opts Options) *Session {
	if opts.Density <= 0 {
		opts.Density = 1
	}
	if opts.AnimDuration < 0 {
		opts.AnimDuration = anim.DefaultDuration
	}
	if !anim.ValidEasing(opts.Easing) {
		log.Warnf("unknown easing %q, using %s", opts.Easing, types.EasingEaseInOut)
		opts.Easing = types.EasingEaseInOut
	}

	s := &Session{
		opts:  opts,
		clock: clock,
	}
	s.choreo = frame.New(clock)
	scroller := fling.NewScroller(clock, fling.DefaultPPI*float64(opts.Density))
	s.view = viewer.New(bitmap, s.choreo, scroller, s.newAnimator)
	s.detector = gesture.NewDetector(s.view, opts.Density)
	return s
}

func (s *Session) newAnimator(set func(float32)) viewer.Animator {
	a := anim.NewFloatAnimator(s.choreo, set)
	a.Duration = s.opts.AnimDuration
	a.Easing = s.opts.Easing
	return a
}

func (s *Session) View() *viewer.View { return s.view }

// Resize forwards new surface bounds to the view and forces a redraw.
func (s *Session) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.view.OnSizeChanged(width, height)
	s.choreo.Invalidate()
}

// PointerDown, PointerMove and PointerUp translate a single mouse button
// into one touch sequence.
func (s *Session) PointerDown(x, y float32) {
	s.pressed = true
	s.touch(touch.TypeBegin, x, y)
}

// PointerMove is ignored while the button is up.
func (s *Session) PointerMove(x, y float32) {
	if !s.pressed {
		return
	}
	s.touch(touch.TypeMove, x, y)
}

func (s *Session) PointerUp(x, y float32) {
	if !s.pressed {
		return
	}
	s.pressed = false
	s.touch(touch.TypeEnd, x, y)
}

func (s *Session) touch(t touch.Type, x, y float32) {
	s.detector.OnTouchEvent(touch.Event{X: x, Y: y, Type: t}, s.clock.Now())
}

// Apply runs a control command on the UI goroutine. It returns true when the
// command asks the host to quit.
func (s *Session) Apply(cmd ipc.Command) bool {
	switch cmd.Type {
	case ipc.CommandStop:
		log.Info("stop requested")
		return true
	case ipc.CommandToggle:
		g := s.view.Geometry()
		s.view.OnDoubleTap(g.ViewWidth/2, g.ViewHeight/2)
	case ipc.CommandFling:
		if !s.view.State().Big {
			log.Infof("ignoring fling (%v, %v): view is not magnified", cmd.VelocityX, cmd.VelocityY)
			return false
		}
		limit := gesture.MaxFlingVelocityDp * s.opts.Density
		s.view.OnFling(capVelocity(cmd.VelocityX, limit), capVelocity(cmd.VelocityY, limit))
	default:
		log.Errorf("unknown command: %s", cmd.Type)
	}
	return false
}

// capVelocity applies the same per-axis cap the gesture detector uses.
func capVelocity(v, limit float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(-limit, math32.Min(v, limit))
}

// Frame runs one frame of callbacks and reports whether the view must be
// redrawn.
func (s *Session) Frame() bool {
	return s.choreo.Tick()
}

// Run pumps frames fps times a second on the session clock until ctx is done
// or onFrame returns false. onFrame runs on the calling goroutine after each
// frame with that frame's redraw flag.
func (s *Session) Run(ctx context.Context, fps int, onFrame func(redraw bool) bool) error {
	return s.choreo.Run(ctx, fps, onFrame)
}

// Idle reports whether nothing is animating or flinging.
func (s *Session) Idle() bool {
	return s.choreo.Idle()
}

func (s *Session) Status() ipc.ViewStatus {
	g := s.view.Geometry()
	return ipc.ViewStatus{
		Image:      s.opts.ImagePath,
		Width:      s.width,
		Height:     s.height,
		State:      s.view.State(),
		Scale:      s.view.Transform().Scale,
		SmallScale: g.SmallScale,
		BigScale:   g.BigScale,
		Flinging:   s.view.Flinging(),
		Animating:  s.view.Animating(),
		Frames:     s.choreo.Frames(),
	}
}
