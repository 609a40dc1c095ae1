package session

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/matjam/zoomview/internal/ipc"
	"github.com/matjam/zoomview/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameInterval = 16 * time.Millisecond

func newSession(t *testing.T) (*Session, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	s := New(clock, image.NewRGBA(image.Rect(0, 0, 300, 300)), Options{
		ImagePath:    "gem.png",
		Density:      1,
		Easing:       types.EasingEaseInOut,
		AnimDuration: 300 * time.Millisecond,
	})
	s.Resize(1000, 2000)
	return s, clock
}

func settle(s *Session, clock *clockwork.FakeClock) {
	for i := 0; i < 500 && !s.Idle(); i++ {
		s.Frame()
		clock.Advance(frameInterval)
	}
}

func TestResizeRequestsRedraw(t *testing.T) {
	s, _ := newSession(t)

	assert.True(t, s.Frame())
	assert.False(t, s.Frame())

	s.Resize(1000, 2000)
	assert.False(t, s.Frame(), "same size is not a change")

	s.Resize(800, 600)
	assert.True(t, s.Frame())
	assert.Equal(t, float32(800), s.View().Geometry().ViewWidth)
}

func TestMouseDoubleClickMagnifies(t *testing.T) {
	s, clock := newSession(t)

	s.PointerDown(500, 1000)
	clock.Advance(50 * time.Millisecond)
	s.PointerUp(500, 1000)
	clock.Advance(100 * time.Millisecond)
	s.PointerDown(502, 1001)
	clock.Advance(50 * time.Millisecond)
	s.PointerUp(502, 1001)

	require.True(t, s.View().State().Big)
	settle(s, clock)
	assert.Equal(t, float32(1), s.View().State().ScaleFraction)
	assert.InDelta(t, s.View().Geometry().BigScale, s.Status().Scale, 1e-4)
}

func TestMoveWithoutButtonIsIgnored(t *testing.T) {
	s, clock := newSession(t)
	s.Apply(ipc.Command{Type: ipc.CommandToggle})
	settle(s, clock)

	s.PointerMove(100, 100)
	s.PointerMove(300, 300)
	s.PointerUp(300, 300)

	assert.Zero(t, s.View().State().OffsetX)
	assert.Zero(t, s.View().State().OffsetY)
}

func TestDragPansMagnifiedView(t *testing.T) {
	s, clock := newSession(t)
	s.Apply(ipc.Command{Type: ipc.CommandToggle})
	settle(s, clock)

	s.PointerDown(500, 1000)
	clock.Advance(frameInterval)
	s.PointerMove(550, 970)

	st := s.View().State()
	assert.Equal(t, float32(50), st.OffsetX)
	assert.Equal(t, float32(-30), st.OffsetY)
}

func TestSwipeFlingsMagnifiedView(t *testing.T) {
	s, clock := newSession(t)
	s.Apply(ipc.Command{Type: ipc.CommandToggle})
	settle(s, clock)

	x := float32(800)
	s.PointerDown(x, 1000)
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Millisecond)
		x -= 40
		s.PointerMove(x, 1000)
	}
	clock.Advance(10 * time.Millisecond)
	s.PointerUp(x-40, 1000)

	require.True(t, s.View().Flinging())
	settle(s, clock)
	assert.False(t, s.View().Flinging())
	assert.Less(t, s.View().State().OffsetX, float32(-240))
}

func TestToggleCommandRoundTrip(t *testing.T) {
	s, clock := newSession(t)

	assert.False(t, s.Apply(ipc.Command{Type: ipc.CommandToggle}))
	settle(s, clock)
	assert.True(t, s.Status().State.Big)

	s.Apply(ipc.Command{Type: ipc.CommandToggle})
	settle(s, clock)
	assert.False(t, s.Status().State.Big)
	assert.Zero(t, s.Status().State.ScaleFraction)
}

func TestFlingCommandNeedsMagnifiedView(t *testing.T) {
	s, clock := newSession(t)

	s.Apply(ipc.Command{Type: ipc.CommandFling, VelocityX: 3000})
	assert.False(t, s.View().Flinging())

	s.Apply(ipc.Command{Type: ipc.CommandToggle})
	settle(s, clock)
	s.Apply(ipc.Command{Type: ipc.CommandFling, VelocityX: 3000})
	assert.True(t, s.Status().Flinging)

	settle(s, clock)
	assert.Greater(t, s.View().State().OffsetX, float32(0))
}

func TestStopCommandQuits(t *testing.T) {
	s, _ := newSession(t)
	assert.True(t, s.Apply(ipc.Command{Type: ipc.CommandStop}))
	assert.False(t, s.Apply(ipc.Command{Type: "bogus"}))
}

func TestStatusSnapshot(t *testing.T) {
	s, _ := newSession(t)
	s.Frame()

	st := s.Status()
	assert.Equal(t, "gem.png", st.Image)
	assert.Equal(t, 1000, st.Width)
	assert.Equal(t, 2000, st.Height)
	assert.InDelta(t, 3.333, st.SmallScale, 1e-3)
	assert.InDelta(t, 10, st.BigScale, 1e-3)
	assert.Equal(t, st.SmallScale, st.Scale)
	assert.Equal(t, uint64(1), st.Frames)
}

func TestUnknownEasingFallsBack(t *testing.T) {
	s := New(clockwork.NewFakeClock(), image.NewRGBA(image.Rect(0, 0, 10, 10)), Options{Easing: "bounce"})
	assert.Equal(t, types.EasingEaseInOut, s.opts.Easing)
	assert.Equal(t, float32(1), s.opts.Density)
}

func TestRunAnimatesOnTicker(t *testing.T) {
	s, clock := newSession(t)
	s.Frame()
	s.Apply(ipc.Command{Type: ipc.CommandToggle})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames := make(chan bool)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, 50, func(redraw bool) bool {
			frames <- redraw
			return !s.Idle()
		})
	}()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	redraws := 0
	for running := true; running; {
		clock.Advance(20 * time.Millisecond)
		select {
		case redraw := <-frames:
			if redraw {
				redraws++
			}
		case err := <-done:
			require.NoError(t, err)
			running = false
		}
	}

	assert.Equal(t, float32(1), s.View().State().ScaleFraction)
	assert.False(t, s.View().Animating())
	// 300ms at 20ms a frame
	assert.InDelta(t, 16, redraws, 2)
}

func TestOversizedFlingCommandIsCapped(t *testing.T) {
	for _, v := range []float32{1e30, 1e12, -1e30} {
		s, clock := newSession(t)
		s.Apply(ipc.Command{Type: ipc.CommandToggle})
		settle(s, clock)

		s.Apply(ipc.Command{Type: ipc.CommandFling, VelocityX: v})
		require.True(t, s.View().Flinging())

		frames := 0
		for ; frames < 500 && s.View().Flinging(); frames++ {
			s.Frame()
			clock.Advance(frameInterval)
		}
		assert.False(t, s.View().Flinging(), "v=%g still flinging after %d frames", v, frames)

		minX, maxX, _, _ := s.View().Geometry().FlingBounds()
		if v > 0 {
			assert.Equal(t, float32(maxX), s.View().State().OffsetX, "v=%g", v)
		} else {
			assert.Equal(t, float32(minX), s.View().State().OffsetX, "v=%g", v)
		}
	}
}

func TestZeroAnimDurationJumps(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(clock, image.NewRGBA(image.Rect(0, 0, 300, 300)), Options{AnimDuration: 0})
	s.Resize(1000, 2000)
	s.Frame()

	s.Apply(ipc.Command{Type: ipc.CommandToggle})
	s.Frame()
	assert.Equal(t, float32(1), s.View().State().ScaleFraction)
	assert.False(t, s.View().Animating())
}

func TestNegativeAnimDurationUsesDefault(t *testing.T) {
	s := New(clockwork.NewFakeClock(), image.NewRGBA(image.Rect(0, 0, 10, 10)), Options{AnimDuration: -time.Second})
	assert.Equal(t, 300*time.Millisecond, s.opts.AnimDuration)
}
