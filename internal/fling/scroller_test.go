package fling

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ x, y int }

func run(clock *clockwork.FakeClock, s *Scroller) []sample {
	var out []sample
	for i := 0; i < 1000; i++ {
		clock.Advance(16 * time.Millisecond)
		if !s.ComputeScrollOffset(clock.Now()) {
			break
		}
		out = append(out, sample{s.CurrX(), s.CurrY()})
	}
	return out
}

func TestNewScrollerIsFinished(t *testing.T) {
	s := NewScroller(clockwork.NewFakeClock(), 0)
	assert.True(t, s.IsFinished())
	assert.False(t, s.ComputeScrollOffset(time.Now()))
}

func TestFlingDistanceAndDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(0, 0, 4000, 0, -100000, 100000, -100000, 100000)

	assert.InDelta(t, 1540, s.Duration().Milliseconds(), 20)
	assert.InDelta(t, 2157, s.FinalX(), 20)
	assert.Equal(t, 0, s.FinalY())
}

func TestFlingDecelerates(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(0, 0, 3000, -2000, -100000, 100000, -100000, 100000)
	samples := run(clock, s)
	require.Greater(t, len(samples), 10)

	prevX, prevY := 0, 0
	prevStepX, prevStepY := 1<<30, 1<<30
	for i, p := range samples {
		stepX := p.x - prevX
		stepY := prevY - p.y
		assert.GreaterOrEqual(t, stepX, 0, "sample %d", i)
		assert.GreaterOrEqual(t, stepY, 0, "sample %d", i)
		// integer rounding can make one step a pixel longer than the one before
		assert.LessOrEqual(t, stepX, prevStepX+1, "sample %d", i)
		assert.LessOrEqual(t, stepY, prevStepY+1, "sample %d", i)
		prevX, prevY = p.x, p.y
		prevStepX, prevStepY = stepX, stepY
	}

	last := samples[len(samples)-1]
	assert.Equal(t, s.FinalX(), last.x)
	assert.Equal(t, s.FinalY(), last.y)
	assert.True(t, s.IsFinished())
}

func TestFlingClampsToBounds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(10, -10, 8000, -8000, -50, 50, -30, 30)
	assert.Equal(t, 50, s.FinalX())
	assert.Equal(t, -30, s.FinalY())

	for _, p := range run(clock, s) {
		assert.True(t, p.x >= -50 && p.x <= 50, "x=%d", p.x)
		assert.True(t, p.y >= -30 && p.y <= 30, "y=%d", p.y)
	}
}

func TestZeroVelocityFinishesImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(7, 9, 0, 0, -100, 100, -100, 100)
	assert.True(t, s.ComputeScrollOffset(clock.Now()))
	assert.Equal(t, 7, s.CurrX())
	assert.Equal(t, 9, s.CurrY())
	assert.False(t, s.ComputeScrollOffset(clock.Now()))
}

func TestNewFlingSupersedesOld(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(0, 0, 4000, 0, -10000, 10000, -10000, 10000)
	clock.Advance(100 * time.Millisecond)
	require.True(t, s.ComputeScrollOffset(clock.Now()))

	s.Fling(s.CurrX(), 0, -4000, 0, -10000, 10000, -10000, 10000)
	assert.Less(t, s.FinalX(), s.CurrX())
}

func TestForceFinished(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(0, 0, 4000, 0, -10000, 10000, -10000, 10000)
	s.ForceFinished()
	assert.False(t, s.ComputeScrollOffset(clock.Now()))
}

func TestClampedFlingStopsAtTheEdge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(0, 0, 4000, 0, -1000, 1000, -1000, 1000)
	require.Equal(t, 1000, s.FinalX())

	// the unclamped fling would run ~1540ms; reaching x=1000 takes under 300ms
	assert.InDelta(t, 290, s.Duration().Milliseconds(), 20)

	samples := run(clock, s)
	require.Greater(t, len(samples), 3)
	assert.Equal(t, 1000, samples[len(samples)-1].x)

	// still moving quickly right before the edge instead of creeping up to it
	a, b := samples[len(samples)-3], samples[len(samples)-2]
	assert.Greater(t, b.x-a.x, 20)
	assert.True(t, s.IsFinished())
}

func TestClampedAxisStopsWhileOtherContinues(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewScroller(clock, DefaultPPI)

	s.Fling(0, 0, 3000, -4000, -10000, 10000, -200, 200)
	require.Equal(t, -200, s.FinalY())

	samples := run(clock, s)
	atEdge := -1
	for i, p := range samples {
		assert.GreaterOrEqual(t, p.y, -200)
		if p.y == -200 && atEdge < 0 {
			atEdge = i
		}
	}
	require.GreaterOrEqual(t, atEdge, 0)
	assert.Less(t, atEdge, len(samples)/2, "y should reach its edge early")
	assert.Equal(t, s.FinalX(), samples[len(samples)-1].x)
}
