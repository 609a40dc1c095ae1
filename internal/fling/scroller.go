// Package fling simulates a decelerating fling inside rectangular bounds.
package fling

import (
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultPPI is the pixel density of a density 1.0 display.
	DefaultPPI = 160

	scrollFriction = 0.015
	inflexion      = 0.35
	gravityEarth   = 9.80665 // m/s^2
	inchesPerMeter = 39.37
	tuning         = 0.84
)

var decelerationRate = math.Log(0.78) / math.Log(0.9)

// Scroller computes fling positions over time. The distance and duration of a
// fling follow the spline deceleration model; positions in between follow an
// ease-out cubic so the speed never increases between samples.
type Scroller struct {
	clock         clockwork.Clock
	physicalCoeff float64

	startX, startY int
	finalX, finalY int
	currX, currY   int
	// unclamped travel along each axis
	distX, distY float64
	startTime    time.Time
	// splineDuration drives the position curve; an axis clamped to a bound
	// stops early, when the curve reaches the bound.
	splineDuration       time.Duration
	durationX, durationY time.Duration
	duration             time.Duration
	finished             bool
}

// NewScroller returns an idle scroller for a display with the given pixel
// density. The clock stamps the start of each fling.
func NewScroller(clock clockwork.Clock, ppi float64) *Scroller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ppi <= 0 {
		ppi = DefaultPPI
	}
	return &Scroller{
		clock:         clock,
		physicalCoeff: gravityEarth * inchesPerMeter * ppi * tuning,
		finished:      true,
	}
}

// Fling starts a fling from (startX, startY) with the given velocity in
// pixels per second. The final position is clamped to [minX, maxX] and
// [minY, maxY].
func (s *Scroller) Fling(startX, startY, velocityX, velocityY, minX, maxX, minY, maxY int) {
	s.startX, s.startY = startX, startY
	s.currX, s.currY = startX, startY
	s.startTime = s.clock.Now()
	s.finished = false

	velocity := math.Hypot(float64(velocityX), float64(velocityY))
	coeffX, coeffY := 1.0, 1.0
	if velocity != 0 {
		coeffX = float64(velocityX) / velocity
		coeffY = float64(velocityY) / velocity
	}

	s.splineDuration = s.splineFlingDuration(velocity)
	distance := s.splineFlingDistance(velocity)
	s.distX = distance * coeffX
	s.distY = distance * coeffY

	s.finalX = clamp(startX+int(math.Round(s.distX)), minX, maxX)
	s.finalY = clamp(startY+int(math.Round(s.distY)), minY, maxY)
	s.durationX = edgeDuration(s.splineDuration, s.distX, s.finalX-startX)
	s.durationY = edgeDuration(s.splineDuration, s.distY, s.finalY-startY)
	s.duration = max(s.durationX, s.durationY)
}

// edgeDuration is the time the position curve takes to cover travel out of
// the full dist. An unclamped axis takes the whole spline duration, an axis
// with nothing to travel none.
func edgeDuration(full time.Duration, dist float64, travel int) time.Duration {
	if dist == 0 {
		return 0
	}
	if math.Abs(float64(travel)) >= math.Abs(math.Round(dist)) {
		return full
	}
	r := float64(travel) / dist
	if r <= 0 {
		return 0
	}
	// invert 1-(1-t)^3 = r
	t := 1 - math.Cbrt(1-r)
	return time.Duration(t * float64(full))
}

// ComputeScrollOffset advances the simulation to now. It returns false once
// the fling has finished; the call that reaches the end of the fling still
// returns true so the final position gets applied.
func (s *Scroller) ComputeScrollOffset(now time.Time) bool {
	if s.finished {
		return false
	}

	elapsed := now.Sub(s.startTime)
	if elapsed >= s.duration {
		s.currX, s.currY = s.finalX, s.finalY
		s.finished = true
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	s.currX = s.axisPosition(elapsed, s.startX, s.finalX, s.distX, s.durationX)
	s.currY = s.axisPosition(elapsed, s.startY, s.finalY, s.distY, s.durationY)
	return true
}

func (s *Scroller) axisPosition(elapsed time.Duration, start, final int, dist float64, axisDuration time.Duration) int {
	if elapsed >= axisDuration {
		return final
	}
	t := float64(elapsed) / float64(s.splineDuration)
	f := 1 - math.Pow(1-t, 3)
	pos := start + int(math.Round(f*dist))
	if start <= final {
		return clamp(pos, start, final)
	}
	return clamp(pos, final, start)
}

func (s *Scroller) CurrX() int { return s.currX }
func (s *Scroller) CurrY() int { return s.currY }

func (s *Scroller) FinalX() int { return s.finalX }
func (s *Scroller) FinalY() int { return s.finalY }

func (s *Scroller) Duration() time.Duration { return s.duration }

func (s *Scroller) IsFinished() bool { return s.finished }

// ForceFinished stops the fling at its current position.
func (s *Scroller) ForceFinished() {
	s.finished = true
}

func (s *Scroller) splineDeceleration(velocity float64) float64 {
	return math.Log(inflexion * math.Abs(velocity) / (scrollFriction * s.physicalCoeff))
}

func (s *Scroller) splineFlingDuration(velocity float64) time.Duration {
	if velocity == 0 {
		return 0
	}
	l := s.splineDeceleration(velocity)
	ms := 1000.0 * math.Exp(l/(decelerationRate-1.0))
	return time.Duration(ms * float64(time.Millisecond))
}

func (s *Scroller) splineFlingDistance(velocity float64) float64 {
	if velocity == 0 {
		return 0
	}
	l := s.splineDeceleration(velocity)
	return scrollFriction * s.physicalCoeff * math.Exp(decelerationRate/(decelerationRate-1.0)*l)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
