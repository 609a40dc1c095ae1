package gesture

import (
	"time"

	"github.com/chewxy/math32"
)

const (
	historySize = 20
	horizon     = 100 * time.Millisecond
	// a gap this long between samples means the pointer stopped moving
	assumeStopped = 40 * time.Millisecond
)

type movement struct {
	at   time.Time
	x, y float32
}

// VelocityTracker estimates pointer velocity with a least-squares line fit
// over the most recent samples.
type VelocityTracker struct {
	samples [historySize]movement
	next    int
	count   int
}

func (v *VelocityTracker) Clear() {
	v.next = 0
	v.count = 0
}

func (v *VelocityTracker) Add(at time.Time, x, y float32) {
	v.samples[v.next] = movement{at: at, x: x, y: y}
	v.next = (v.next + 1) % historySize
	if v.count < historySize {
		v.count++
	}
}

// Velocity returns the estimated velocity in pixels per second, each axis
// clamped to ±limit.
func (v *VelocityTracker) Velocity(limit float32) (vx, vy float32) {
	window := v.window()
	if len(window) < 2 {
		return 0, 0
	}

	newest := window[0].at
	var meanT, meanX, meanY float32
	ts := make([]float32, len(window))
	for i, m := range window {
		ts[i] = -float32(newest.Sub(m.at).Seconds())
		meanT += ts[i]
		meanX += m.x
		meanY += m.y
	}
	n := float32(len(window))
	meanT /= n
	meanX /= n
	meanY /= n

	var stt, stx, sty float32
	for i, m := range window {
		dt := ts[i] - meanT
		stt += dt * dt
		stx += dt * (m.x - meanX)
		sty += dt * (m.y - meanY)
	}
	if stt == 0 {
		return 0, 0
	}

	vx = clampAbs(stx/stt, limit)
	vy = clampAbs(sty/stt, limit)
	return vx, vy
}

// window returns the samples that count towards the estimate, newest first.
func (v *VelocityTracker) window() []movement {
	out := make([]movement, 0, v.count)
	for i := 0; i < v.count; i++ {
		idx := (v.next - 1 - i + historySize) % historySize
		m := v.samples[idx]
		if len(out) > 0 {
			if out[0].at.Sub(m.at) > horizon {
				break
			}
			if out[len(out)-1].at.Sub(m.at) > assumeStopped {
				break
			}
		}
		out = append(out, m)
	}
	return out
}

func clampAbs(v, limit float32) float32 {
	if limit <= 0 {
		return v
	}
	return math32.Max(-limit, math32.Min(limit, v))
}
