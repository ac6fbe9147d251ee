// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"time"

	"github.com/gogpu/viewblur"
)

// Linear returns progress unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.42, 0, 0.58, 1)

// CubicBezier returns an easing function matching CSS cubic-bezier().
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	sample := func(a, b, t float64) float64 {
		inv := 1 - t
		return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
	}
	slope := func(a, b, t float64) float64 {
		inv := 1 - t
		return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for range 8 {
			x := sample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sample(y1, y2, clamp01(u))
			}
			dx := slope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection keeps the solution inside [0, 1].
		lo, hi := 0.0, 1.0
		u = clamp01(u)
		for range 16 {
			x := sample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return sample(y1, y2, u)
	}
}

// fade is a running cross-dissolve from one element to another. The
// incoming element's opacity follows the eased progress; the outgoing one is
// drawn beneath it with the complementary opacity.
type fade struct {
	host     *SoftwareHost
	from     *Node
	to       *Node
	target   float64
	duration time.Duration
	start    time.Time
	started  bool
	progress float64
	done     bool
}

// CrossFade dissolves from into to over d. Both elements must already be
// in their final tree positions. A non-positive d returns a completed
// transition without touching opacity, so no animation frame is produced.
// Starting a fade on an element that is already fading in ends the
// earlier fade first.
func (h *SoftwareHost) CrossFade(from, to Element, d time.Duration) Transition {
	if d <= 0 {
		return Completed()
	}
	fn, _ := from.(*Node)
	tn, ok := to.(*Node)
	if !ok || tn == nil {
		viewblur.Logger().Warn("surface: cross-fade target is not a node; swapping without animation")
		return Completed()
	}

	if prior := h.fades[tn]; prior != nil {
		prior.finish()
	}

	f := &fade{
		host:     h,
		from:     fn,
		to:       tn,
		target:   tn.opacity,
		duration: d,
	}
	tn.opacity = 0
	h.fades[tn] = f
	return f
}

// Step advances every running fade to now and returns how many are still
// running. Call it once per frame.
func (h *SoftwareHost) Step(now time.Time) int {
	if len(h.fades) == 0 {
		return 0
	}
	h.frames++
	for _, f := range h.fades {
		f.step(now)
	}
	return len(h.fades)
}

// Active returns the number of running fades.
func (h *SoftwareHost) Active() int {
	return len(h.fades)
}

// Frames returns how many Step calls found at least one running fade.
func (h *SoftwareHost) Frames() int {
	return h.frames
}

// Cancel ends the fade at its final state.
func (f *fade) Cancel() {
	f.finish()
}

// Done reports whether the fade has ended.
func (f *fade) Done() bool {
	return f.done
}

// Progress returns linear progress in [0, 1].
func (f *fade) Progress() float64 {
	return f.progress
}

func (f *fade) eased() float64 {
	return f.host.curve(f.progress)
}

func (f *fade) step(now time.Time) {
	if f.done {
		return
	}
	if !f.started {
		f.start = now
		f.started = true
	}

	p := float64(now.Sub(f.start)) / float64(f.duration)
	if p >= 1 {
		f.finish()
		return
	}
	f.progress = clamp01(p)
	f.to.opacity = f.target * f.eased()
}

func (f *fade) finish() {
	if f.done {
		return
	}
	f.done = true
	f.progress = 1
	f.to.opacity = f.target

	h := f.host
	if h.fades[f.to] == f {
		delete(h.fades, f.to)
	}
	if f.from != nil {
		if _, ok := h.pending[f.from]; ok {
			h.release(f.from)
		}
	}
}
