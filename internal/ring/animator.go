package ring

import "time"

// Animator drives the one-shot entrance timeline: progress runs 0→1 over a
// fixed duration with a cubic ease-out and saturates at 1. It never loops or
// reverses; the ring closing simply stops sampling it.
type Animator struct {
	start    time.Time
	duration time.Duration
}

// NewAnimator starts the timeline at the given instant.
func NewAnimator(start time.Time, duration time.Duration) *Animator {
	if duration <= 0 {
		duration = time.Millisecond
	}
	return &Animator{start: start, duration: duration}
}

// Progress samples the eased progress at the given instant, clamped to [0,1].
func (a *Animator) Progress(now time.Time) float64 {
	t := clamp01(float64(now.Sub(a.start)) / float64(a.duration))
	return easeOutCubic(t)
}

// Done reports whether the timeline has saturated.
func (a *Animator) Done(now time.Time) bool {
	return now.Sub(a.start) >= a.duration
}

// easeOutCubic is a fast-start, slow-settle curve: 1-(1-t)^3.
func easeOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}
