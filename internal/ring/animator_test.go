package ring

import (
	"testing"
	"time"
)

func TestAnimator_StartsAtZeroEndsAtOne(t *testing.T) {
	start := time.Now()
	a := NewAnimator(start, 350*time.Millisecond)

	if got := a.Progress(start); got != 0 {
		t.Fatalf("progress at start = %f, want 0", got)
	}
	if got := a.Progress(start.Add(350 * time.Millisecond)); got != 1 {
		t.Fatalf("progress at duration = %f, want 1", got)
	}
}

func TestAnimator_SaturatesPastDuration(t *testing.T) {
	start := time.Now()
	a := NewAnimator(start, 350*time.Millisecond)

	if got := a.Progress(start.Add(time.Hour)); got != 1 {
		t.Fatalf("progress past duration = %f, want 1", got)
	}
	if !a.Done(start.Add(time.Hour)) {
		t.Fatalf("animator should be done long past its duration")
	}
	if a.Done(start.Add(100 * time.Millisecond)) {
		t.Fatalf("animator done before its duration elapsed")
	}
}

func TestAnimator_MonotonicAndEasedOut(t *testing.T) {
	start := time.Now()
	dur := 350 * time.Millisecond
	a := NewAnimator(start, dur)

	prev := -1.0
	for i := 0; i <= 20; i++ {
		now := start.Add(time.Duration(i) * dur / 20)
		p := a.Progress(now)
		if p < prev {
			t.Fatalf("progress decreased at sample %d: %f after %f", i, p, prev)
		}
		prev = p
	}

	// Ease-out runs ahead of linear time through the middle.
	if got := a.Progress(start.Add(dur / 2)); got <= 0.5 {
		t.Fatalf("halfway progress = %f, want > 0.5 for ease-out", got)
	}
}

func TestAnimator_NonPositiveDuration(t *testing.T) {
	start := time.Now()
	a := NewAnimator(start, 0)

	if got := a.Progress(start.Add(time.Millisecond)); got != 1 {
		t.Fatalf("zero-duration animator should saturate immediately, got %f", got)
	}
}
