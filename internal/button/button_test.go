package button

import "testing"

func TestIsClick(t *testing.T) {
	cases := []struct {
		dx, dy int
		want   bool
	}{
		{0, 0, true},
		{4, 4, true},
		{-4, 4, true},
		{9, 0, true},
		{10, 0, false},
		{5, 5, false},
		{0, -12, false},
	}
	for _, c := range cases {
		if got := IsClick(c.dx, c.dy); got != c.want {
			t.Errorf("IsClick(%d, %d) = %v, want %v", c.dx, c.dy, got, c.want)
		}
	}
}

func TestSnapToEdges_LeftAndTop(t *testing.T) {
	work := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	x, y := SnapToEdges(10, 12, 64, work, 25)
	if x != snapInset || y != snapInset {
		t.Fatalf("expected snap to top-left inset, got (%d,%d)", x, y)
	}
}

func TestSnapToEdges_RightAndBottom(t *testing.T) {
	work := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	x, y := SnapToEdges(1840, 1000, 64, work, 25)
	wantX := work.Width - 64 - snapInset
	wantY := work.Height - 64 - snapInset
	if x != wantX || y != wantY {
		t.Fatalf("expected (%d,%d), got (%d,%d)", wantX, wantY, x, y)
	}
}

func TestSnapToEdges_FarFromEdgesUnchanged(t *testing.T) {
	work := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	x, y := SnapToEdges(500, 400, 64, work, 25)
	if x != 500 || y != 400 {
		t.Fatalf("expected position unchanged, got (%d,%d)", x, y)
	}
}

func TestSnapToEdges_RespectsWorkAreaOffset(t *testing.T) {
	// Panel at the top: work area starts below it.
	work := Rect{X: 0, Y: 30, Width: 1920, Height: 1050}

	_, y := SnapToEdges(500, 42, 64, work, 25)
	if y != work.Y+snapInset {
		t.Fatalf("expected snap below the panel at %d, got %d", work.Y+snapInset, y)
	}
}

func TestSnapToEdges_AxesIndependent(t *testing.T) {
	work := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

	// Near the left edge only: y stays put.
	x, y := SnapToEdges(5, 500, 64, work, 25)
	if x != snapInset {
		t.Fatalf("expected x snapped, got %d", x)
	}
	if y != 500 {
		t.Fatalf("expected y unchanged, got %d", y)
	}
}
