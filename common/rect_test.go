package common

import "testing"

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	cases := []struct {
		name   string
		b      Rect
		want   bool
		wantDX float64
		wantDY float64
	}{
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true, 2, 2},
		{"partial", Rect{X: 8, Y: 5, Width: 10, Height: 10}, true, 2, 5},
		{"touching_edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false, 0, 0},
		{"apart", Rect{X: 20, Y: 20, Width: 1, Height: 1}, false, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects = %v, want %v", got, c.want)
			}
			dx, dy := a.Overlap(c.b)
			if dx != c.wantDX || dy != c.wantDY {
				t.Fatalf("Overlap = (%v, %v), want (%v, %v)", dx, dy, c.wantDX, c.wantDY)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Fatalf("Clamp below = %v", got)
	}
	if got := Clamp(7, 0, 5); got != 5 {
		t.Fatalf("Clamp above = %v", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Fatalf("Clamp inside = %v", got)
	}
}
