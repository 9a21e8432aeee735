package common

// Rect is an axis-aligned rectangle in world units, anchored at its top-left.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Intersects reports whether the interiors of r and other overlap. Rects that
// only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Overlap returns the penetration depth of r into other on each axis, or zero
// when they do not intersect.
func (r Rect) Overlap(other Rect) (float64, float64) {
	if !r.Intersects(other) {
		return 0, 0
	}
	dx := min(r.Right(), other.Right()) - max(r.X, other.X)
	dy := min(r.Bottom(), other.Bottom()) - max(r.Y, other.Y)
	return dx, dy
}
