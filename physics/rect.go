package physics

import "math"

// Rect is an axis-aligned rectangle, top-left origin, y grows downward
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports a rectangle with no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Center returns the midpoint
func (r Rect) Center() Vec {
	return Vec{r.X + r.W/2, r.Y + r.H/2}
}

// Translate returns the rectangle moved by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersects reports positive-area overlap; touching edges do not intersect
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Clip returns the overlap of two rectangles, zero rect when disjoint
func (r Rect) Clip(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	x := math.Max(r.X, o.X)
	y := math.Max(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Min(r.Right(), o.Right()) - x,
		H: math.Min(r.Bottom(), o.Bottom()) - y,
	}
}

// Union returns the smallest rectangle containing both
func (r Rect) Union(o Rect) Rect {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Max(r.Right(), o.Right()) - x,
		H: math.Max(r.Bottom(), o.Bottom()) - y,
	}
}
