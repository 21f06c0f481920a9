// Package geom provides the plain geometry records used by the window
// engine and the pure clamp functions that turn pointer deltas into window
// positions and sizes.
package geom

import "math"

// Point is a position in viewport units.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width and height in viewport units.
type Size struct {
	Width, Height float64
}

// Rect is an axis aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect builds a rect from a position and a size.
func NewRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Position returns the top-left corner.
func (r Rect) Position() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r. Edges on the right and bottom
// are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Distance returns the Euclidean distance from p to the nearest point of r,
// or 0 when p is inside r.
func (r Rect) Distance(p Point) float64 {
	dx := math.Max(math.Max(r.X-p.X, 0), p.X-r.Right())
	dy := math.Max(math.Max(r.Y-p.Y, 0), p.Y-r.Bottom())
	return math.Hypot(dx, dy)
}

// Clamp limits v to [lo, hi]. When lo > hi, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
