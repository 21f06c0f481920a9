package geom

import (
	"math"
	"testing"
)

func TestClampMove(t *testing.T) {
	viewport := Size{Width: 800, Height: 600}
	size := Size{Width: 300, Height: 200}

	tests := []struct {
		name  string
		start Point
		delta Point
		want  Point
	}{
		{"inside", Point{100, 100}, Point{20, 30}, Point{120, 130}},
		{"far right", Point{100, 100}, Point{5000, 0}, Point{770, 100}},
		{"far left", Point{100, 100}, Point{-5000, 0}, Point{-270, 100}},
		{"far down", Point{100, 100}, Point{0, 5000}, Point{100, 570}},
		{"far up", Point{100, 100}, Point{0, -5000}, Point{100, -170}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampMove(tt.start, tt.delta, size, viewport, 30)
			if got != tt.want {
				t.Errorf("ClampMove() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampMoveInvariant(t *testing.T) {
	viewport := Size{Width: 800, Height: 600}
	size := Size{Width: 250, Height: 180}
	const grabEdge = 30.0

	for dx := -3000.0; dx <= 3000; dx += 137 {
		for dy := -3000.0; dy <= 3000; dy += 211 {
			p := ClampMove(Point{200, 150}, Point{dx, dy}, size, viewport, grabEdge)
			if p.X < grabEdge-size.Width || p.X > viewport.Width-grabEdge {
				t.Fatalf("x = %v out of range for delta (%v,%v)", p.X, dx, dy)
			}
			if p.Y < grabEdge-size.Height || p.Y > viewport.Height-grabEdge {
				t.Fatalf("y = %v out of range for delta (%v,%v)", p.Y, dx, dy)
			}
		}
	}
}

func TestResize(t *testing.T) {
	start := Rect{X: 100, Y: 100, Width: 300, Height: 200}
	limits := Limits{MinWidth: 200, MinHeight: 100}

	tests := []struct {
		name  string
		dir   Direction
		delta Point
		want  Rect
	}{
		{"se grow", DirSE, Point{50, 40}, Rect{100, 100, 350, 240}},
		{"e shrink past min", DirE, Point{-500, 0}, Rect{100, 100, 200, 200}},
		{"w grow", DirW, Point{-40, 0}, Rect{60, 100, 340, 200}},
		{"w shrink past min keeps right edge", DirW, Point{500, 0}, Rect{200, 100, 200, 200}},
		{"n shrink past min keeps bottom edge", DirN, Point{0, 900}, Rect{100, 200, 300, 100}},
		{"nw both", DirNW, Point{10, 20}, Rect{110, 120, 290, 180}},
		{"s ignores x", DirS, Point{80, 10}, Rect{100, 100, 300, 210}},
		{"none", DirNone, Point{80, 10}, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(start, tt.dir, tt.delta, limits)
			if got != tt.want {
				t.Errorf("Resize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeMinimumHolds(t *testing.T) {
	start := Rect{X: 50, Y: 50, Width: 260, Height: 160}
	limits := Limits{MinWidth: 120, MinHeight: 90}

	for _, dir := range Directions {
		for d := -2000.0; d <= 2000; d += 173 {
			r := Resize(start, dir, Point{d, d}, limits)
			if r.Width < limits.MinWidth || r.Height < limits.MinHeight {
				t.Fatalf("Resize(%s, %v) = %+v below minimum", dir, d, r)
			}
			if dir.West() && r.Right() != start.Right() {
				t.Fatalf("Resize(%s, %v) moved right edge to %v", dir, d, r.Right())
			}
			if dir.North() && r.Bottom() != start.Bottom() {
				t.Fatalf("Resize(%s, %v) moved bottom edge to %v", dir, d, r.Bottom())
			}
		}
	}
}

func TestRectDistance(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		p    Point
		want float64
	}{
		{Point{10, 10}, 0},
		{Point{110, 10}, 10},
		{Point{10, -5}, 5},
		{Point{103, 54}, 5},
	}
	for _, tt := range tests {
		if got := r.Distance(tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	if got := ParseDirection("SE"); got != DirSE {
		t.Errorf("ParseDirection(SE) = %q, want %q", got, DirSE)
	}
	if got := ParseDirection("up"); got != DirNone {
		t.Errorf("ParseDirection(up) = %q, want none", got)
	}
}
