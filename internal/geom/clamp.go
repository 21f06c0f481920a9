package geom

import "strings"

// Direction names the edge or corner a resize gesture drags.
type Direction string

// Resize directions.
const (
	DirNone Direction = ""
	DirN    Direction = "n"
	DirS    Direction = "s"
	DirE    Direction = "e"
	DirW    Direction = "w"
	DirNE   Direction = "ne"
	DirNW   Direction = "nw"
	DirSE   Direction = "se"
	DirSW   Direction = "sw"
)

// Directions lists every resize direction, edges first.
var Directions = []Direction{DirN, DirS, DirE, DirW, DirNE, DirNW, DirSE, DirSW}

// ParseDirection accepts a direction in any letter case. Unknown values
// yield DirNone.
func ParseDirection(s string) Direction {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Directions {
		if d == known {
			return d
		}
	}
	return DirNone
}

// North reports whether the direction drags the top edge.
func (d Direction) North() bool { return strings.Contains(string(d), "n") }

// South reports whether the direction drags the bottom edge.
func (d Direction) South() bool { return strings.Contains(string(d), "s") }

// East reports whether the direction drags the right edge.
func (d Direction) East() bool { return strings.Contains(string(d), "e") }

// West reports whether the direction drags the left edge.
func (d Direction) West() bool { return strings.Contains(string(d), "w") }

// ClampMove returns start+delta limited so that at least grabEdge units of
// the window stay reachable inside the viewport on every side:
//
//	grabEdge - width  <= x <= viewport.Width  - grabEdge
//	grabEdge - height <= y <= viewport.Height - grabEdge
func ClampMove(start Point, delta Point, size Size, viewport Size, grabEdge float64) Point {
	next := start.Add(delta)
	return Point{
		X: Clamp(next.X, grabEdge-size.Width, viewport.Width-grabEdge),
		Y: Clamp(next.Y, grabEdge-size.Height, viewport.Height-grabEdge),
	}
}

// Limits bounds a resize. Zero maximums mean unbounded.
type Limits struct {
	MinWidth, MinHeight float64
	MaxWidth, MaxHeight float64
}

func (l Limits) width(w float64) float64 {
	if l.MaxWidth > 0 && w > l.MaxWidth {
		w = l.MaxWidth
	}
	if w < l.MinWidth {
		w = l.MinWidth
	}
	return w
}

func (l Limits) height(h float64) float64 {
	if l.MaxHeight > 0 && h > l.MaxHeight {
		h = l.MaxHeight
	}
	if h < l.MinHeight {
		h = l.MinHeight
	}
	return h
}

// Resize applies a pointer delta to start along dir. Each edge adjusts
// independently. For north and west edges the position moves by the
// clamped change in size, so the opposite edge never moves.
func Resize(start Rect, dir Direction, delta Point, limits Limits) Rect {
	out := start
	if dir.East() {
		out.Width = limits.width(start.Width + delta.X)
	}
	if dir.West() {
		out.Width = limits.width(start.Width - delta.X)
		out.X = start.X + (start.Width - out.Width)
	}
	if dir.South() {
		out.Height = limits.height(start.Height + delta.Y)
	}
	if dir.North() {
		out.Height = limits.height(start.Height - delta.Y)
		out.Y = start.Y + (start.Height - out.Height)
	}
	return out
}
