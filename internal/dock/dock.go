// Package dock resolves which docking zone, if any, a dragged window is
// hovering. Zones are defined on a 3x3 grid with lines 1..4 on each axis
// and are turned into viewport rects every time they are used.
package dock

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/deskui/internal/geom"
)

// gridSegments is the number of equal segments per axis.
const gridSegments = 3

// Mode controls what happens when a move gesture ends inside a zone.
type Mode string

const (
	// ModeFollow only previews the zone; the window stays where it was dropped.
	ModeFollow Mode = "follow"
	// ModeRelease snaps the window into the zone rect on drop.
	ModeRelease Mode = "release"
)

// ParseMode normalizes a mode string, defaulting to ModeRelease.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeFollow {
		return ModeFollow
	}
	return ModeRelease
}

// Policy decides when a zone is eligible and what a drop does.
type Policy struct {
	ThresholdPx float64
	Mode        Mode
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{ThresholdPx: 24, Mode: ModeRelease}
}

// Zone is a named region on the dock grid. Grid lines run 1..4.
// Enabled is a pointer so that an absent value means enabled.
type Zone struct {
	ID          string `toml:"id" yaml:"id"`
	ColumnStart int    `toml:"column_start" yaml:"column_start"`
	ColumnEnd   int    `toml:"column_end" yaml:"column_end"`
	RowStart    int    `toml:"row_start" yaml:"row_start"`
	RowEnd      int    `toml:"row_end" yaml:"row_end"`
	Enabled     *bool  `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Priority    int    `toml:"priority,omitempty" yaml:"priority,omitempty"`
}

// IsEnabled reports whether the zone takes part in resolution.
func (z Zone) IsEnabled() bool {
	return z.Enabled == nil || *z.Enabled
}

// Rect resolves the zone to viewport units. Grid lines are clamped to
// 1..4 and swapped if given in reverse.
func (z Zone) Rect(viewport geom.Size) geom.Rect {
	c0, c1 := gridSpan(z.ColumnStart, z.ColumnEnd)
	r0, r1 := gridSpan(z.RowStart, z.RowEnd)
	cw := viewport.Width / gridSegments
	rh := viewport.Height / gridSegments
	return geom.Rect{
		X:      float64(c0-1) * cw,
		Y:      float64(r0-1) * rh,
		Width:  float64(c1-c0) * cw,
		Height: float64(r1-r0) * rh,
	}
}

func gridSpan(start, end int) (int, int) {
	start = clampLine(start)
	end = clampLine(end)
	if end < start {
		start, end = end, start
	}
	if end == start {
		if end < gridSegments+1 {
			end++
		} else {
			start--
		}
	}
	return start, end
}

func clampLine(v int) int {
	if v < 1 {
		return 1
	}
	if v > gridSegments+1 {
		return gridSegments + 1
	}
	return v
}

// Match is a resolved zone.
type Match struct {
	ZoneID string
	Rect   geom.Rect
}

func (m Match) String() string {
	return fmt.Sprintf("%s (%.0f,%.0f %.0fx%.0f)", m.ZoneID, m.Rect.X, m.Rect.Y, m.Rect.Width, m.Rect.Height)
}

// Resolve returns the zone closest to p within threshold. Equal distances
// are won by the higher priority; remaining ties keep the first zone in
// definition order. ok is false when no zone qualifies.
func Resolve(zones []Zone, p geom.Point, threshold float64, viewport geom.Size) (m Match, ok bool) {
	bestDist := 0.0
	bestPriority := 0
	for _, z := range zones {
		if !z.IsEnabled() {
			continue
		}
		r := z.Rect(viewport)
		d := r.Distance(p)
		if d > threshold {
			continue
		}
		if ok && (d > bestDist || (d == bestDist && z.Priority <= bestPriority)) {
			continue
		}
		m = Match{ZoneID: z.ID, Rect: r}
		bestDist, bestPriority, ok = d, z.Priority, true
	}
	return m, ok
}

// DefaultZones returns the standard snap layout: halves, maximize along the
// top edge and the four corners. Corners and the top strip outrank the
// halves they overlap.
func DefaultZones() []Zone {
	return []Zone{
		{ID: "left", ColumnStart: 1, ColumnEnd: 2, RowStart: 1, RowEnd: 4},
		{ID: "right", ColumnStart: 3, ColumnEnd: 4, RowStart: 1, RowEnd: 4},
		{ID: "maximize", ColumnStart: 2, ColumnEnd: 3, RowStart: 1, RowEnd: 2, Priority: 1},
		{ID: "top-left", ColumnStart: 1, ColumnEnd: 2, RowStart: 1, RowEnd: 2, Priority: 2},
		{ID: "top-right", ColumnStart: 3, ColumnEnd: 4, RowStart: 1, RowEnd: 2, Priority: 2},
		{ID: "bottom-left", ColumnStart: 1, ColumnEnd: 2, RowStart: 3, RowEnd: 4, Priority: 2},
		{ID: "bottom-right", ColumnStart: 3, ColumnEnd: 4, RowStart: 3, RowEnd: 4, Priority: 2},
	}
}
