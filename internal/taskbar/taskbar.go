// Package taskbar implements the start menu state: open/closed and the
// discrete-height drag that snaps the panel between its 1x and 2x levels.
package taskbar

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Level is a discrete start menu height.
type Level string

const (
	Level1x Level = "1x"
	Level2x Level = "2x"
)

// NormalizeLevel maps any value to a legal level: exactly "2x" is Level2x,
// everything else is Level1x.
func NormalizeLevel(s string) Level {
	if s == string(Level2x) {
		return Level2x
	}
	return Level1x
}

// Mount is where the panel sits relative to its anchor.
type Mount string

const (
	MountTop    Mount = "top"
	MountBottom Mount = "bottom"
)

// ParseMount normalizes a mount string, defaulting to MountBottom.
func ParseMount(s string) Mount {
	if Mount(strings.ToLower(strings.TrimSpace(s))) == MountTop {
		return MountTop
	}
	return MountBottom
}

// DirectionFactor flips drag deltas so that growing the panel is always a
// positive delta. A bottom-mounted panel grows upward.
func (m Mount) DirectionFactor() float64 {
	if m == MountTop {
		return 1
	}
	return -1
}

// ResolveSnappedLevel returns the level a drag of deltaY from base should
// show. The panel changes by at most one step and only once the threshold
// is crossed.
func ResolveSnappedLevel(base Level, deltaY, directionFactor, threshold float64) Level {
	n := deltaY * directionFactor
	switch {
	case base == Level1x && n >= threshold:
		return Level2x
	case base == Level2x && n <= -threshold:
		return Level1x
	default:
		return base
	}
}

// LevelHeights maps levels to panel heights.
type LevelHeights struct {
	Level1x float64
	Level2x float64
}

// Config configures a StartMenu.
type Config struct {
	Mount             Mount
	DiscreteHeight    bool
	Heights           LevelHeights
	SwitchThresholdPx float64
	InitialLevel      string
	Logger            *log.Logger

	OnOpenChange  func(open bool)
	OnLevelChange func(Level)
}

// Default discrete height settings.
const (
	DefaultSwitchThreshold = 40
	DefaultHeight1x        = 360
	DefaultHeight2x        = 560
)

// StartMenu is the start menu controller.
type StartMenu struct {
	cfg   Config
	open  bool
	level Level

	dragging  bool
	pointerID int
	startY    float64
	base      Level
	preview   Level
}

// New returns a closed start menu.
func New(cfg Config) *StartMenu {
	if cfg.Mount == "" {
		cfg.Mount = MountBottom
	}
	if cfg.SwitchThresholdPx <= 0 {
		cfg.SwitchThresholdPx = DefaultSwitchThreshold
	}
	if cfg.Heights.Level1x <= 0 {
		cfg.Heights.Level1x = DefaultHeight1x
	}
	if cfg.Heights.Level2x <= 0 {
		cfg.Heights.Level2x = DefaultHeight2x
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &StartMenu{cfg: cfg, level: NormalizeLevel(cfg.InitialLevel)}
}

// Open reports whether the menu is open.
func (s *StartMenu) Open() bool { return s.open }

// SetOpen opens or closes the menu. Closing ends any height drag.
func (s *StartMenu) SetOpen(open bool) {
	if s.open == open {
		return
	}
	s.open = open
	if !open {
		s.dragging = false
	}
	if s.cfg.OnOpenChange != nil {
		s.cfg.OnOpenChange(open)
	}
}

// Toggle flips the open state, as a click on the start button does.
func (s *StartMenu) Toggle() { s.SetOpen(!s.open) }

// KeyDown toggles on Enter or Space and reports whether the key was used.
func (s *StartMenu) KeyDown(key string) bool {
	switch key {
	case "enter", "space", " ":
		s.Toggle()
		return true
	}
	return false
}

// Mount returns the panel mount.
func (s *StartMenu) Mount() Mount { return s.cfg.Mount }

// Level returns the level shown, including a drag preview.
func (s *StartMenu) Level() Level {
	if s.dragging {
		return s.preview
	}
	return s.level
}

// SetLevel sets the committed level. Invalid values are normalized.
func (s *StartMenu) SetLevel(level string) {
	s.commit(NormalizeLevel(level))
}

func (s *StartMenu) commit(l Level) {
	if l == s.level {
		return
	}
	s.level = l
	s.cfg.Logger.Debug("start menu level changed", "level", l)
	if s.cfg.OnLevelChange != nil {
		s.cfg.OnLevelChange(l)
	}
}

// Height returns the panel height for the shown level.
func (s *StartMenu) Height() float64 {
	if s.Level() == Level2x {
		return s.cfg.Heights.Level2x
	}
	return s.cfg.Heights.Level1x
}

// Dragging reports whether a height drag is in progress.
func (s *StartMenu) Dragging() bool { return s.dragging }

// PointerDown starts a height drag from the resize handle. It reports
// whether a drag started.
func (s *StartMenu) PointerDown(pointerID int, y float64) bool {
	if !s.cfg.DiscreteHeight || !s.open || s.dragging {
		return false
	}
	s.dragging = true
	s.pointerID = pointerID
	s.startY = y
	s.base = s.level
	s.preview = s.level
	return true
}

// PointerMove updates the previewed level.
func (s *StartMenu) PointerMove(pointerID int, y float64) {
	if !s.dragging || pointerID != s.pointerID {
		return
	}
	s.preview = ResolveSnappedLevel(s.base, y-s.startY, s.cfg.Mount.DirectionFactor(), s.cfg.SwitchThresholdPx)
}

// PointerUp ends the drag and commits the snapped level.
func (s *StartMenu) PointerUp(pointerID int, y float64) {
	if !s.dragging || pointerID != s.pointerID {
		return
	}
	final := ResolveSnappedLevel(s.base, y-s.startY, s.cfg.Mount.DirectionFactor(), s.cfg.SwitchThresholdPx)
	s.dragging = false
	s.commit(final)
}

// PointerCancel ends the drag like PointerUp using the last preview.
func (s *StartMenu) PointerCancel(pointerID int) {
	if !s.dragging || pointerID != s.pointerID {
		return
	}
	final := s.preview
	s.dragging = false
	s.commit(final)
}
