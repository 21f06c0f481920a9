// Package window implements the per-window interaction controller: the
// pointer-driven state machine behind moving, resizing and docking a
// floating window, plus its activation and stacking bookkeeping.
//
// A Controller is owned by a single event loop. Pointer moves are coalesced
// through a frame.Scheduler so geometry is computed at most once per frame
// using the latest pointer position.
package window

import (
	"io"
	"strings"

	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/frame"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/stacking"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Mode selects whether gestures update geometry live or only on release.
type Mode string

const (
	// Follow applies geometry every frame.
	Follow Mode = "follow"
	// Static updates a preview rect and commits on release.
	Static Mode = "static"
)

// ParseMode normalizes a mode string, defaulting to Follow.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == Static {
		return Static
	}
	return Follow
}

// DragMode selects which part of a window starts a move.
type DragMode string

const (
	// DragTitleBar moves the window only from its title bar.
	DragTitleBar DragMode = "titlebar"
	// DragWindow moves the window from anywhere outside its controls.
	DragWindow DragMode = "window"
)

// ParseDragMode normalizes a drag mode string, defaulting to DragTitleBar.
func ParseDragMode(s string) DragMode {
	if DragMode(strings.ToLower(strings.TrimSpace(s))) == DragWindow {
		return DragWindow
	}
	return DragTitleBar
}

// Kind is the type of gesture in progress.
type Kind int

const (
	KindNone Kind = iota
	KindMove
	KindResize
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindResize:
		return "resize"
	default:
		return "none"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Capturer is a surface that can take exclusive delivery of a pointer's
// events for the length of a gesture.
type Capturer interface {
	SetPointerCapture(pointerID int) error
	ReleasePointerCapture(pointerID int) error
}

// PointerEvent is one pointer sample delivered to the controller.
type PointerEvent struct {
	PointerID int
	Point     geom.Point
	Button    Button
	// Target is the surface that should capture the pointer. May be nil.
	Target Capturer
	// InControls is set when the event hit the window control buttons.
	InControls bool
}

// Geometry is the payload of resize callbacks.
type Geometry struct {
	Size     geom.Size
	Position geom.Point
}

// Rect returns g as a rect.
func (g Geometry) Rect() geom.Rect { return geom.NewRect(g.Position, g.Size) }

// DockCommit is the payload of the dock commit callback.
type DockCommit struct {
	ZoneID string
	Rect   geom.Rect
}

// Events are the callbacks a host can observe. Any field may be nil.
type Events struct {
	OnMoveStart   func(geom.Point)
	OnMoving      func(geom.Point)
	OnMoveEnd     func(geom.Point)
	OnResizeStart func(Geometry)
	OnResizing    func(Geometry)
	OnResizeEnd   func(Geometry)
	OnActive      func()
	OnDockPreview func(zoneID string)
	OnDockCommit  func(DockCommit)
	OnDockLeave   func()
}

// Docking configures dock-zone resolution during move gestures.
type Docking struct {
	Enabled bool
	Zones   []dock.Zone
	Policy  dock.Policy
}

// Default geometry fallbacks.
const (
	DefaultMinWidth  = 200
	DefaultMinHeight = 100
	DefaultGrabEdge  = 30
	DefaultWidth     = 400
	DefaultHeight    = 300
)

// DefaultViewport is used when Config.Viewport is nil.
var DefaultViewport = geom.Size{Width: 1280, Height: 800}

// Config configures a Controller. Start from DefaultConfig; zero numeric
// fields fall back to the defaults above.
type Config struct {
	ID              string
	Group           stacking.Group
	InitialPosition geom.Point
	InitialSize     geom.Size
	Active          bool

	Mode              Mode
	Movable           bool
	Resizable         bool
	MinWidth          float64
	MinHeight         float64
	MaxWidth          float64
	MaxHeight         float64
	GrabEdge          float64
	ActivateWholeArea bool
	DragMode          DragMode
	Docking           Docking

	// Viewport is read on every frame; it is never cached.
	Viewport func() geom.Size
	// Measure returns the live rect of the window, if it has been laid out.
	Measure func() (geom.Rect, bool)

	Scheduler frame.Scheduler
	Stack     *stacking.Registry
	Logger    *log.Logger
	Events    Events
}

// DefaultConfig returns a movable, resizable, follow-mode configuration.
func DefaultConfig() Config {
	return Config{
		Group:             stacking.Base,
		InitialSize:       geom.Size{Width: DefaultWidth, Height: DefaultHeight},
		Mode:              Follow,
		Movable:           true,
		Resizable:         true,
		MinWidth:          DefaultMinWidth,
		MinHeight:         DefaultMinHeight,
		GrabEdge:          DefaultGrabEdge,
		ActivateWholeArea: true,
		DragMode:          DragTitleBar,
		Docking:           Docking{Policy: dock.DefaultPolicy()},
	}
}

func (c *Config) fillMissing() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Group == "" {
		c.Group = stacking.Base
	}
	if c.Mode == "" {
		c.Mode = Follow
	}
	if c.DragMode == "" {
		c.DragMode = DragTitleBar
	}
	if c.MinWidth <= 0 {
		c.MinWidth = DefaultMinWidth
	}
	if c.MinHeight <= 0 {
		c.MinHeight = DefaultMinHeight
	}
	if c.GrabEdge <= 0 {
		c.GrabEdge = DefaultGrabEdge
	}
	if c.InitialSize.Width <= 0 {
		c.InitialSize.Width = DefaultWidth
	}
	if c.InitialSize.Height <= 0 {
		c.InitialSize.Height = DefaultHeight
	}
	if c.Docking.Policy.Mode == "" {
		c.Docking.Policy.Mode = dock.ModeRelease
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}
