package window

import (
	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/frame"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
)

// Interaction is the state of the gesture in progress. It lives from
// pointer-down to pointer-up or cancel.
type Interaction struct {
	Active       bool
	Kind         Kind
	Mode         Mode
	Direction    geom.Direction
	StartPointer geom.Point
	StartRect    geom.Rect
	PointerID    int
	Current      geom.Rect

	captured Capturer
}

// Controller drives one window.
type Controller struct {
	cfg Config

	position geom.Point
	size     geom.Size
	preview  geom.Rect
	active   bool
	mounted  bool

	// pointerActivated marks an activation already announced by a
	// pointer-down so the transition does not announce it again.
	pointerActivated bool

	state      Interaction
	frameID    frame.ID
	latest     geom.Point
	tracker    dock.Tracker
	unregister func()
}

// New returns a controller for cfg. Call Mount before use.
func New(cfg Config) *Controller {
	cfg.fillMissing()
	return &Controller{
		cfg:      cfg,
		position: cfg.InitialPosition,
		size:     cfg.InitialSize,
		active:   cfg.Active,
	}
}

// ID returns the window id.
func (c *Controller) ID() string { return c.cfg.ID }

// Config returns the controller configuration.
func (c *Controller) Config() Config { return c.cfg }

// Mount registers the window with the stacking registry.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	if c.cfg.Stack == nil {
		return
	}
	c.unregister = c.cfg.Stack.Register(c.cfg.Group, c.cfg.ID)
	if c.active {
		c.cfg.Stack.BringToFront(c.cfg.Group, c.cfg.ID)
	}
}

// Unmount tears the controller down. A gesture in progress is abandoned
// without callbacks: the pending frame is cancelled and capture released.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.cancelFrame()
	c.releaseCapture()
	c.state = Interaction{}
	c.tracker.Reset()
	if c.unregister != nil {
		c.unregister()
		c.unregister = nil
	}
}

// Position returns the committed position.
func (c *Controller) Position() geom.Point { return c.position }

// Size returns the committed size.
func (c *Controller) Size() geom.Size { return c.size }

// Rect returns the committed geometry.
func (c *Controller) Rect() geom.Rect { return geom.NewRect(c.position, c.size) }

// SetPosition replaces the committed position.
func (c *Controller) SetPosition(p geom.Point) { c.position = p }

// SetSize replaces the committed size.
func (c *Controller) SetSize(s geom.Size) { c.size = s }

// Preview returns the ghost rect of a static-mode gesture.
func (c *Controller) Preview() (geom.Rect, bool) {
	if !c.state.Active || c.state.Mode != Static {
		return geom.Rect{}, false
	}
	return c.preview, true
}

// Interaction returns a copy of the gesture state.
func (c *Controller) Interaction() Interaction { return c.state }

// Interacting reports whether a gesture is in progress.
func (c *Controller) Interacting() bool { return c.state.Active }

// DockPreview returns the zone the current move would dock into.
func (c *Controller) DockPreview() (dock.Match, bool) {
	if !c.state.Active {
		return dock.Match{}, false
	}
	return c.tracker.Current()
}

// Active reports whether the window is active.
func (c *Controller) Active() bool { return c.active }

// SetActive updates the active flag from the host. Becoming active brings
// the window to the front and fires OnActive unless a pointer-down already
// announced this activation.
func (c *Controller) SetActive(active bool) {
	if c.active == active {
		return
	}
	c.active = active
	if !active {
		c.pointerActivated = false
		return
	}
	if c.cfg.Stack != nil {
		c.cfg.Stack.BringToFront(c.cfg.Group, c.cfg.ID)
	}
	if c.pointerActivated {
		c.pointerActivated = false
		return
	}
	if c.cfg.Events.OnActive != nil {
		c.cfg.Events.OnActive()
	}
}

// activateFromPointer announces the activation right away, before the
// gesture starts, and marks it so the transition stays silent.
func (c *Controller) activateFromPointer() {
	if c.active || !c.cfg.ActivateWholeArea {
		return
	}
	c.pointerActivated = true
	if c.cfg.Events.OnActive != nil {
		c.cfg.Events.OnActive()
	}
	c.SetActive(true)
}

// KeyDown handles activation keys. It reports whether the key was used.
func (c *Controller) KeyDown(key string, inControls bool) bool {
	if key != "enter" && key != "space" && key != " " {
		return false
	}
	if inControls || !c.cfg.ActivateWholeArea || c.active {
		return false
	}
	c.SetActive(true)
	return true
}

func (c *Controller) viewport() geom.Size {
	if c.cfg.Viewport == nil {
		return DefaultViewport
	}
	return c.cfg.Viewport()
}

func (c *Controller) limits() geom.Limits {
	return geom.Limits{
		MinWidth:  c.cfg.MinWidth,
		MinHeight: c.cfg.MinHeight,
		MaxWidth:  c.cfg.MaxWidth,
		MaxHeight: c.cfg.MaxHeight,
	}
}

func (c *Controller) cancelFrame() {
	if c.frameID == 0 {
		return
	}
	if c.cfg.Scheduler != nil {
		c.cfg.Scheduler.Cancel(c.frameID)
	}
	c.frameID = 0
}

func (c *Controller) releaseCapture() {
	target := c.state.captured
	if target == nil {
		return
	}
	c.state.captured = nil
	if err := target.ReleasePointerCapture(c.state.PointerID); err != nil {
		c.cfg.Logger.Debug("failed to release pointer capture", "window", c.cfg.ID, "pointer", c.state.PointerID, "err", err)
	}
}
