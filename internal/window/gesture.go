package window

import (
	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
)

// TitlePointerDown handles a pointer-down on the title bar and starts a
// move gesture when allowed. It reports whether a gesture started.
func (c *Controller) TitlePointerDown(ev PointerEvent) bool {
	if !c.accepts(ev) {
		return false
	}
	c.activateFromPointer()
	if !c.cfg.Movable {
		return false
	}
	return c.begin(KindMove, geom.DirNone, ev)
}

// BodyPointerDown handles a pointer-down on the window body. It activates
// the window and, in DragWindow mode, starts a move gesture.
func (c *Controller) BodyPointerDown(ev PointerEvent) bool {
	if !c.accepts(ev) {
		return false
	}
	c.activateFromPointer()
	if !c.cfg.Movable || c.cfg.DragMode != DragWindow {
		return false
	}
	return c.begin(KindMove, geom.DirNone, ev)
}

// HandlePointerDown handles a pointer-down on one of the resize handles.
func (c *Controller) HandlePointerDown(dir geom.Direction, ev PointerEvent) bool {
	if dir == geom.DirNone || !c.accepts(ev) {
		return false
	}
	c.activateFromPointer()
	if !c.cfg.Resizable {
		return false
	}
	return c.begin(KindResize, dir, ev)
}

func (c *Controller) accepts(ev PointerEvent) bool {
	return c.mounted && ev.Button == ButtonPrimary && !ev.InControls && !c.state.Active
}

func (c *Controller) startRect() geom.Rect {
	if c.cfg.Measure != nil {
		if r, ok := c.cfg.Measure(); ok && r.Width > 0 && r.Height > 0 {
			return r
		}
	}
	return c.Rect()
}

func (c *Controller) begin(kind Kind, dir geom.Direction, ev PointerEvent) bool {
	start := c.startRect()
	c.state = Interaction{
		Active:       true,
		Kind:         kind,
		Mode:         c.cfg.Mode,
		Direction:    dir,
		StartPointer: ev.Point,
		StartRect:    start,
		PointerID:    ev.PointerID,
		Current:      start,
	}
	c.latest = ev.Point
	c.preview = start
	c.tracker.Reset()

	if ev.Target != nil {
		if err := ev.Target.SetPointerCapture(ev.PointerID); err != nil {
			c.cfg.Logger.Debug("failed to capture pointer", "window", c.cfg.ID, "pointer", ev.PointerID, "err", err)
		} else {
			c.state.captured = ev.Target
		}
	}

	c.cfg.Logger.Debug("gesture started", "window", c.cfg.ID, "kind", kind, "mode", c.cfg.Mode, "dir", dir)

	switch kind {
	case KindMove:
		if c.cfg.Events.OnMoveStart != nil {
			c.cfg.Events.OnMoveStart(start.Position())
		}
	case KindResize:
		if c.cfg.Events.OnResizeStart != nil {
			c.cfg.Events.OnResizeStart(Geometry{Size: start.Size(), Position: start.Position()})
		}
	}
	return true
}

// PointerMove records the latest pointer position and schedules one
// geometry update for the next frame. Moves from other pointers are ignored.
func (c *Controller) PointerMove(ev PointerEvent) {
	if !c.state.Active || ev.PointerID != c.state.PointerID {
		return
	}
	c.latest = ev.Point
	if c.cfg.Scheduler == nil {
		c.apply(c.latest)
		return
	}
	if c.frameID != 0 {
		return
	}
	c.frameID = c.cfg.Scheduler.Request(c.onFrame)
}

func (c *Controller) onFrame() {
	c.frameID = 0
	if !c.state.Active {
		return
	}
	c.apply(c.latest)
}

func (c *Controller) apply(p geom.Point) {
	s := &c.state
	delta := p.Sub(s.StartPointer)

	switch s.Kind {
	case KindMove:
		pos := geom.ClampMove(s.StartRect.Position(), delta, s.StartRect.Size(), c.viewport(), c.cfg.GrabEdge)
		s.Current = geom.NewRect(pos, s.StartRect.Size())
		if s.Mode == Follow {
			c.position = pos
		} else {
			c.preview = s.Current
		}
		if c.cfg.Events.OnMoving != nil {
			c.cfg.Events.OnMoving(pos)
		}
		c.updateDock(p)

	case KindResize:
		r := geom.Resize(s.StartRect, s.Direction, delta, c.limits())
		s.Current = r
		if s.Mode == Follow {
			c.position = r.Position()
			c.size = r.Size()
		} else {
			c.preview = r
		}
		if c.cfg.Events.OnResizing != nil {
			c.cfg.Events.OnResizing(Geometry{Size: r.Size(), Position: r.Position()})
		}
	}
}

func (c *Controller) updateDock(p geom.Point) {
	d := c.cfg.Docking
	if !d.Enabled || len(d.Zones) == 0 {
		return
	}
	m, ok := dock.Resolve(d.Zones, p, d.Policy.ThresholdPx, c.viewport())
	switch c.tracker.Update(m, ok) {
	case dock.Entered:
		if c.cfg.Events.OnDockPreview != nil {
			c.cfg.Events.OnDockPreview(m.ZoneID)
		}
	case dock.Left:
		if c.cfg.Events.OnDockLeave != nil {
			c.cfg.Events.OnDockLeave()
		}
	}
}

// PointerUp ends the gesture and commits its geometry.
func (c *Controller) PointerUp(ev PointerEvent) {
	if !c.state.Active || ev.PointerID != c.state.PointerID {
		return
	}
	c.finish()
}

// PointerCancel ends the gesture exactly like PointerUp.
func (c *Controller) PointerCancel(ev PointerEvent) {
	c.PointerUp(ev)
}

// Abort ends any gesture as if its pointer was cancelled.
func (c *Controller) Abort() {
	if c.state.Active {
		c.finish()
	}
}

func (c *Controller) finish() {
	// Coordinates still waiting for a frame are applied now rather than lost.
	if c.frameID != 0 {
		c.cancelFrame()
		c.apply(c.latest)
	}
	c.releaseCapture()

	s := c.state
	c.state = Interaction{}

	switch s.Kind {
	case KindMove:
		c.position = s.Current.Position()
		zone, docked := c.tracker.Current()
		if docked && c.cfg.Docking.Policy.Mode == dock.ModeRelease {
			c.position = zone.Rect.Position()
			c.size = zone.Rect.Size()
			c.cfg.Logger.Debug("window docked", "window", c.cfg.ID, "zone", zone.ZoneID)
			if c.cfg.Events.OnDockCommit != nil {
				c.cfg.Events.OnDockCommit(DockCommit{ZoneID: zone.ZoneID, Rect: zone.Rect})
			}
		}
		if c.cfg.Events.OnMoveEnd != nil {
			c.cfg.Events.OnMoveEnd(c.position)
		}
		if c.tracker.Reset() && c.cfg.Events.OnDockLeave != nil {
			c.cfg.Events.OnDockLeave()
		}

	case KindResize:
		c.position = s.Current.Position()
		c.size = s.Current.Size()
		if c.cfg.Events.OnResizeEnd != nil {
			c.cfg.Events.OnResizeEnd(Geometry{Size: c.size, Position: c.position})
		}
	}
}
