package app

import (
	"errors"
	"math"

	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/stacking"
	"github.com/Gaurav-Gosain/deskui/internal/window"
	"github.com/google/uuid"
)

// Content selects what a window shows.
type Content int

const (
	// ContentNotes shows a short usage text.
	ContentNotes Content = iota
	// ContentLog tails the in-app log.
	ContentLog
	// ContentHelp lists the key bindings.
	ContentHelp
	// ContentZones lists the dock zones at the current size.
	ContentZones
)

// Window is a desktop window and the controller that drives it.
type Window struct {
	ID      string
	Title   string
	Content Content
	Scroll  int
	Docked  string

	d       *Desktop
	ctrl    *window.Controller
	surface *surface
	release func()
}

var (
	errCaptured    = errors.New("pointer already captured")
	errNotCaptured = errors.New("pointer not captured by this window")
)

// surface is the capture target of a window: while it holds the pointer,
// every motion and release is routed to its window.
type surface struct{ w *Window }

func (s *surface) SetPointerCapture(pointerID int) error {
	d := s.w.d
	if d.capture != nil && d.capture != s.w {
		return errCaptured
	}
	d.capture, d.captureID = s.w, pointerID
	return nil
}

func (s *surface) ReleasePointerCapture(pointerID int) error {
	d := s.w.d
	if d.capture != s.w || d.captureID != pointerID {
		return errNotCaptured
	}
	d.capture = nil
	return nil
}

func newWindow(d *Desktop, id, title string, content Content, at geom.Point) *Window {
	if id == "" {
		id = uuid.NewString()
	}
	w := &Window{ID: id, Title: title, Content: content, d: d}
	w.surface = &surface{w: w}

	cfg := d.Behavior.WindowConfig()
	cfg.ID = w.ID
	cfg.Group = stacking.Base
	cfg.InitialPosition = at
	cfg.InitialSize = geom.Size{Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight}
	cfg.Viewport = d.Viewport
	cfg.Scheduler = d.Frames
	cfg.Stack = d.Stack
	cfg.Logger = d.Logger.With("title", title)
	cfg.Events = window.Events{
		OnActive: func() { d.activate(w) },
		OnDockPreview: func(zone string) {
			d.Status = "dock: " + zone
		},
		OnDockLeave: func() {
			d.Status = ""
		},
		OnDockCommit: func(c window.DockCommit) {
			w.Docked = c.ZoneID
			d.Logger.Info("window docked", "title", title, "zone", c.ZoneID, "rect", c.Rect)
		},
		OnMoveStart: func(geom.Point) { w.Docked = "" },
		OnMoveEnd: func(p geom.Point) {
			d.Logger.Debug("move end", "title", title, "x", p.X, "y", p.Y)
		},
		OnResizeStart: func(window.Geometry) { w.Docked = "" },
		OnResizeEnd: func(g window.Geometry) {
			d.Logger.Debug("resize end", "title", title, "w", g.Size.Width, "h", g.Size.Height)
		},
	}
	w.ctrl = window.New(cfg)
	return w
}

func (w *Window) mount() {
	w.ctrl.Mount()
	w.release = w.d.Mounts.AddConsumer(SlotDesktop, w.ID)
}

func (w *Window) unmount() {
	if w.d.capture == w {
		w.d.capture = nil
	}
	w.ctrl.Unmount()
	if w.release != nil {
		w.release()
		w.release = nil
	}
}

// Controller returns the interaction controller of w.
func (w *Window) Controller() *window.Controller { return w.ctrl }

// Active reports whether w is the active window.
func (w *Window) Active() bool { return w.ctrl.Active() }

// cellRect rounds the committed geometry to terminal cells.
func (w *Window) cellRect() (x, y, width, height int) {
	r := w.ctrl.Rect()
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.Width)), int(math.Round(r.Height))
}

// Region is the part of a window under a point.
type Region int

const (
	RegionNone Region = iota
	RegionTitle
	RegionBody
	RegionClose
	RegionSystemMenu
	RegionHandle
)

// closeButtonWidth is the cell width of the close button, padding included.
const closeButtonWidth = 3

// topGripWidth is the title bar cell left of the close button that resizes
// the top edge.
const topGripWidth = 1

// hit classifies a desktop-local cell. The title bar is row 0 and carries
// the top grip; the left, right and bottom borders are resize handles.
func (w *Window) hit(x, y int) (Region, geom.Direction) {
	wx, wy, ww, wh := w.cellRect()
	lx, ly := x-wx, y-wy
	if lx < 0 || ly < 0 || lx >= ww || ly >= wh {
		return RegionNone, geom.DirNone
	}

	left, right, bottom := lx == 0, lx == ww-1, ly == wh-1
	if ly == 0 {
		switch {
		case left:
			return RegionHandle, geom.DirNW
		case right:
			return RegionHandle, geom.DirNE
		case lx >= ww-1-closeButtonWidth:
			return RegionClose, geom.DirNone
		case lx >= ww-1-closeButtonWidth-topGripWidth:
			return RegionHandle, geom.DirN
		case w.d.Style == "win98" && lx <= 2:
			return RegionSystemMenu, geom.DirNone
		}
		return RegionTitle, geom.DirNone
	}

	switch {
	case bottom && left:
		return RegionHandle, geom.DirSW
	case bottom && right:
		return RegionHandle, geom.DirSE
	case bottom:
		return RegionHandle, geom.DirS
	case left:
		return RegionHandle, geom.DirW
	case right:
		return RegionHandle, geom.DirE
	}
	return RegionBody, geom.DirNone
}

// lines returns the body text of w.
func (w *Window) lines() []string {
	d := w.d
	switch w.Content {
	case ContentLog:
		out := make([]string, 0, len(d.LogMessages))
		for _, m := range d.LogMessages {
			out = append(out, m.Time.Format("15:04:05")+" "+m.Message)
		}
		return out
	case ContentHelp:
		var out []string
		for _, kb := range d.KeyMap.Help() {
			out = append(out, kb.Key+"  "+kb.Description)
		}
		return out
	case ContentZones:
		vp := d.Viewport()
		var out []string
		for _, z := range d.Behavior.DockZones() {
			if !z.IsEnabled() {
				continue
			}
			out = append(out, dock.Match{ZoneID: z.ID, Rect: z.Rect(vp)}.String())
		}
		return out
	default:
		return []string{
			"Drag the title bar to move.",
			"Drag an edge or corner to resize.",
			"Drop on a screen edge to dock.",
			"Right-click a title for its menu.",
			"F10 opens the menubar.",
		}
	}
}
