package app

import (
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/window"
)

func (d *Desktop) pointerEvent(w *Window, x, y int, button window.Button) window.PointerEvent {
	return window.PointerEvent{
		PointerID: config.PointerID,
		Point:     d.toLocal(x, y),
		Button:    button,
		Target:    w.surface,
	}
}

// PointerDown routes a press at screen cell (x, y). Open popups are hit
// first, then the menubar, the taskbar and the windows from the top down.
func (d *Desktop) PointerDown(x, y int, button window.Button) {
	if d.startGripHit(x, y) {
		d.StartMenu.PointerDown(config.PointerID, float64(y))
		return
	}
	for _, box := range d.popupBoxes() {
		if !box.contains(x, y) {
			continue
		}
		if it, ok := box.itemAt(x, y); ok && button == window.ButtonPrimary {
			box.menu.Click(box.level, it.ID)
		}
		return
	}

	onStart := y == d.TaskbarRow() && x < startButtonWidth()
	d.Context.PointerDownOutside()
	if !onStart {
		d.StartMenu.SetOpen(false)
	}

	if y < config.MenuBarHeight {
		if id, ok := d.rootAt(x); ok && button == window.ButtonPrimary {
			d.MenuBar.Click(0, id)
			if !d.MenuBar.IsOpen() {
				d.MenuBar.Blur()
			}
		} else {
			d.MenuBar.PointerDownOutside()
		}
		return
	}
	d.MenuBar.PointerDownOutside()

	if y == d.TaskbarRow() {
		d.taskbarDown(x, button)
		return
	}

	local := d.toLocal(x, y)
	ws := d.windowsByZ()
	for i := len(ws) - 1; i >= 0; i-- {
		w := ws[i]
		region, dir := w.hit(int(local.X), int(local.Y))
		if region == RegionNone {
			continue
		}
		ev := d.pointerEvent(w, x, y, button)
		switch {
		case region == RegionClose && button == window.ButtonPrimary:
			_ = d.CloseWindow(w.ID)
		case region == RegionSystemMenu && button == window.ButtonPrimary,
			region == RegionTitle && button == window.ButtonSecondary:
			w.ctrl.SetActive(true)
			d.OpenWindowMenu(w, x, y+1)
		case region == RegionTitle:
			w.ctrl.TitlePointerDown(ev)
			// The title bar activates even when the window body does not.
			w.ctrl.SetActive(true)
		case region == RegionHandle:
			w.ctrl.HandlePointerDown(dir, ev)
		case region == RegionBody:
			if !w.ctrl.BodyPointerDown(ev) {
				w.ctrl.SetActive(true)
			}
		}
		return
	}
}

func (d *Desktop) startGripHit(x, y int) bool {
	if !d.StartMenu.Open() {
		return false
	}
	r := d.startPanelRect()
	return y == d.startGripRow() && x >= int(r.X) && x < int(r.Right())
}

func (d *Desktop) taskbarDown(x int, button window.Button) {
	if button != window.ButtonPrimary {
		return
	}
	if x < startButtonWidth() {
		d.StartMenu.Toggle()
		return
	}
	for _, s := range d.taskbarSpans() {
		if x >= s.x && x < s.x+s.width {
			s.w.ctrl.SetActive(true)
			return
		}
	}
}

// PointerMove routes motion to the capture owner, the start menu drag, or
// the menus under the pointer.
func (d *Desktop) PointerMove(x, y int) {
	if w := d.capture; w != nil {
		w.ctrl.PointerMove(d.pointerEvent(w, x, y, window.ButtonPrimary))
		return
	}
	if d.StartMenu.Dragging() {
		d.StartMenu.PointerMove(config.PointerID, float64(y))
		return
	}
	for _, box := range d.popupBoxes() {
		if !box.contains(x, y) {
			continue
		}
		if it, ok := box.itemAt(x, y); ok {
			box.menu.Hover(box.level, it.ID)
		}
		return
	}
	if y < config.MenuBarHeight && d.MenuBar.IsOpen() {
		if id, ok := d.rootAt(x); ok {
			d.MenuBar.Hover(0, id)
		}
	}
}

// PointerUp ends the gesture that owns the pointer.
func (d *Desktop) PointerUp(x, y int) {
	if w := d.capture; w != nil {
		w.ctrl.PointerUp(d.pointerEvent(w, x, y, window.ButtonPrimary))
		return
	}
	if d.StartMenu.Dragging() {
		d.StartMenu.PointerUp(config.PointerID, float64(y))
	}
}

// PointerCancel aborts the gesture that owns the pointer. It reports
// whether one was in progress.
func (d *Desktop) PointerCancel() bool {
	if w := d.capture; w != nil {
		w.ctrl.PointerCancel(window.PointerEvent{PointerID: d.captureID, Target: w.surface})
		return true
	}
	if d.StartMenu.Dragging() {
		d.StartMenu.PointerCancel(config.PointerID)
		return true
	}
	return false
}

// Wheel scrolls the body of the window under (x, y) by delta lines.
func (d *Desktop) Wheel(x, y, delta int) {
	local := d.toLocal(x, y)
	ws := d.windowsByZ()
	for i := len(ws) - 1; i >= 0; i-- {
		w := ws[i]
		region, _ := w.hit(int(local.X), int(local.Y))
		if region == RegionNone {
			continue
		}
		if region == RegionBody {
			w.scroll(delta)
		}
		return
	}
}

// scroll moves the body text; log windows count lines back from the tail.
func (w *Window) scroll(delta int) {
	if w.Content == ContentLog {
		delta = -delta
	}
	w.Scroll = max(min(w.Scroll+delta, max(len(w.lines())-1, 0)), 0)
}
