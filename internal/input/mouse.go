package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/app"
	"github.com/Gaurav-Gosain/deskui/internal/window"
)

func pointerButton(b tea.MouseButton) window.Button {
	switch b {
	case tea.MouseRight:
		return window.ButtonSecondary
	case tea.MouseMiddle:
		return window.ButtonMiddle
	default:
		return window.ButtonPrimary
	}
}

func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	d.PointerDown(mouse.X, mouse.Y, pointerButton(mouse.Button))
	return d, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	d.PointerMove(mouse.X, mouse.Y)
	return d, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	d.PointerUp(mouse.X, mouse.Y)
	return d, nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	switch mouse.Button {
	case tea.MouseWheelUp:
		d.Wheel(mouse.X, mouse.Y, -1)
	case tea.MouseWheelDown:
		d.Wheel(mouse.X, mouse.Y, 1)
	}
	return d, nil
}

// WantsMotion reports whether pointer motion can change anything: a
// gesture is running or a menu is open.
func WantsMotion(d *app.Desktop) bool {
	return d.Interacting() || d.MenuBar.IsOpen() || d.Context.IsOpen() || d.StartMenu.Open()
}

// Filter drops motion events nothing is listening to.
func Filter(m tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if d, ok := m.(*app.Desktop); ok && !WantsMotion(d) {
		return nil
	}
	return msg
}
