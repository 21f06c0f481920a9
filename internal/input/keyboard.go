package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/app"
)

var dispatcher = NewActionDispatcher()

func isEscape(key string) bool { return key == "esc" || key == "escape" }

// HandleKeyPress routes a key to the topmost consumer: an open window
// menu, the start menu, the menubar, a running gesture and finally the
// key map.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	key := msg.String()
	if key == " " {
		key = "space"
	}

	if isEscape(key) && d.PointerCancel() {
		return d, nil
	}

	if d.Context.IsOpen() {
		if !d.Context.KeyDown(key) && isEscape(key) {
			d.Context.PointerDownOutside()
		}
		return d, nil
	}

	if d.StartMenu.Open() {
		if d.StartList.KeyDown(key) {
			return d, nil
		}
		if isEscape(key) {
			d.StartMenu.SetOpen(false)
			return d, nil
		}
	}

	if d.MenuBar.KeyDown(key) {
		return d, nil
	}
	if _, focused := d.MenuBar.Focus(); focused {
		// The focused menubar swallows keys it does not use.
		if isEscape(key) {
			d.MenuBar.Blur()
		}
		return d, nil
	}

	if action, ok := d.KeyMap.Action(key); ok {
		return dispatcher.Dispatch(action, msg, d)
	}
	return d, nil
}
