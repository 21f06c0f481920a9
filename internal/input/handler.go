// Package input maps Bubble Tea key and mouse messages onto the deskui
// desktop.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	case tea.BlurMsg:
		// The release may never arrive once the terminal loses focus.
		d.PointerCancel()
	}
	return d, nil
}
