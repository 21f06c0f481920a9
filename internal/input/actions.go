package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/app"
	"github.com/Gaurav-Gosain/deskui/internal/config"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	a := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	a.registerHandlers()
	return a
}

func (a *ActionDispatcher) registerHandlers() {
	a.Register(config.ActionQuit, handleQuit)
	a.Register(config.ActionNewWindow, handleNewWindow)
	a.Register(config.ActionCloseWindow, handleCloseWindow)
	a.Register(config.ActionNextWindow, makeFocusHandler(1))
	a.Register(config.ActionPrevWindow, makeFocusHandler(-1))
	a.Register(config.ActionFocusMenuBar, handleFocusMenuBar)
	a.Register(config.ActionToggleStartMenu, handleToggleStartMenu)
	a.Register(config.ActionActivateWindow, handleActivateWindow)
	a.Register(config.ActionWindowMenu, handleWindowMenu)
}

// Register adds an action handler
func (a *ActionDispatcher) Register(action string, handler ActionHandler) {
	a.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (a *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if handler, ok := a.handlers[action]; ok {
		d.Logger.Debug("action", "name", action, "key", msg.String())
		return handler(msg, d)
	}
	return d, nil
}

// HasAction checks if an action is registered
func (a *ActionDispatcher) HasAction(action string) bool {
	_, ok := a.handlers[action]
	return ok
}

func handleQuit(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.Quitting = true
	return d, nil
}

func handleNewWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.OpenNotes()
	return d, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.CloseActive()
	return d, nil
}

func makeFocusHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		d.FocusWindow(delta)
		return d, nil
	}
}

func handleFocusMenuBar(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.StartMenu.SetOpen(false)
	d.MenuBar.FocusRoot()
	return d, nil
}

func handleToggleStartMenu(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.StartMenu.Toggle()
	return d, nil
}

func handleActivateWindow(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ActivateFocused(msg.String())
	return d, nil
}

func handleWindowMenu(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.OpenActiveWindowMenu()
	return d, nil
}
