// Package app provides the deskui desktop model: windows, menus and the
// taskbar composed into one Bubble Tea program.
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/frame"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/menu"
	"github.com/Gaurav-Gosain/deskui/internal/registry"
	"github.com/Gaurav-Gosain/deskui/internal/stacking"
	"github.com/Gaurav-Gosain/deskui/internal/taskbar"
	"github.com/charmbracelet/log"
)

// Version is reported by Help > About.
var Version = "dev"

// Mount slot names.
const (
	SlotDesktop = "desktop"
	SlotOverlay = "overlay"
)

// Overlay consumer ids.
const (
	overlayMenuBar   = "menubar"
	overlayContext   = "context"
	overlayStartMenu = "startmenu"
)

// LogMessage is one line of the in-app log.
type LogMessage struct {
	Time    time.Time
	Level   log.Level
	Message string
}

// overlay is the render target of the popup slot.
type overlay struct{ name string }

// Options configures a Desktop.
type Options struct {
	Config *config.UserConfig
	// LogOutput receives every log line in addition to the log window.
	LogOutput io.Writer
	Width     int
	Height    int
}

// Desktop is the application model.
type Desktop struct {
	Width  int
	Height int

	Config   *config.UserConfig
	Behavior config.Behavior
	Style    string
	KeyMap   *config.KeyMap

	Windows []*Window
	// ActiveID is the active window; FocusID is the window the keyboard
	// focus ring points at, which may differ until it is activated.
	ActiveID string
	FocusID  string

	Frames  *frame.Loop
	Stack   *stacking.Registry
	Mounts  *registry.Mounts
	Titles  *registry.Renderers[TitleProps]
	Buttons *registry.Renderers[ButtonProps]

	MenuBar   *menu.Menu
	Context   *menu.Context
	StartMenu *taskbar.StartMenu
	StartList *menu.Context

	contextTarget string
	overlay       *overlay
	overlayDrops  map[string]func()

	capture   *Window
	captureID int
	zOrder    map[string]int

	Logger      *log.Logger
	LogMessages []LogMessage
	Status      string

	windowSeq int
	Quitting  bool
}

// New builds a desktop from opts. The returned desktop has no windows.
func New(opts Options) (*Desktop, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := &Desktop{
		Width:        opts.Width,
		Height:       opts.Height,
		Config:       cfg,
		Behavior:     cfg.Behavior,
		Style:        strings.ToLower(cfg.Appearance.Style),
		KeyMap:       config.NewKeyMap(cfg.Keybindings),
		Frames:       frame.NewLoop(),
		Stack:        stacking.New(),
		Mounts:       registry.NewMounts(),
		overlay:      &overlay{name: SlotOverlay},
		overlayDrops: make(map[string]func()),
		zOrder:       make(map[string]int),
	}
	if d.Width <= 0 {
		d.Width = 80
	}
	if d.Height <= 0 {
		d.Height = 24
	}
	d.Logger = d.newLogger(cfg.Logging.Level, opts.LogOutput)

	d.Stack.Subscribe(stacking.Base, func(snap map[string]int) { d.zOrder = snap })

	if err := d.Mounts.RegisterSlot(SlotDesktop, d); err != nil {
		return nil, err
	}
	if err := d.Mounts.RegisterSlot(SlotOverlay, d.overlay); err != nil {
		return nil, err
	}

	var err error
	if d.Titles, d.Buttons, err = newRenderers(); err != nil {
		return nil, err
	}
	if err := d.buildMenus(); err != nil {
		return nil, err
	}

	d.buildStartMenu()

	d.Logger.Info("desktop ready", "style", d.Style, "mode", d.Behavior.InteractionMode, "size", fmt.Sprintf("%dx%d", d.Width, d.Height))
	return d, nil
}

func (d *Desktop) buildStartMenu() {
	cfg := d.Behavior.StartMenuConfig()
	cfg.Logger = d.Logger.WithPrefix("startmenu")
	cfg.OnOpenChange = d.onStartMenuOpen
	cfg.OnLevelChange = func(l taskbar.Level) { d.Logger.Info("start menu level", "level", l) }
	d.StartMenu = taskbar.New(cfg)
}

// ringWriter feeds logfmt lines from the logger into the log window.
type ringWriter struct{ d *Desktop }

func (w ringWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			w.d.appendLog(line)
		}
	}
	return len(p), nil
}

func (d *Desktop) newLogger(level string, extra io.Writer) *log.Logger {
	var out io.Writer = ringWriter{d}
	if extra != nil {
		out = io.MultiWriter(out, extra)
	}
	logger := log.NewWithOptions(out, log.Options{
		Formatter: log.LogfmtFormatter,
		Prefix:    "deskui",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// appendLog parses the level out of a logfmt line and keeps the last
// MaxLogMessages lines.
func (d *Desktop) appendLog(line string) {
	msg := LogMessage{Time: time.Now(), Level: log.InfoLevel, Message: line}
	if _, rest, ok := strings.Cut(line, "level="); ok {
		name, _, _ := strings.Cut(rest, " ")
		if lvl, err := log.ParseLevel(name); err == nil {
			msg.Level = lvl
		}
	}
	if _, rest, ok := strings.Cut(line, "msg="); ok {
		msg.Message = rest
	}
	d.LogMessages = append(d.LogMessages, msg)
	if len(d.LogMessages) > config.MaxLogMessages {
		d.LogMessages = d.LogMessages[len(d.LogMessages)-config.MaxLogMessages:]
	}
}

// TopMargin returns the rows above the desktop area.
func (d *Desktop) TopMargin() int {
	top := config.MenuBarHeight
	if d.StartMenu != nil && d.StartMenu.Mount() == taskbar.MountTop {
		top += config.TaskbarHeight
	}
	return top
}

// UsableHeight returns the height of the desktop area.
func (d *Desktop) UsableHeight() int {
	return max(d.Height-config.MenuBarHeight-config.TaskbarHeight, 1)
}

// Viewport is the desktop area in cells. Window geometry is local to it.
func (d *Desktop) Viewport() geom.Size {
	return geom.Size{Width: float64(d.Width), Height: float64(d.UsableHeight())}
}

// TaskbarRow returns the screen row of the taskbar.
func (d *Desktop) TaskbarRow() int {
	if d.StartMenu != nil && d.StartMenu.Mount() == taskbar.MountTop {
		return config.MenuBarHeight
	}
	return d.Height - config.TaskbarHeight
}

// toLocal converts a screen cell to desktop-area coordinates.
func (d *Desktop) toLocal(x, y int) geom.Point {
	return geom.Point{X: float64(x), Y: float64(y - d.TopMargin())}
}

// Resize updates the terminal size and pulls every window back inside the
// new viewport.
func (d *Desktop) Resize(width, height int) {
	if width == d.Width && height == d.Height {
		return
	}
	d.Width, d.Height = width, height
	vp := d.Viewport()
	for _, w := range d.Windows {
		c := w.ctrl
		c.Abort()
		c.SetPosition(geom.ClampMove(c.Position(), geom.Point{}, c.Size(), vp, c.Config().GrabEdge))
	}
	d.Logger.Debug("terminal resized", "width", width, "height", height)
}

// ErrNoWindow is returned when a window id is unknown.
var ErrNoWindow = errors.New("no such window")

// Window returns the window with id.
func (d *Desktop) Window(id string) (*Window, bool) {
	for _, w := range d.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// ActiveWindow returns the active window, if any.
func (d *Desktop) ActiveWindow() *Window {
	w, _ := d.Window(d.ActiveID)
	return w
}

// AddWindow opens, mounts and activates a new window.
func (d *Desktop) AddWindow(title string, content Content) *Window {
	d.windowSeq++
	step := float64(config.WindowCascadeStep * ((d.windowSeq - 1) % 8))
	w := newWindow(d, "", title, content, geom.Point{X: 2 + 2*step, Y: 1 + step})
	d.Windows = append(d.Windows, w)
	w.mount()
	d.Logger.Info("window opened", "title", title, "id", w.ID)
	d.FocusID = w.ID
	w.ctrl.SetActive(true)
	return w
}

// CloseWindow unmounts and removes the window with id.
func (d *Desktop) CloseWindow(id string) error {
	idx := -1
	for i, w := range d.Windows {
		if w.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("close %s: %w", id, ErrNoWindow)
	}
	w := d.Windows[idx]
	w.unmount()
	d.Windows = append(d.Windows[:idx], d.Windows[idx+1:]...)
	if d.contextTarget == id {
		d.Context.PointerDownOutside()
	}
	d.Logger.Info("window closed", "title", w.Title)

	switch id {
	case d.ActiveID:
		d.ActiveID, d.FocusID = "", ""
		if top := d.topWindow(); top != nil {
			d.FocusID = top.ID
			top.ctrl.SetActive(true)
		}
	case d.FocusID:
		// Focus falls back to the window that is still active.
		d.FocusID = d.ActiveID
	}
	return nil
}

// activate is the OnActive handler shared by every window.
func (d *Desktop) activate(w *Window) {
	for _, other := range d.Windows {
		if other != w {
			other.ctrl.SetActive(false)
		}
	}
	d.ActiveID = w.ID
	d.FocusID = w.ID
	w.ctrl.SetActive(true)
	d.Logger.Debug("window activated", "title", w.Title)
}

// FocusWindow moves the keyboard focus ring by delta without activating.
func (d *Desktop) FocusWindow(delta int) {
	n := len(d.Windows)
	if n == 0 {
		return
	}
	cur := 0
	for i, w := range d.Windows {
		if w.ID == d.FocusID {
			cur = i
			break
		}
	}
	next := ((cur+delta)%n + n) % n
	d.FocusID = d.Windows[next].ID
	d.Status = "focus: " + d.Windows[next].Title
}

// ActivateFocused activates the window under keyboard focus through its
// controller's activation keys.
func (d *Desktop) ActivateFocused(key string) bool {
	w, ok := d.Window(d.FocusID)
	if !ok {
		return false
	}
	return w.ctrl.KeyDown(key, false)
}

// windowsByZ returns the windows from back to front.
func (d *Desktop) windowsByZ() []*Window {
	out := make([]*Window, len(d.Windows))
	copy(out, d.Windows)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && d.zOrder[out[j-1].ID] > d.zOrder[out[j].ID]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func (d *Desktop) topWindow() *Window {
	ws := d.windowsByZ()
	if len(ws) == 0 {
		return nil
	}
	return ws[len(ws)-1]
}

// Interacting reports whether a window gesture or a start menu drag is
// in progress.
func (d *Desktop) Interacting() bool {
	if d.StartMenu.Dragging() {
		return true
	}
	for _, w := range d.Windows {
		if w.ctrl.Interacting() {
			return true
		}
	}
	return false
}

// Cleanup aborts gestures and unmounts every window.
func (d *Desktop) Cleanup() {
	for _, w := range d.Windows {
		w.unmount()
	}
	d.Windows = nil
	for _, drop := range d.overlayDrops {
		drop()
	}
	clear(d.overlayDrops)
	d.Mounts.UnregisterSlot(SlotOverlay, d.overlay)
	d.Mounts.UnregisterSlot(SlotDesktop, d)
}
