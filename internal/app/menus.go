package app

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/menu"
)

// buildMenus (re)creates the menubar, the window menu and the start list.
func (d *Desktop) buildMenus() error {
	opts := menu.Options{
		Focus:  d.Behavior.FocusBehavior(),
		Logger: d.Logger.WithPrefix("menu"),
		OnSelect: func(it menu.Item) {
			d.Logger.Debug("menu select", "id", it.ID)
		},
	}

	barOpts := opts
	barOpts.Bar = true
	barOpts.OnSelect = func(it menu.Item) {
		opts.OnSelect(it)
		d.MenuBar.Blur()
	}
	bar, err := menu.New(d.menuBarItems(), barOpts)
	if err != nil {
		return err
	}
	ctx, err := menu.NewContext(d.windowMenuItems(), opts)
	if err != nil {
		return err
	}
	start, err := menu.NewContext(d.startItems(), opts)
	if err != nil {
		return err
	}

	for _, id := range []string{overlayMenuBar, overlayContext, overlayStartMenu} {
		if drop, ok := d.overlayDrops[id]; ok {
			drop()
			delete(d.overlayDrops, id)
		}
	}
	d.MenuBar, d.Context, d.StartList = bar, ctx, start
	d.trackOverlay(overlayMenuBar, bar)
	d.trackOverlay(overlayContext, ctx.Menu)
	d.trackOverlay(overlayStartMenu, start.Menu)
	start.Subscribe(func(p menu.OpenPath) {
		if len(p) == 0 && d.StartMenu != nil {
			d.StartMenu.SetOpen(false)
		}
	})
	return nil
}

// trackOverlay keeps the overlay slot consumer of m in step with its open
// path.
func (d *Desktop) trackOverlay(id string, m *menu.Menu) {
	m.Subscribe(func(p menu.OpenPath) {
		drop, mounted := d.overlayDrops[id]
		switch {
		case len(p) > 0 && !mounted:
			d.overlayDrops[id] = d.Mounts.AddConsumer(SlotOverlay, id)
		case len(p) == 0 && mounted:
			drop()
			delete(d.overlayDrops, id)
		}
	})
}

func (d *Desktop) keyFor(action string) string {
	if keys := d.KeyMap.Keys(action); len(keys) > 0 {
		return keys[0]
	}
	return ""
}

func (d *Desktop) styleItems() []menu.Item {
	items := make([]menu.Item, 0, len(config.Styles))
	for _, s := range config.Styles {
		label := s
		if s == d.Style {
			label = "* " + s
		}
		items = append(items, menu.Item{ID: "style-" + s, Label: label, OnSelect: func() { d.SetStyle(s) }})
	}
	return items
}

// dockItems docks the window chosen by target into each enabled zone.
func (d *Desktop) dockItems(prefix string, target func() *Window) []menu.Item {
	var items []menu.Item
	for _, z := range d.Behavior.DockZones() {
		if !z.IsEnabled() {
			continue
		}
		items = append(items, menu.Item{
			ID:    prefix + z.ID,
			Label: z.ID,
			OnSelect: func() {
				if w := target(); w != nil {
					d.DockWindow(w, z.ID)
				}
			},
		})
	}
	if len(items) == 0 {
		items = append(items, menu.Item{ID: prefix + "none", Label: "no zones", Disabled: true})
	}
	return items
}

func (d *Desktop) menuBarItems() []menu.Item {
	return []menu.Item{
		{ID: "file", Label: "File", Children: []menu.Item{
			{ID: "new", Label: "New window", Shortcut: d.keyFor(config.ActionNewWindow), OnSelect: d.OpenNotes},
			{ID: "log", Label: "Log", OnSelect: func() { d.AddWindow("Log", ContentLog) }},
			{ID: "print", Label: "Print", Disabled: true},
			menu.Divider("div-close"),
			{ID: "close", Label: "Close window", Shortcut: d.keyFor(config.ActionCloseWindow), OnSelect: d.CloseActive},
			menu.Divider("div-quit"),
			{ID: "quit", Label: "Quit", Shortcut: d.keyFor(config.ActionQuit), OnSelect: func() { d.Quitting = true }},
		}},
		{ID: "window", Label: "Window", Children: []menu.Item{
			{ID: "next", Label: "Focus next", Shortcut: d.keyFor(config.ActionNextWindow), OnSelect: func() { d.FocusWindow(1) }},
			{ID: "prev", Label: "Focus previous", Shortcut: d.keyFor(config.ActionPrevWindow), OnSelect: func() { d.FocusWindow(-1) }},
			{ID: "dock", Label: "Dock to", Children: d.dockItems("bar-dock-", d.ActiveWindow)},
			{ID: "cascade", Label: "Cascade", OnSelect: d.Cascade},
		}},
		{ID: "view", Label: "View", Children: []menu.Item{
			{ID: "style", Label: "Style", Children: d.styleItems()},
			{ID: "zones", Label: "Dock zones", OnSelect: func() { d.AddWindow("Dock zones", ContentZones) }},
		}},
		{ID: "help", Label: "Help", Children: []menu.Item{
			{ID: "keys", Label: "Keys", OnSelect: func() { d.AddWindow("Keys", ContentHelp) }},
			{ID: "about", Label: "About", OnSelect: func() { d.Status = "deskui " + Version }},
		}},
	}
}

func (d *Desktop) contextWindow() *Window {
	w, _ := d.Window(d.contextTarget)
	return w
}

func (d *Desktop) windowMenuItems() []menu.Item {
	return []menu.Item{
		{ID: "front", Label: "Bring to front", OnSelect: func() {
			if w := d.contextWindow(); w != nil {
				w.ctrl.SetActive(true)
			}
		}},
		{ID: "dock", Label: "Dock to", Children: d.dockItems("ctx-dock-", d.contextWindow)},
		{ID: "restore", Label: "Restore size", OnSelect: func() {
			if w := d.contextWindow(); w != nil {
				w.ctrl.SetSize(geom.Size{Width: config.DefaultWindowWidth, Height: config.DefaultWindowHeight})
				w.Docked = ""
			}
		}},
		menu.Divider("div"),
		{ID: "close", Label: "Close", OnSelect: func() {
			if w := d.contextWindow(); w != nil {
				_ = d.CloseWindow(w.ID)
			}
		}},
	}
}

func (d *Desktop) startItems() []menu.Item {
	return []menu.Item{
		{ID: "new", Label: "New window", OnSelect: d.OpenNotes},
		{ID: "log", Label: "Log", OnSelect: func() { d.AddWindow("Log", ContentLog) }},
		{ID: "keys", Label: "Keys", OnSelect: func() { d.AddWindow("Keys", ContentHelp) }},
		menu.Divider("div-style"),
		{ID: "style", Label: "Style", Children: d.styleItems()},
		menu.Divider("div-quit"),
		{ID: "quit", Label: "Quit", OnSelect: func() { d.Quitting = true }},
	}
}

// OpenNotes opens a new notes window.
func (d *Desktop) OpenNotes() {
	d.AddWindow(fmt.Sprintf("Notes %d", d.windowSeq+1), ContentNotes)
}

// CloseActive closes the active window.
func (d *Desktop) CloseActive() {
	if w := d.ActiveWindow(); w != nil {
		_ = d.CloseWindow(w.ID)
	}
}

// OpenWindowMenu opens the window menu of w at the screen cell (x, y).
func (d *Desktop) OpenWindowMenu(w *Window, x, y int) {
	d.MenuBar.PointerDownOutside()
	d.contextTarget = w.ID
	items, _ := d.Context.Level(0)
	size := menuBoxSize(items[0].Children)
	d.Context.OpenAt(geom.Point{X: float64(x), Y: float64(y)}, size, d.screenSize())
	d.Logger.Debug("window menu opened", "title", w.Title)
}

// OpenActiveWindowMenu opens the window menu of the active window under
// its title bar.
func (d *Desktop) OpenActiveWindowMenu() bool {
	w := d.ActiveWindow()
	if w == nil {
		return false
	}
	x, y, _, _ := w.cellRect()
	d.OpenWindowMenu(w, x+1, y+d.TopMargin()+1)
	return true
}

// onStartMenuOpen mirrors the start menu open state into its item list.
func (d *Desktop) onStartMenuOpen(open bool) {
	if !open {
		d.StartList.PointerDownOutside()
		return
	}
	d.MenuBar.PointerDownOutside()
	d.Context.PointerDownOutside()
	r := d.startPanelRect()
	d.StartList.OpenAt(r.Position(), r.Size(), d.screenSize())
}

// DockWindow snaps w into the zone with id at the current viewport.
func (d *Desktop) DockWindow(w *Window, zoneID string) bool {
	vp := d.Viewport()
	for _, z := range d.Behavior.DockZones() {
		if z.ID != zoneID || !z.IsEnabled() {
			continue
		}
		r := z.Rect(vp)
		w.ctrl.Abort()
		w.ctrl.SetPosition(r.Position())
		w.ctrl.SetSize(r.Size())
		w.Docked = z.ID
		d.Logger.Info("window docked", "title", w.Title, "zone", z.ID)
		return true
	}
	return false
}

// Cascade restacks every window from the top-left corner.
func (d *Desktop) Cascade() {
	for i, w := range d.windowsByZ() {
		step := float64(config.WindowCascadeStep * i)
		w.ctrl.SetPosition(geom.Point{X: 2 + 2*step, Y: 1 + step})
		w.Docked = ""
	}
}

// SetStyle switches the style preset. Windows are rebuilt with the new
// behavior, back to front, and keep their id and geometry.
func (d *Desktop) SetStyle(style string) {
	d.Config = config.ApplyOverrides(config.Overrides{Style: style}, d.Config, d.Logger)
	d.Behavior = d.Config.Behavior
	d.Style = strings.ToLower(style)

	var activeID string
	for _, w := range d.windowsByZ() {
		rect := w.ctrl.Rect()
		if w.ctrl.Active() {
			activeID = w.ID
		}
		w.unmount()

		rebuilt := newWindow(d, w.ID, w.Title, w.Content, rect.Position())
		rebuilt.ctrl.SetSize(rect.Size())
		rebuilt.Scroll, rebuilt.Docked = w.Scroll, w.Docked
		for i := range d.Windows {
			if d.Windows[i] == w {
				d.Windows[i] = rebuilt
			}
		}
		rebuilt.mount()
	}
	if w, ok := d.Window(activeID); ok {
		w.ctrl.SetActive(true)
	}

	d.StartMenu.SetOpen(false)
	d.buildStartMenu()
	if err := d.buildMenus(); err != nil {
		d.Logger.Error("failed to rebuild menus", "err", err)
	}
	d.Logger.Info("style changed", "style", style, "mode", d.Behavior.InteractionMode)
}
