package app

import (
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/menu"
	"github.com/Gaurav-Gosain/deskui/internal/taskbar"
	"github.com/charmbracelet/x/ansi"
)

// menuBox is one visible menu level laid out on screen. Items occupy the
// rows inside the one-cell border.
type menuBox struct {
	menu   *menu.Menu
	level  int
	items  []menu.Item
	openID string
	rect   geom.Rect
}

// itemAt returns the item on screen row y, if (x, y) is inside the box.
func (b menuBox) itemAt(x, y int) (menu.Item, bool) {
	if !b.contains(x, y) {
		return menu.Item{}, false
	}
	row := y - int(b.rect.Y) - 1
	if row < 0 || row >= b.visibleRows() {
		return menu.Item{}, false
	}
	return b.items[row], true
}

func (b menuBox) contains(x, y int) bool {
	return b.rect.Contains(geom.Point{X: float64(x), Y: float64(y)})
}

// visibleRows returns how many items fit inside the border.
func (b menuBox) visibleRows() int {
	return min(len(b.items), max(int(b.rect.Height)-2, 0))
}

// menuBoxSize is the bordered size of a box listing items.
func menuBoxSize(items []menu.Item) geom.Size {
	s := menu.EstimateSize(items, 1, 1)
	return geom.Size{Width: s.Width + 2, Height: s.Height + 2}
}

func (d *Desktop) screenSize() geom.Size {
	return geom.Size{Width: float64(d.Width), Height: float64(d.Height)}
}

// rootSpan is the horizontal extent of a menubar root label.
type rootSpan struct {
	id    string
	x     int
	width int
}

func (d *Desktop) menuBarSpans() []rootSpan {
	spans := make([]rootSpan, 0, len(d.MenuBar.Items()))
	x := 1
	for _, it := range d.MenuBar.Items() {
		w := ansi.StringWidth(it.Label) + 2
		spans = append(spans, rootSpan{id: it.ID, x: x, width: w})
		x += w
	}
	return spans
}

func (d *Desktop) rootAt(x int) (string, bool) {
	for _, s := range d.menuBarSpans() {
		if x >= s.x && x < s.x+s.width {
			return s.id, true
		}
	}
	return "", false
}

// cascade lays out the levels of m below first. Each deeper level opens to
// the right of its trigger.
func (d *Desktop) cascade(m *menu.Menu, first int, origin func(items []menu.Item) geom.Rect) []menuBox {
	var boxes []menuBox
	m.Walk(func(level int, items []menu.Item, openID string) {
		if level < first {
			return
		}
		var r geom.Rect
		if level == first {
			r = origin(items)
		} else {
			parent := boxes[len(boxes)-1]
			size := menuBoxSize(items)
			row := menu.IndexOf(parent.items, parent.openID)
			p := geom.Point{X: parent.rect.Right() - 1, Y: parent.rect.Y + float64(row)}
			r = geom.NewRect(menu.Place(p, size, d.screenSize()), size)
		}
		boxes = append(boxes, menuBox{menu: m, level: level, items: items, openID: openID, rect: r})
	})
	return boxes
}

// menuBarBoxes returns the open drop-downs of the menubar.
func (d *Desktop) menuBarBoxes() []menuBox {
	if !d.MenuBar.IsOpen() {
		return nil
	}
	rootID := d.MenuBar.OpenPath()[0]
	x := 0
	for _, s := range d.menuBarSpans() {
		if s.id == rootID {
			x = s.x
		}
	}
	return d.cascade(d.MenuBar, 1, func(items []menu.Item) geom.Rect {
		size := menuBoxSize(items)
		p := menu.Place(geom.Point{X: float64(x), Y: config.MenuBarHeight}, size, d.screenSize())
		return geom.NewRect(p, size)
	})
}

// contextBoxes returns the open levels of the window menu.
func (d *Desktop) contextBoxes() []menuBox {
	if !d.Context.IsOpen() {
		return nil
	}
	return d.cascade(d.Context.Menu, 1, func(items []menu.Item) geom.Rect {
		return geom.NewRect(d.Context.Position(), menuBoxSize(items))
	})
}

// startBoxes returns the start panel followed by any open submenus.
func (d *Desktop) startBoxes() []menuBox {
	if !d.StartMenu.Open() || !d.StartList.IsOpen() {
		return nil
	}
	panel := d.startPanelRect()
	return d.cascade(d.StartList.Menu, 1, func([]menu.Item) geom.Rect { return panel })
}

// startPanelRect is the start menu panel, grip row included. Its height
// follows the discrete level, preview included.
func (d *Desktop) startPanelRect() geom.Rect {
	h := min(max(int(d.StartMenu.Height()), 3), d.UsableHeight())
	w := min(config.StartMenuWidth, d.Width)
	y := d.TaskbarRow() - h
	if d.StartMenu.Mount() == taskbar.MountTop {
		y = d.TaskbarRow() + 1
	}
	return geom.Rect{X: 0, Y: float64(y), Width: float64(w), Height: float64(h)}
}

// startGripRow is the panel border row farthest from the taskbar.
func (d *Desktop) startGripRow() int {
	r := d.startPanelRect()
	if d.StartMenu.Mount() == taskbar.MountTop {
		return int(r.Bottom()) - 1
	}
	return int(r.Y)
}

// popupBoxes returns every open popup level, topmost first.
func (d *Desktop) popupBoxes() []menuBox {
	var out []menuBox
	for _, group := range [][]menuBox{d.contextBoxes(), d.startBoxes(), d.menuBarBoxes()} {
		for i := len(group) - 1; i >= 0; i-- {
			out = append(out, group[i])
		}
	}
	return out
}

// startButtonWidth is the width of the taskbar start button.
func startButtonWidth() int {
	return ansi.StringWidth(config.GetStartButtonLabel())
}

// taskbarSpan is the extent of a window button on the taskbar.
type taskbarSpan struct {
	w     *Window
	x     int
	width int
}

func (d *Desktop) taskbarSpans() []taskbarSpan {
	x := startButtonWidth() + 1
	spans := make([]taskbarSpan, 0, len(d.Windows))
	for _, w := range d.Windows {
		width := min(ansi.StringWidth(w.Title)+2, 16)
		if x+width > d.Width {
			break
		}
		spans = append(spans, taskbarSpan{w: w, x: x, width: width})
		x += width + 1
	}
	return spans
}
