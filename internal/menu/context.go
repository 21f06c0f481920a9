package menu

import (
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/charmbracelet/x/ansi"
)

// contextRootID is the hidden root every context menu hangs from.
const contextRootID = "__context__"

// Context is a pointer-positioned menu. Its items are shown from level 1
// of the wrapped Menu.
type Context struct {
	*Menu
	position geom.Point
}

// NewContext builds a closed context menu for items.
func NewContext(items []Item, opts Options) (*Context, error) {
	opts.Bar = false
	m, err := New([]Item{{ID: contextRootID, Label: "context", Children: items}}, opts)
	if err != nil {
		return nil, err
	}
	return &Context{Menu: m}, nil
}

// OpenAt opens the menu at p, clamped so a box of size fits in viewport,
// and focuses its first item.
func (c *Context) OpenAt(p geom.Point, size, viewport geom.Size) {
	c.position = Place(p, size, viewport)
	c.setPath(OpenPath{contextRootID})
	c.SetFocus(1, FirstFocusable(c.items[0].Children))
}

// KeyDown routes a key like Menu.KeyDown. Escape closes only the deepest
// submenu; on the first level it closes the whole menu.
func (c *Context) KeyDown(key string) bool {
	if (key == "esc" || key == "escape") && c.focused && c.focus.Level <= 1 {
		c.PointerDownOutside()
		return true
	}
	return c.Menu.KeyDown(key)
}

// Position returns the top-left corner of the open menu.
func (c *Context) Position() geom.Point { return c.position }

// Place clamps a menu of size opened at p into viewport.
func Place(p geom.Point, size, viewport geom.Size) geom.Point {
	return geom.Point{
		X: geom.Clamp(p.X, 0, viewport.Width-size.Width),
		Y: geom.Clamp(p.Y, 0, viewport.Height-size.Height),
	}
}

// EstimateSize returns the box a list of items occupies when every row is
// rowHeight tall and the box is padded by padX columns on each side.
// Widths are measured in terminal cells.
func EstimateSize(items []Item, rowHeight, padX float64) geom.Size {
	width := 0
	for _, it := range items {
		w := ansi.StringWidth(it.Label)
		if it.Shortcut != "" {
			w += 2 + ansi.StringWidth(it.Shortcut)
		}
		if it.HasChildren() {
			w += 2
		}
		width = max(width, w)
	}
	return geom.Size{
		Width:  float64(width) + 2*padX,
		Height: float64(len(items)) * rowHeight,
	}
}
