package app

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/stacking"
	"github.com/Gaurav-Gosain/deskui/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes the desktop, its windows and every open overlay.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(d.Width, d.Height)

	layers := []*lipgloss.Layer{d.renderBackground()}
	if _, ok := d.Mounts.Resolve(SlotDesktop); ok {
		layers = append(layers, d.renderWindows()...)
		layers = append(layers, d.renderGestureOverlays()...)
	}
	layers = append(layers, d.renderMenuBar(), d.renderTaskbar())
	if _, ok := d.Mounts.Resolve(SlotOverlay); ok {
		layers = append(layers, d.renderPopups()...)
	}

	for _, layer := range layers {
		if layer != nil {
			canvas.Compose(layer)
		}
	}
	return canvas
}

func (d *Desktop) renderBackground() *lipgloss.Layer {
	row := strings.Repeat(" ", d.Width)
	rows := make([]string, d.UsableHeight())
	for i := range rows {
		rows[i] = row
	}
	bg := lipgloss.NewStyle().Background(theme.DesktopBg()).Foreground(theme.DesktopFg())
	return lipgloss.NewLayer(bg.Render(strings.Join(rows, "\n"))).X(0).Y(d.TopMargin()).Z(-1).ID("desktop")
}

// visibleLines returns the rows of body text that fit in rows lines.
func (w *Window) visibleLines(rows int) []string {
	lines := w.lines()
	if w.Content == ContentLog {
		end := max(len(lines)-w.Scroll, 0)
		return lines[max(end-rows, 0):end]
	}
	start := min(w.Scroll, len(lines))
	return lines[start:min(start+rows, len(lines))]
}

// renderWindow draws w at its committed geometry: title row on top, a
// border on the remaining three sides.
func (d *Desktop) renderWindow(w *Window) string {
	_, _, width, height := w.cellRect()
	if width < 2 || height < 2 {
		return ""
	}

	title := "window"
	if r, ok := d.Titles.Lookup(d.Style, RendererTitle); ok {
		title = r.Render(TitleProps{
			Title:   w.Title,
			Width:   width,
			Active:  w.Active(),
			Focused: w.ID == d.FocusID,
			Docked:  w.Docked,
		})
	}

	innerW, innerH := width-2, max(height-2, 0)
	body := make([]string, innerH)
	copy(body, w.visibleLines(innerH))
	for i := range body {
		body[i] = fitLine(body[i], innerW)
	}

	borderColor := theme.BorderInactive()
	if w.Active() {
		borderColor = theme.BorderActive()
	}
	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderTop(false).
		BorderForeground(borderColor).
		Background(theme.WindowBg()).
		Foreground(theme.WindowFg())
	return title + "\n" + box.Render(strings.Join(body, "\n"))
}

func (d *Desktop) renderWindows() []*lipgloss.Layer {
	top := d.TopMargin()
	bottom := top + d.UsableHeight()
	layers := make([]*lipgloss.Layer, 0, len(d.Windows))
	for _, w := range d.windowsByZ() {
		content := d.renderWindow(w)
		if content == "" {
			continue
		}
		x, y, _, _ := w.cellRect()
		clipped, cx, cy, ok := clipBlock(content, x, y+top, 0, top, d.Width, bottom)
		if !ok {
			continue
		}
		z := d.Stack.Z(stacking.Base, w.ID)
		layers = append(layers, lipgloss.NewLayer(clipped).X(cx).Y(cy).Z(z).ID(w.ID))
	}
	return layers
}

// renderGestureOverlays draws the static-mode ghost frame and the dock
// target of the window being dragged.
func (d *Desktop) renderGestureOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	for _, w := range d.Windows {
		if m, ok := w.ctrl.DockPreview(); ok {
			z := stacking.Layer(stacking.Anchors, 0)
			layers = append(layers, d.outline(m.Rect, theme.DockPreview(), z, "dock-"+w.ID)...)
		}
		if r, ok := w.ctrl.Preview(); ok {
			z := stacking.Layer(stacking.AlwaysTop, 0)
			layers = append(layers, d.outline(r, theme.GhostOutline(), z, "ghost-"+w.ID)...)
		}
	}
	return layers
}

// outline draws the frame of a desktop-local rect as four edge layers so
// the windows underneath stay visible.
func (d *Desktop) outline(r geom.Rect, c color.Color, z int, id string) []*lipgloss.Layer {
	x, y := int(r.X+0.5), int(r.Y+0.5)+d.TopMargin()
	w, h := int(r.Width+0.5), int(r.Height+0.5)
	if w < 2 || h < 2 {
		return nil
	}
	b := config.GetBorderForStyle()
	style := lipgloss.NewStyle().Foreground(c)
	top := style.Render(b.TopLeft + strings.Repeat(b.Top, w-2) + b.TopRight)
	bottom := style.Render(b.BottomLeft + strings.Repeat(b.Bottom, w-2) + b.BottomRight)
	side := style.Render(strings.TrimSuffix(strings.Repeat(b.Left+"\n", h-2), "\n"))

	areaTop := d.TopMargin()
	areaBottom := areaTop + d.UsableHeight()
	var layers []*lipgloss.Layer
	add := func(s string, lx, ly int, suffix string) {
		if s == "" {
			return
		}
		if clipped, cx, cy, ok := clipBlock(s, lx, ly, 0, areaTop, d.Width, areaBottom); ok {
			layers = append(layers, lipgloss.NewLayer(clipped).X(cx).Y(cy).Z(z).ID(id+suffix))
		}
	}
	add(top, x, y, "-top")
	add(bottom, x, y+h-1, "-bottom")
	if h > 2 {
		add(side, x, y+1, "-left")
		add(side, x+w-1, y+1, "-right")
	}
	return layers
}

// View implements tea.Model.
func (d *Desktop) View() tea.View {
	var view tea.View
	if d.Quitting {
		return view
	}
	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// statusText is shown on the taskbar next to the clock.
func (d *Desktop) statusText(width int) string {
	if d.Status == "" || width <= 0 {
		return ""
	}
	return ansi.Truncate(d.Status, width, "…")
}
