package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/stacking"
	"github.com/Gaurav-Gosain/deskui/internal/taskbar"
	"github.com/Gaurav-Gosain/deskui/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func menuStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(theme.MenuBg()).Foreground(theme.MenuFg())
}

func highlightStyle() lipgloss.Style {
	bg, fg := theme.MenuHighlight()
	return lipgloss.NewStyle().Background(bg).Foreground(fg)
}

// renderMenuBar draws the root labels across the top row.
func (d *Desktop) renderMenuBar() *lipgloss.Layer {
	base := menuStyle()
	openRoot := ""
	if p := d.MenuBar.OpenPath(); len(p) > 0 {
		openRoot = p[0]
	}
	focused, hasFocus := d.MenuBar.Focus()

	var b strings.Builder
	b.WriteString(base.Render(" "))
	used := 1
	for i, s := range d.menuBarSpans() {
		label := " " + d.MenuBar.Items()[i].Label + " "
		style := base
		if s.id == openRoot || (hasFocus && focused.Level == 0 && focused.Index == i) {
			style = highlightStyle()
		}
		b.WriteString(style.Render(label))
		used += s.width
	}
	right := " " + d.Style + " "
	if gap := d.Width - used - ansi.StringWidth(right); gap > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", gap) + right))
	}

	row := ansi.Truncate(b.String(), d.Width, "")
	return lipgloss.NewLayer(row).X(0).Y(0).Z(stacking.Layer(stacking.Anchors, 1)).ID("menubar")
}

// renderTaskbar draws the start button, one button per window, the status
// and the clock.
func (d *Desktop) renderTaskbar() *lipgloss.Layer {
	base := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())

	start := base.Bold(true)
	if d.StartMenu.Open() {
		start = start.Reverse(true)
	}

	var b strings.Builder
	b.WriteString(start.Render(config.GetStartButtonLabel()))
	used := startButtonWidth()
	for _, s := range d.taskbarSpans() {
		gap := s.x - used
		b.WriteString(base.Render(strings.Repeat(" ", gap)))
		label := s.w.Title
		if r, ok := d.Buttons.Lookup(d.Style, RendererButton); ok {
			label = r.Render(ButtonProps{Label: s.w.Title, Width: s.width, Active: s.w.Active()})
		}
		b.WriteString(label)
		used = s.x + s.width
	}

	clock := ""
	if config.ShowClock {
		clock = " " + time.Now().Format("15:04") + " "
	}
	room := d.Width - used - ansi.StringWidth(clock) - 1
	status := d.statusText(room)
	gap := max(d.Width-used-ansi.StringWidth(status)-ansi.StringWidth(clock), 0)
	b.WriteString(base.Render(strings.Repeat(" ", gap) + status + clock))

	row := ansi.Truncate(b.String(), d.Width, "")
	return lipgloss.NewLayer(row).X(0).Y(d.TaskbarRow()).Z(stacking.Layer(stacking.Anchors, 2)).ID("taskbar")
}

// menuRows renders the visible items of box, each exactly inner cells wide.
func menuRows(box menuBox, inner int) []string {
	focused, hasFocus := box.menu.Focus()
	base := menuStyle()
	rows := make([]string, 0, box.visibleRows())
	for i, it := range box.items[:box.visibleRows()] {
		if it.Divider {
			rows = append(rows, base.Render(strings.Repeat(config.GetBorderForStyle().Top, inner)))
			continue
		}
		right := it.Shortcut
		if it.HasChildren() {
			right = config.GetSubmenuArrow()
		}
		left := " " + it.Label
		gap := max(inner-ansi.StringWidth(left)-ansi.StringWidth(right)-1, 1)
		text := fitLine(left+strings.Repeat(" ", gap)+right+" ", inner)

		style := base
		switch {
		case it.Disabled:
			style = style.Foreground(theme.MenuDisabled())
		case it.ID == box.openID, hasFocus && focused.Level == box.level && focused.Index == i:
			style = highlightStyle()
		}
		rows = append(rows, style.Render(text))
	}
	return rows
}

// renderMenuBox draws a bordered menu level.
func renderMenuBox(box menuBox) string {
	inner := max(int(box.rect.Width)-2, 0)
	return lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.MenuFg()).
		Background(theme.MenuBg()).
		Render(strings.Join(menuRows(box, inner), "\n"))
}

// renderStartPanel draws the start list with the resize grip on the edge
// away from the taskbar.
func (d *Desktop) renderStartPanel(box menuBox) string {
	inner := max(int(box.rect.Width)-2, 0)
	rows := menuRows(box, inner)
	for len(rows) < int(box.rect.Height)-2 {
		rows = append(rows, menuStyle().Render(strings.Repeat(" ", inner)))
	}

	gripStyle := lipgloss.NewStyle().Background(theme.TaskbarBg()).Foreground(theme.TaskbarFg())
	if d.StartMenu.Dragging() {
		gripStyle = gripStyle.Reverse(true)
	}
	grip := gripStyle.Render(fitLine(strings.Repeat(config.GetStartMenuGrip(), int(box.rect.Width)), int(box.rect.Width)))

	panel := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.TaskbarFg()).
		Background(theme.MenuBg())
	if d.StartMenu.Mount() == taskbar.MountTop {
		return panel.BorderBottom(false).Render(strings.Join(rows, "\n")) + "\n" + grip
	}
	return grip + "\n" + panel.BorderTop(false).Render(strings.Join(rows, "\n"))
}

// renderPopups draws every open menu level above everything else.
func (d *Desktop) renderPopups() []*lipgloss.Layer {
	boxes := d.popupBoxes()
	layers := make([]*lipgloss.Layer, 0, len(boxes))
	for i, box := range boxes {
		var content string
		if box.menu == d.StartList.Menu && box.level == 1 {
			content = d.renderStartPanel(box)
		} else {
			content = renderMenuBox(box)
		}
		clipped, x, y, ok := clipBlock(content, int(box.rect.X), int(box.rect.Y), 0, 0, d.Width, d.Height)
		if !ok {
			continue
		}
		z := stacking.Layer(stacking.Popups, len(boxes)-i)
		layers = append(layers, lipgloss.NewLayer(clipped).X(x).Y(y).Z(z).ID(fmt.Sprintf("popup-%d", i)))
	}
	return layers
}
