package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/registry"
	"github.com/Gaurav-Gosain/deskui/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// Renderer names.
const (
	RendererTitle  = "window-title"
	RendererButton = "taskbar-button"
)

// TitleProps are passed to title bar renderers. Width is the full row,
// corners included.
type TitleProps struct {
	Title   string
	Width   int
	Active  bool
	Focused bool
	Docked  string
}

// ButtonProps are passed to taskbar button renderers.
type ButtonProps struct {
	Label  string
	Width  int
	Active bool
}

func newRenderers() (*registry.Renderers[TitleProps], *registry.Renderers[ButtonProps], error) {
	titles := registry.NewRenderers[TitleProps]()
	buttons := registry.NewRenderers[ButtonProps]()

	for key, fn := range map[string]registry.RenderFunc[TitleProps]{
		RendererTitle:                         renderDefaultTitle,
		registry.Key("win98", RendererTitle): renderWin98Title,
		registry.Key("winxp", RendererTitle): renderXPTitle,
	} {
		if _, err := titles.Register(key, fn); err != nil {
			return nil, nil, err
		}
	}
	if _, err := buttons.Register(RendererButton, registry.RenderFunc[ButtonProps](renderTaskbarButton)); err != nil {
		return nil, nil, err
	}
	return titles, buttons, nil
}

func titleColors(active bool) (bg, fg color.Color) {
	if active {
		return theme.TitleActiveBg(), theme.TitleActiveFg()
	}
	return theme.TitleInactiveBg(), theme.TitleInactiveFg()
}

func titleText(p TitleProps) string {
	text := p.Title
	if p.Focused && !p.Active {
		text = "> " + text
	}
	if p.Docked != "" {
		text += " [" + p.Docked + "]"
	}
	return text
}

// titleRow lays out corner, label, top grip, close button and corner
// across width.
func titleRow(p TitleProps, label string, align lipgloss.Position) string {
	bg, fg := titleColors(p.Active)
	border := config.GetBorderForStyle()
	closeBtn := " " + config.GetCloseButton() + " "
	inner := max(p.Width-2-closeButtonWidth-topGripWidth, 0)

	label = ansi.Truncate(label, inner, "…")
	text := lipgloss.NewStyle().
		Width(inner).
		Align(align).
		Background(bg).
		Foreground(fg).
		Bold(p.Active).
		Render(label)
	edge := lipgloss.NewStyle().Background(bg).Foreground(fg)
	return edge.Render(border.TopLeft) + text + edge.Render(border.Top) + edge.Render(closeBtn) + edge.Render(border.TopRight)
}

func renderDefaultTitle(p TitleProps) string {
	return titleRow(p, " "+titleText(p), lipgloss.Left)
}

func renderWin98Title(p TitleProps) string {
	return titleRow(p, config.GetSystemMenuGlyph()+" "+titleText(p), lipgloss.Left)
}

func renderXPTitle(p TitleProps) string {
	return titleRow(p, titleText(p), lipgloss.Center)
}

func renderTaskbarButton(p ButtonProps) string {
	style := lipgloss.NewStyle().
		Width(p.Width).
		Background(theme.TaskbarBg()).
		Foreground(theme.TaskbarFg())
	if p.Active {
		style = style.Reverse(true).Bold(true)
	}
	return style.Render(" " + ansi.Truncate(p.Label, max(p.Width-2, 0), "…") + " ")
}

// fitLine pads or truncates s to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// clipBlock cuts the parts of a rendered block at (x, y) that fall outside
// the area [left, right) x [top, bottom). It returns the visible block and
// its new origin.
func clipBlock(content string, x, y, left, top, right, bottom int) (string, int, int, bool) {
	lines := strings.Split(content, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, ansi.StringWidth(l))
	}
	if x+width <= left || x >= right || y+len(lines) <= top || y >= bottom {
		return "", x, y, false
	}

	if y < top {
		lines = lines[top-y:]
		y = top
	}
	if y+len(lines) > bottom {
		lines = lines[:bottom-y]
	}

	cutLeft := max(left-x, 0)
	cutRight := min(right-x, width)
	if cutLeft > 0 || cutRight < width {
		for i, l := range lines {
			lines[i] = ansi.Cut(l, cutLeft, cutRight)
		}
		x += cutLeft
	}
	return strings.Join(lines, "\n"), x, y, true
}
