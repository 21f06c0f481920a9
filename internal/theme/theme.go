// Package theme maps the active bubbletint palette onto the desktop's
// chrome: title bars, menus, the taskbar and the drag overlays.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the tint registry and selects themeName. An empty name
// disables theming so the built-in colors below are used. Unknown names fall
// back to the registry default.
func Initialize(themeName string, logger *log.Logger) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	loadRegistry(logger)

	if !tint.SetTintID(themeName) {
		if logger != nil {
			logger.Warn("unknown theme, using default", "theme", themeName)
		}
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled reports whether a theme was selected.
func IsEnabled() bool {
	return enabled
}

// Current returns the active tint, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// List returns the IDs of every registered theme. Custom themes that
// cannot be loaded are reported to logger.
func List(logger *log.Logger) []string {
	loadRegistry(logger)
	return tint.TintIDs()
}

// loadRegistry resets the tint registry and adds the custom themes.
func loadRegistry(logger *log.Logger) {
	tint.NewDefaultRegistry()
	dir, err := GetThemesDir()
	if err == nil {
		_, err = LoadCustomThemes(dir, logger)
	}
	if err != nil && logger != nil {
		logger.Warn("custom themes", "err", err)
	}
}

func pick(fallback string, choose func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return choose(t)
}

// DesktopBg is the color behind all windows.
func DesktopBg() color.Color {
	return pick("#008080", func(t *tint.Tint) color.Color { return t.Bg })
}

// DesktopFg is used for text drawn directly on the desktop.
func DesktopFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.Fg })
}

// WindowBg fills window bodies.
func WindowBg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.Black })
}

// WindowFg is the body text color.
func WindowFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.White })
}

// TitleActiveBg and TitleActiveFg color the title bar of the active window.
func TitleActiveBg() color.Color {
	return pick("#000080", func(t *tint.Tint) color.Color { return t.Blue })
}

func TitleActiveFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// TitleInactiveBg and TitleInactiveFg color every other title bar.
func TitleInactiveBg() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func TitleInactiveFg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.White })
}

// BorderActive and BorderInactive color window frames.
func BorderActive() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

func BorderInactive() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// MenuBg is the background of the menubar and open menus.
func MenuBg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.White })
}

func MenuFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

// MenuHighlight marks the focused menu item and open roots.
func MenuHighlight() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000080"), lipgloss.Color("#ffffff")
	}
	return t.Blue, t.BrightWhite
}

// MenuDisabled dims disabled items.
func MenuDisabled() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// TaskbarBg and TaskbarFg color the taskbar strip and the start menu.
func TaskbarBg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func TaskbarFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// TaskbarActive highlights the button of the active window.
func TaskbarActive() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightYellow })
}

// GhostOutline draws the static-mode preview frame.
func GhostOutline() color.Color {
	return pick("#ffff00", func(t *tint.Tint) color.Color { return t.Yellow })
}

// DockPreview draws the docking target rectangle.
func DockPreview() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// LogLevelColor colors a log line in the log window.
func LogLevelColor(level log.Level) color.Color {
	switch level {
	case log.ErrorLevel, log.FatalLevel:
		return pick("#ff0000", func(t *tint.Tint) color.Color { return t.BrightRed })
	case log.WarnLevel:
		return pick("#ffff00", func(t *tint.Tint) color.Color { return t.BrightYellow })
	case log.DebugLevel:
		return pick("#7f7f7f", func(t *tint.Tint) color.Color { return t.BrightBlack })
	default:
		return pick("#00cdcd", func(t *tint.Tint) color.Color { return t.Cyan })
	}
}

// ColorToString converts a color to a #rrggbb string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
