package config

import (
	"github.com/Gaurav-Gosain/deskui/internal/theme"
	"github.com/charmbracelet/log"
)

// Overrides contains CLI flag values that can override user config.
// Zero values mean the flag was not set.
type Overrides struct {
	// ThemeName is the theme to load
	ThemeName string

	// Style selects the behavior preset and renderer style
	Style string

	// InteractionMode overrides behavior.interaction_mode
	InteractionMode string

	// DragMode overrides behavior.window_drag_mode
	DragMode string

	// StartMenuMount overrides behavior.start_menu_mount
	StartMenuMount string

	// BorderStyle overrides the window border style
	BorderStyle string

	// ASCIIOnly uses ASCII characters instead of Unicode glyphs
	ASCIIOnly bool

	// NoDocking disables dock zones
	NoDocking bool

	// HideClock hides the taskbar clock
	HideClock bool

	// LogLevel overrides logging.level
	LogLevel string
}

// ApplyOverrides merges the flags into cfg, sets the package globals and
// initializes the theme. Behavior is re-resolved from the values the user
// wrote, so a style flag brings its own preset. A nil cfg starts from the
// defaults. The merged config is returned.
func ApplyOverrides(o Overrides, cfg *UserConfig, logger *log.Logger) *UserConfig {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if o.Style != "" {
		cfg.Appearance.Style = o.Style
	}
	b := cfg.raw
	if o.InteractionMode != "" {
		b.InteractionMode = o.InteractionMode
	}
	if o.DragMode != "" {
		b.WindowDragMode = o.DragMode
	}
	if o.StartMenuMount != "" {
		b.StartMenuMount = o.StartMenuMount
	}
	if o.NoDocking {
		b.Docking.Enabled = boolPtr(false)
	}
	cfg.raw = b
	cfg.Behavior = b.Resolve(cfg.Appearance.Style)

	if o.BorderStyle != "" {
		cfg.Appearance.BorderStyle = o.BorderStyle
	}
	if o.ASCIIOnly {
		cfg.Appearance.ASCIIOnly = true
	}
	if o.HideClock {
		cfg.Appearance.ShowClock = boolPtr(false)
	}
	if o.ThemeName != "" {
		cfg.Appearance.Theme = o.ThemeName
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}

	UseASCIIOnly = cfg.Appearance.ASCIIOnly
	if cfg.Appearance.BorderStyle != "" {
		BorderStyle = cfg.Appearance.BorderStyle
	}
	ShowClock = boolValue(cfg.Appearance.ShowClock, true)

	if err := theme.Initialize(cfg.Appearance.Theme, logger); err != nil && logger != nil {
		logger.Warn("failed to load theme", "theme", cfg.Appearance.Theme, "err", err)
	}
	return cfg
}
