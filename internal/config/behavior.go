package config

import (
	"strings"

	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/menu"
	"github.com/Gaurav-Gosain/deskui/internal/taskbar"
	"github.com/Gaurav-Gosain/deskui/internal/window"
)

// Behavior is the theme-behavior input of the interaction engines. Every
// field is optional; empty values fall back to the style preset and then
// to the defaults.
type Behavior struct {
	InteractionMode   string          `toml:"interaction_mode,omitempty" yaml:"interaction_mode,omitempty"`         // follow or static
	Movable           *bool           `toml:"movable,omitempty" yaml:"movable,omitempty"`                           // default true
	Resizable         *bool           `toml:"resizable,omitempty" yaml:"resizable,omitempty"`                       // default true
	MinWidth          int             `toml:"min_width,omitempty" yaml:"min_width,omitempty"`                       // cells
	MinHeight         int             `toml:"min_height,omitempty" yaml:"min_height,omitempty"`                     // cells
	GrabEdge          int             `toml:"grab_edge,omitempty" yaml:"grab_edge,omitempty"`                       // cells kept on screen while dragging
	ActivateWholeArea *bool           `toml:"activate_whole_area,omitempty" yaml:"activate_whole_area,omitempty"`   // default true
	WindowDragMode    string          `toml:"window_drag_mode,omitempty" yaml:"window_drag_mode,omitempty"`         // titlebar or window
	StartMenuMount    string          `toml:"start_menu_mount,omitempty" yaml:"start_menu_mount,omitempty"`         // top or bottom
	Docking           DockingConfig   `toml:"docking" yaml:"docking"`
	StartMenu         StartMenuConfig `toml:"start_menu_discrete_height" yaml:"start_menu_discrete_height"`
	MenuFocus         MenuFocusConfig `toml:"menu_focus" yaml:"menu_focus"`
}

// DockingConfig configures dock zones.
type DockingConfig struct {
	Enabled   *bool       `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Threshold float64     `toml:"threshold,omitempty" yaml:"threshold,omitempty"`
	Mode      string      `toml:"mode,omitempty" yaml:"mode,omitempty"` // follow or release
	Zones     []dock.Zone `toml:"zones,omitempty" yaml:"zones,omitempty"`
}

// StartMenuConfig configures the discrete start menu height.
type StartMenuConfig struct {
	Enabled         *bool  `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level           string `toml:"level,omitempty" yaml:"level,omitempty"` // initial level: 1x or 2x
	Height1x        int    `toml:"level_1x,omitempty" yaml:"level_1x,omitempty"`
	Height2x        int    `toml:"level_2x,omitempty" yaml:"level_2x,omitempty"`
	SwitchThreshold int    `toml:"switch_threshold,omitempty" yaml:"switch_threshold,omitempty"`
}

// MenuFocusConfig configures menu focus placement.
type MenuFocusConfig struct {
	Open  string `toml:"open,omitempty" yaml:"open,omitempty"`   // parent or firstChild
	Close string `toml:"close,omitempty" yaml:"close,omitempty"` // parent or firstChild
}

func boolPtr(b bool) *bool { return &b }

func boolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// DefaultBehavior returns the fully populated default behavior.
func DefaultBehavior() Behavior {
	return Behavior{
		InteractionMode:   string(window.Follow),
		Movable:           boolPtr(true),
		Resizable:         boolPtr(true),
		MinWidth:          MinWindowWidth,
		MinHeight:         MinWindowHeight,
		GrabEdge:          DefaultGrabEdge,
		ActivateWholeArea: boolPtr(true),
		WindowDragMode:    string(window.DragTitleBar),
		StartMenuMount:    string(taskbar.MountBottom),
		Docking: DockingConfig{
			Enabled:   boolPtr(true),
			Threshold: DefaultDockThreshold,
			Mode:      DefaultDockMode,
		},
		StartMenu: StartMenuConfig{
			Enabled:         boolPtr(true),
			Level:           string(taskbar.Level1x),
			Height1x:        DefaultStartMenuHeight1x,
			Height2x:        DefaultStartMenuHeight2x,
			SwitchThreshold: DefaultStartMenuSwitchThreshold,
		},
		MenuFocus: MenuFocusConfig{
			Open:  string(menu.FocusFirstChild),
			Close: string(menu.FocusParent),
		},
	}
}

// Styles lists the known style presets.
var Styles = []string{"default", "win98", "winxp"}

// Preset returns the behavior overlay of a style. Unknown styles have none.
func Preset(style string) Behavior {
	switch strings.ToLower(style) {
	case "win98":
		return Behavior{
			InteractionMode:   string(window.Static),
			ActivateWholeArea: boolPtr(true),
			WindowDragMode:    string(window.DragTitleBar),
			Docking:           DockingConfig{Enabled: boolPtr(false)},
			StartMenu:         StartMenuConfig{Enabled: boolPtr(false)},
			MenuFocus:         MenuFocusConfig{Open: string(menu.FocusFirstChild), Close: string(menu.FocusParent)},
		}
	case "winxp":
		return Behavior{
			InteractionMode: string(window.Follow),
			StartMenuMount:  string(taskbar.MountBottom),
			Docking:         DockingConfig{Enabled: boolPtr(true), Mode: string(dock.ModeRelease)},
			StartMenu:       StartMenuConfig{Enabled: boolPtr(true)},
		}
	default:
		return Behavior{}
	}
}

// fillBehavior fills every unset field of b from fallback.
func fillBehavior(b *Behavior, fallback Behavior) {
	if b.InteractionMode == "" {
		b.InteractionMode = fallback.InteractionMode
	}
	if b.Movable == nil {
		b.Movable = fallback.Movable
	}
	if b.Resizable == nil {
		b.Resizable = fallback.Resizable
	}
	if b.MinWidth <= 0 {
		b.MinWidth = fallback.MinWidth
	}
	if b.MinHeight <= 0 {
		b.MinHeight = fallback.MinHeight
	}
	if b.GrabEdge <= 0 {
		b.GrabEdge = fallback.GrabEdge
	}
	if b.ActivateWholeArea == nil {
		b.ActivateWholeArea = fallback.ActivateWholeArea
	}
	if b.WindowDragMode == "" {
		b.WindowDragMode = fallback.WindowDragMode
	}
	if b.StartMenuMount == "" {
		b.StartMenuMount = fallback.StartMenuMount
	}

	if b.Docking.Enabled == nil {
		b.Docking.Enabled = fallback.Docking.Enabled
	}
	if b.Docking.Threshold <= 0 {
		b.Docking.Threshold = fallback.Docking.Threshold
	}
	if b.Docking.Mode == "" {
		b.Docking.Mode = fallback.Docking.Mode
	}
	if len(b.Docking.Zones) == 0 {
		b.Docking.Zones = fallback.Docking.Zones
	}

	if b.StartMenu.Enabled == nil {
		b.StartMenu.Enabled = fallback.StartMenu.Enabled
	}
	if b.StartMenu.Level == "" {
		b.StartMenu.Level = fallback.StartMenu.Level
	}
	if b.StartMenu.Height1x <= 0 {
		b.StartMenu.Height1x = fallback.StartMenu.Height1x
	}
	if b.StartMenu.Height2x <= 0 {
		b.StartMenu.Height2x = fallback.StartMenu.Height2x
	}
	if b.StartMenu.SwitchThreshold <= 0 {
		b.StartMenu.SwitchThreshold = fallback.StartMenu.SwitchThreshold
	}

	if b.MenuFocus.Open == "" {
		b.MenuFocus.Open = fallback.MenuFocus.Open
	}
	if b.MenuFocus.Close == "" {
		b.MenuFocus.Close = fallback.MenuFocus.Close
	}
}

// Resolve returns b completed from the style preset and the defaults.
func (b Behavior) Resolve(style string) Behavior {
	fillBehavior(&b, Preset(style))
	fillBehavior(&b, DefaultBehavior())
	return b
}

// WindowConfig returns a window configuration carrying the behavior. The
// caller sets identity, geometry and collaborators.
func (b Behavior) WindowConfig() window.Config {
	cfg := window.DefaultConfig()
	cfg.Mode = window.ParseMode(b.InteractionMode)
	cfg.Movable = boolValue(b.Movable, true)
	cfg.Resizable = boolValue(b.Resizable, true)
	cfg.MinWidth = float64(b.MinWidth)
	cfg.MinHeight = float64(b.MinHeight)
	cfg.GrabEdge = float64(b.GrabEdge)
	cfg.ActivateWholeArea = boolValue(b.ActivateWholeArea, true)
	cfg.DragMode = window.ParseDragMode(b.WindowDragMode)
	cfg.Docking = window.Docking{
		Enabled: boolValue(b.Docking.Enabled, true),
		Zones:   b.DockZones(),
		Policy: dock.Policy{
			ThresholdPx: b.Docking.Threshold,
			Mode:        dock.ParseMode(b.Docking.Mode),
		},
	}
	return cfg
}

// DockZones returns the configured zones or the default set.
func (b Behavior) DockZones() []dock.Zone {
	if len(b.Docking.Zones) > 0 {
		return b.Docking.Zones
	}
	return dock.DefaultZones()
}

// StartMenuConfig returns the start menu controller configuration.
func (b Behavior) StartMenuConfig() taskbar.Config {
	return taskbar.Config{
		Mount:          taskbar.ParseMount(b.StartMenuMount),
		DiscreteHeight: boolValue(b.StartMenu.Enabled, true),
		Heights: taskbar.LevelHeights{
			Level1x: float64(b.StartMenu.Height1x),
			Level2x: float64(b.StartMenu.Height2x),
		},
		SwitchThresholdPx: float64(b.StartMenu.SwitchThreshold),
		InitialLevel:      b.StartMenu.Level,
	}
}

// FocusBehavior returns the menu focus behavior.
func (b Behavior) FocusBehavior() menu.FocusBehavior {
	return menu.FocusBehavior{
		Open:  menu.ParseFocusTarget(b.MenuFocus.Open),
		Close: menu.ParseFocusTarget(b.MenuFocus.Close),
	}
}

// MinSize returns the minimum window size.
func (b Behavior) MinSize() geom.Size {
	return geom.Size{Width: float64(b.MinWidth), Height: float64(b.MinHeight)}
}
