// Package deskui provides the deskui desktop as a Bubble Tea model that can
// be embedded in other programs or run on its own.
//
// # Basic Usage
//
// Create a desktop with default options and run it:
//
//	model, err := deskui.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tea.NewProgram(model, deskui.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to pick a preset or override single behaviors:
//
//	model, err := deskui.New(
//		deskui.WithStyle("win98"),
//		deskui.WithInteractionMode("follow"),
//		deskui.WithStartMenuMount("top"),
//		deskui.WithTheme("dracula"),
//	)
package deskui

import (
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/app"
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/Gaurav-Gosain/deskui/internal/input"
)

// Model is the desktop model. It implements tea.Model.
type Model = app.Desktop

// UserConfig is the configuration a desktop is built from.
type UserConfig = config.UserConfig

// Zone is a dock zone on the 3x3 grid.
type Zone = dock.Zone

// Options configures a desktop.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// Style selects the behavior preset and renderer style.
	// Valid values: "default", "win98", "winxp"
	Style string

	// InteractionMode is "follow" or "static". Empty keeps the style's.
	InteractionMode string

	// DragMode is "titlebar" or "window". Empty keeps the style's.
	DragMode string

	// StartMenuMount is "bottom" or "top". Empty keeps the style's.
	StartMenuMount string

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "block", "ascii"
	BorderStyle string

	// ASCIIOnly uses ASCII characters instead of Unicode glyphs.
	ASCIIOnly bool

	// NoDocking disables dock zones.
	NoDocking bool

	// HideClock hides the taskbar clock.
	HideClock bool

	// Width and Height are the initial size; the first window size
	// message replaces them.
	Width, Height int

	// LogOutput receives the desktop's log lines.
	LogOutput io.Writer

	// OpenWindow opens a notes window on start.
	OpenWindow bool

	// UserConfig is a custom user configuration. If nil, the XDG config
	// file is loaded, falling back to the defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a desktop.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithStyle sets the style preset.
func WithStyle(style string) Option {
	return func(o *Options) {
		o.Style = style
	}
}

// WithInteractionMode sets the window interaction mode.
func WithInteractionMode(mode string) Option {
	return func(o *Options) {
		o.InteractionMode = mode
	}
}

// WithDragMode sets which part of a window starts a move.
func WithDragMode(mode string) Option {
	return func(o *Options) {
		o.DragMode = mode
	}
}

// WithStartMenuMount sets where the taskbar and start menu sit.
func WithStartMenuMount(mount string) Option {
	return func(o *Options) {
		o.StartMenuMount = mount
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithASCIIOnly enables ASCII-only glyphs.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithDocking enables or disables dock zones.
func WithDocking(enabled bool) Option {
	return func(o *Options) {
		o.NoDocking = !enabled
	}
}

// WithClock shows or hides the taskbar clock.
func WithClock(show bool) Option {
	return func(o *Options) {
		o.HideClock = !show
	}
}

// WithSize sets the initial dimensions.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithLogOutput sends the desktop's log lines to w.
func WithLogOutput(w io.Writer) Option {
	return func(o *Options) {
		o.LogOutput = w
	}
}

// WithWindow opens a notes window on start.
func WithWindow(open bool) Option {
	return func(o *Options) {
		o.OpenWindow = open
	}
}

// WithUserConfig uses a custom configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{Width: 80, Height: 24, OpenWindow: true}
}

// New creates a desktop with the given options.
func New(opts ...Option) (*Model, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	app.SetInputHandler(input.HandleInput)

	cfg := options.UserConfig
	if cfg == nil {
		var err error
		cfg, err = config.LoadUserConfig()
		if err != nil {
			cfg = config.DefaultConfig()
		}
	}
	cfg = config.ApplyOverrides(config.Overrides{
		ThemeName:       options.Theme,
		Style:           options.Style,
		InteractionMode: options.InteractionMode,
		DragMode:        options.DragMode,
		StartMenuMount:  options.StartMenuMount,
		BorderStyle:     options.BorderStyle,
		ASCIIOnly:       options.ASCIIOnly,
		NoDocking:       options.NoDocking,
		HideClock:       options.HideClock,
	}, cfg, nil)

	d, err := app.New(app.Options{
		Config:    cfg,
		LogOutput: options.LogOutput,
		Width:     options.Width,
		Height:    options.Height,
	})
	if err != nil {
		return nil, err
	}
	if options.OpenWindow {
		d.OpenNotes()
	}
	return d, nil
}

// ProgramOptions returns the recommended Bubble Tea program options: the
// frame rate the desktop is tuned for and a filter that drops pointer
// motion nothing is waiting for.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(input.Filter),
	}
}

// DefaultZones returns the built-in dock zones.
func DefaultZones() []Zone {
	return dock.DefaultZones()
}

// ResolveZone returns the id of the zone nearest to (x, y) within
// threshold cells of a width x height viewport.
func ResolveZone(zones []Zone, x, y, threshold float64, width, height int) (string, bool) {
	viewport := geom.Size{Width: float64(width), Height: float64(height)}
	m, ok := dock.Resolve(zones, geom.Point{X: x, Y: y}, threshold, viewport)
	return m.ZoneID, ok
}

// Config exposes configuration loading.
var Config = struct {
	LoadUserConfig func() (*config.UserConfig, error)
	LoadConfigFile func(path string) (*config.UserConfig, error)
	DefaultConfig  func() *config.UserConfig
	GetConfigPath  func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	LoadConfigFile: config.LoadConfigFile,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
