// Package config provides configuration constants, theme-behavior
// settings, keybindings and the persisted user configuration.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// DefaultWindowWidth is the width of a new window in cells
	DefaultWindowWidth = 36

	// DefaultWindowHeight is the height of a new window in cells
	DefaultWindowHeight = 10

	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 16

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 5

	// DefaultGrabEdge is how many cells of a window stay on screen while dragging
	DefaultGrabEdge = 4

	// WindowCascadeStep offsets each new window from the previous one
	WindowCascadeStep = 2
)

// =============================================================================
// Docking Defaults
// =============================================================================

const (
	// DefaultDockThreshold is the max distance in cells for a dock zone to qualify
	DefaultDockThreshold = 1

	// DefaultDockMode snaps windows into the zone on release
	DefaultDockMode = "release"
)

// =============================================================================
// Start Menu Defaults
// =============================================================================

const (
	// DefaultStartMenuHeight1x is the start menu panel height at level 1x
	DefaultStartMenuHeight1x = 8

	// DefaultStartMenuHeight2x is the start menu panel height at level 2x
	DefaultStartMenuHeight2x = 14

	// DefaultStartMenuSwitchThreshold is the drag distance that switches levels
	DefaultStartMenuSwitchThreshold = 2

	// StartMenuWidth is the width of the start menu panel
	StartMenuWidth = 28
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate of the frame loop
	NormalFPS = 60

	// IdleFPS is the refresh rate while no gesture is in progress
	IdleFPS = 4

	// FrameInterval is the time between two frame loop flushes
	FrameInterval = time.Second / NormalFPS
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// MenuBarHeight is the height of the menubar at the top of the screen
	MenuBarHeight = 1

	// TaskbarHeight is the height of the taskbar
	TaskbarHeight = 1

	// TitleBarHeight is the height of a window title bar, border included
	TitleBarHeight = 1

	// MaxLogMessages is the number of log lines kept for the status line
	MaxLogMessages = 200

	// PointerID is the id used for the terminal's single mouse pointer
	PointerID = 1
)

// =============================================================================
// Decoration Characters
// =============================================================================

const (
	// WindowButtonClose is the close button in the title bar
	WindowButtonClose = "✕"
	// SystemMenuGlyph opens the window menu in the win98 title renderer
	SystemMenuGlyph = "≡"
	// SubmenuArrow marks menu items that open a submenu
	SubmenuArrow = "▸"
	// StartButtonLabel is the label of the taskbar start button
	StartButtonLabel = " ◆ Start "
	// StartMenuGrip is drawn on the start menu resize handle
	StartMenuGrip = "═"
)

const (
	// WindowButtonCloseASCII is the ASCII fallback close button
	WindowButtonCloseASCII = "x"
	// SystemMenuGlyphASCII is the ASCII fallback window menu glyph
	SystemMenuGlyphASCII = "="
	// SubmenuArrowASCII is the ASCII fallback submenu marker
	SubmenuArrowASCII = ">"
	// StartButtonLabelASCII is the ASCII fallback start button label
	StartButtonLabelASCII = " Start "
	// StartMenuGripASCII is the ASCII fallback resize grip
	StartMenuGripASCII = "="
)

// =============================================================================
// Global Settings
// =============================================================================

// UseASCIIOnly replaces decoration glyphs with ASCII
var UseASCIIOnly = false

// BorderStyle is the window border style
var BorderStyle = "rounded"

// ShowClock shows a clock on the right of the taskbar
var ShowClock = true

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

func glyph(unicode, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return unicode
}

// GetCloseButton returns the title bar close button
func GetCloseButton() string { return glyph(WindowButtonClose, WindowButtonCloseASCII) }

// GetSystemMenuGlyph returns the window menu glyph
func GetSystemMenuGlyph() string { return glyph(SystemMenuGlyph, SystemMenuGlyphASCII) }

// GetSubmenuArrow returns the submenu marker
func GetSubmenuArrow() string { return glyph(SubmenuArrow, SubmenuArrowASCII) }

// GetStartButtonLabel returns the start button label
func GetStartButtonLabel() string { return glyph(StartButtonLabel, StartButtonLabelASCII) }

// GetStartMenuGrip returns the resize grip character
func GetStartMenuGrip() string { return glyph(StartMenuGrip, StartMenuGripASCII) }
