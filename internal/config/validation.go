package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/deskui/internal/taskbar"
	"github.com/charmbracelet/log"
)

// ValidationIssue is one problem found in a config.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Field, v.Key, v.Message)
}

// ValidationResult collects config errors and warnings.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether the config is unusable.
func (r ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether some values were normalized.
func (r ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

var (
	validInteractionModes = []string{"follow", "static"}
	validDragModes        = []string{"titlebar", "window"}
	validMounts           = []string{"top", "bottom"}
	validDockModes        = []string{"follow", "release"}
	validFocusTargets     = []string{"parent", "firstchild"}
	validBorderStyles     = []string{"rounded", "normal", "thick", "double", "block", "ascii"}
)

func oneOf(v string, valid []string) bool {
	return slices.Contains(valid, strings.ToLower(v))
}

// ValidateConfig checks cfg. Unknown enum values are warnings because the
// engines normalize them; structural problems are errors.
func ValidateConfig(cfg *UserConfig) ValidationResult {
	var r ValidationResult

	if cfg.Appearance.Style != "" && !slices.Contains(Styles, strings.ToLower(cfg.Appearance.Style)) {
		r.warnf("appearance", "style", "unknown style %q, using default behavior", cfg.Appearance.Style)
	}
	if cfg.Appearance.BorderStyle != "" && !oneOf(cfg.Appearance.BorderStyle, validBorderStyles) {
		r.warnf("appearance", "border_style", "unknown border style %q, using rounded", cfg.Appearance.BorderStyle)
	}

	b := cfg.Behavior
	if b.InteractionMode != "" && !oneOf(b.InteractionMode, validInteractionModes) {
		r.warnf("behavior", "interaction_mode", "unknown mode %q, using follow", b.InteractionMode)
	}
	if b.WindowDragMode != "" && !oneOf(b.WindowDragMode, validDragModes) {
		r.warnf("behavior", "window_drag_mode", "unknown drag mode %q, using titlebar", b.WindowDragMode)
	}
	if b.StartMenuMount != "" && !oneOf(b.StartMenuMount, validMounts) {
		r.warnf("behavior", "start_menu_mount", "unknown mount %q, using bottom", b.StartMenuMount)
	}
	if b.Docking.Mode != "" && !oneOf(b.Docking.Mode, validDockModes) {
		r.warnf("behavior.docking", "mode", "unknown dock mode %q, using release", b.Docking.Mode)
	}
	if b.MenuFocus.Open != "" && !oneOf(b.MenuFocus.Open, validFocusTargets) {
		r.warnf("behavior.menu_focus", "open", "unknown focus target %q, using parent", b.MenuFocus.Open)
	}
	if b.MenuFocus.Close != "" && !oneOf(b.MenuFocus.Close, validFocusTargets) {
		r.warnf("behavior.menu_focus", "close", "unknown focus target %q, using parent", b.MenuFocus.Close)
	}
	if lvl := b.StartMenu.Level; lvl != "" && string(taskbar.NormalizeLevel(lvl)) != lvl {
		r.warnf("behavior.start_menu_discrete_height", "level", "unknown level %q, using 1x", lvl)
	}
	if b.StartMenu.Height1x > 0 && b.StartMenu.Height2x > 0 && b.StartMenu.Height2x <= b.StartMenu.Height1x {
		r.errorf("behavior.start_menu_discrete_height", "level_2x", "level_2x (%d) must be taller than level_1x (%d)", b.StartMenu.Height2x, b.StartMenu.Height1x)
	}

	seen := make(map[string]bool)
	for i, z := range b.Docking.Zones {
		if z.ID == "" {
			r.errorf("behavior.docking", fmt.Sprintf("zones[%d]", i), "zone has no id")
			continue
		}
		if seen[z.ID] {
			r.errorf("behavior.docking", fmt.Sprintf("zones[%d]", i), "duplicate zone id %q", z.ID)
		}
		seen[z.ID] = true
		for _, line := range []int{z.ColumnStart, z.ColumnEnd, z.RowStart, z.RowEnd} {
			if line < 1 || line > 4 {
				r.warnf("behavior.docking", z.ID, "grid line %d outside 1..4 is clamped", line)
				break
			}
		}
	}

	if cfg.Logging.Level != "" {
		if _, err := log.ParseLevel(cfg.Logging.Level); err != nil {
			r.warnf("logging", "level", "unknown level %q, using info", cfg.Logging.Level)
		}
	}

	for action, keys := range cfg.Keybindings {
		if !slices.Contains(Actions, action) {
			r.warnf("keybindings", action, "unknown action")
			continue
		}
		if len(keys) == 0 {
			r.warnf("keybindings", action, "no keys bound")
		}
	}
	return r
}
