package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/menu"
	"github.com/Gaurav-Gosain/deskui/internal/taskbar"
	"github.com/Gaurav-Gosain/deskui/internal/window"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetGlobals(t *testing.T) {
	t.Helper()
	ascii, border, clock := UseASCIIOnly, BorderStyle, ShowClock
	t.Cleanup(func() {
		UseASCIIOnly, BorderStyle, ShowClock = ascii, border, clock
	})
}

func TestDefaultBehaviorResolves(t *testing.T) {
	b := Behavior{}.Resolve("default")
	wc := b.WindowConfig()
	if wc.Mode != window.Follow || wc.DragMode != window.DragTitleBar {
		t.Errorf("mode = %s / %s", wc.Mode, wc.DragMode)
	}
	if !wc.Movable || !wc.Resizable || !wc.ActivateWholeArea {
		t.Error("window should be movable, resizable and activate on the whole area")
	}
	if wc.MinWidth != MinWindowWidth || wc.GrabEdge != DefaultGrabEdge {
		t.Errorf("min width %v grab edge %v", wc.MinWidth, wc.GrabEdge)
	}
	if !wc.Docking.Enabled || wc.Docking.Policy.Mode != dock.ModeRelease {
		t.Errorf("docking = %+v", wc.Docking)
	}
	if len(wc.Docking.Zones) != len(dock.DefaultZones()) {
		t.Errorf("zones = %d", len(wc.Docking.Zones))
	}

	sm := b.StartMenuConfig()
	if sm.Mount != taskbar.MountBottom || !sm.DiscreteHeight {
		t.Errorf("start menu = %+v", sm)
	}
	if b.FocusBehavior() != (menu.FocusBehavior{Open: menu.FocusFirstChild, Close: menu.FocusParent}) {
		t.Errorf("focus = %+v", b.FocusBehavior())
	}
}

func TestPresetWin98(t *testing.T) {
	b := Behavior{}.Resolve("Win98")
	if b.InteractionMode != "static" {
		t.Errorf("interaction mode = %q", b.InteractionMode)
	}
	if boolValue(b.Docking.Enabled, true) || boolValue(b.StartMenu.Enabled, true) {
		t.Error("win98 disables docking and the discrete start menu")
	}

	// Explicit values beat the preset.
	b = Behavior{InteractionMode: "follow", Docking: DockingConfig{Enabled: boolPtr(true)}}.Resolve("win98")
	if b.InteractionMode != "follow" || !*b.Docking.Enabled {
		t.Errorf("user values lost: %+v", b)
	}
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[appearance]
style = "win98"

[behavior]
grab_edge = 6

[[behavior.docking.zones]]
id = "top"
column_start = 1
column_end = 4
row_start = 1
row_end = 2

[keybindings]
quit = ["ctrl+q"]
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Behavior.InteractionMode != "static" {
		t.Errorf("preset not applied: %q", cfg.Behavior.InteractionMode)
	}
	if cfg.Behavior.GrabEdge != 6 {
		t.Errorf("grab edge = %d", cfg.Behavior.GrabEdge)
	}
	zones := cfg.Behavior.DockZones()
	if len(zones) != 1 || zones[0].ID != "top" {
		t.Errorf("zones = %+v", zones)
	}
	if got := cfg.Keybindings[ActionQuit]; len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("quit keys = %v", got)
	}
	if len(cfg.Keybindings[ActionNewWindow]) == 0 {
		t.Error("missing keybindings not filled")
	}
	if cfg.Appearance.BorderStyle != "rounded" || cfg.Logging.Level != "info" {
		t.Errorf("appearance defaults not filled: %+v", cfg.Appearance)
	}
	if len(cfg.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", cfg.Warnings())
	}
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
behavior:
  interaction_mode: static
  start_menu_mount: top
  start_menu_discrete_height:
    level: 2x
    level_1x: 6
    level_2x: 12
  menu_focus:
    open: parent
logging:
  level: debug
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Appearance.Style != "default" {
		t.Errorf("style = %q", cfg.Appearance.Style)
	}
	if cfg.Behavior.WindowConfig().Mode != window.Static {
		t.Error("interaction mode not read")
	}
	sm := cfg.Behavior.StartMenuConfig()
	if sm.Mount != taskbar.MountTop || sm.InitialLevel != "2x" {
		t.Errorf("start menu = %+v", sm)
	}
	if sm.Heights.Level1x != 6 || sm.Heights.Level2x != 12 {
		t.Errorf("heights = %+v", sm.Heights)
	}
	if cfg.Behavior.FocusBehavior().Open != menu.FocusParent {
		t.Error("menu focus open not read")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{"syntax", "c.toml", "[behavior\n", "parse"},
		{"heights", "c.toml", "[behavior.start_menu_discrete_height]\nlevel_1x = 10\nlevel_2x = 10\n", "level_2x"},
		{"duplicate zone", "c.yaml", "behavior:\n  docking:\n    zones:\n      - {id: a, column_start: 1, column_end: 2, row_start: 1, row_end: 2}\n      - {id: a, column_start: 2, column_end: 3, row_start: 1, row_end: 2}\n", "duplicate"},
		{"zone without id", "c.yaml", "behavior:\n  docking:\n    zones:\n      - {column_start: 1, column_end: 2, row_start: 1, row_end: 2}\n", "no id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfig(t, tt.file, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected read error")
	}
}

func TestValidateConfigWarnings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Appearance.Style = "amiga"
	cfg.Behavior.InteractionMode = "floaty"
	cfg.Behavior.MenuFocus.Open = "firstChild"
	cfg.Behavior.StartMenu.Level = "3x"
	cfg.Behavior.Docking.Zones = []dock.Zone{{ID: "wide", ColumnStart: 0, ColumnEnd: 9, RowStart: 1, RowEnd: 4}}
	cfg.Logging.Level = "chatty"
	cfg.Keybindings["teleport"] = []string{"t"}

	r := ValidateConfig(cfg)
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	keys := make(map[string]bool)
	for _, w := range r.Warnings {
		keys[w.Key] = true
	}
	for _, want := range []string{"style", "interaction_mode", "level", "wide", "teleport"} {
		if !keys[want] {
			t.Errorf("missing warning for %q in %v", want, r.Warnings)
		}
	}
	if keys["open"] {
		t.Error("firstChild is a valid focus target")
	}

	issue := ValidationIssue{Field: "behavior", Key: "grab_edge", Message: "bad"}
	if issue.String() != "[behavior] grab_edge: bad" {
		t.Errorf("String() = %q", issue.String())
	}
}

func TestSaveConfigLoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := SaveConfig(DefaultConfig(), path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# deskui configuration file") {
		t.Error("header missing")
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Behavior.StartMenu.Height2x != DefaultStartMenuHeight2x {
		t.Errorf("level_2x = %d", cfg.Behavior.StartMenu.Height2x)
	}
}

func TestSavedDefaultsKeepPresetsWorking(t *testing.T) {
	resetGlobals(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfig(DefaultConfig(), path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "interaction_mode =") {
		t.Errorf("resolved behavior written to disk:\n%s", data)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg = ApplyOverrides(Overrides{Style: "win98"}, cfg, nil)
	if cfg.Behavior.InteractionMode != "static" {
		t.Errorf("interaction mode = %q, want the win98 preset", cfg.Behavior.InteractionMode)
	}
	if *cfg.Behavior.Docking.Enabled {
		t.Error("win98 disables docking")
	}
	if *cfg.Behavior.StartMenu.Enabled {
		t.Error("win98 disables the discrete start menu")
	}

	// A saved loaded config keeps what the user wrote.
	loaded := writeConfig(t, "user.toml", "[behavior]\nwindow_drag_mode = \"window\"\n")
	cfg, err = LoadConfigFile(loaded)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg = ApplyOverrides(Overrides{Style: "win98"}, cfg, nil)
	if cfg.Behavior.WindowDragMode != "window" || cfg.Behavior.InteractionMode != "static" {
		t.Errorf("behavior = %q/%q", cfg.Behavior.WindowDragMode, cfg.Behavior.InteractionMode)
	}
}

func TestApplyOverrides(t *testing.T) {
	resetGlobals(t)

	cfg := ApplyOverrides(Overrides{
		Style:       "win98",
		ASCIIOnly:   true,
		HideClock:   true,
		BorderStyle: "double",
		LogLevel:    "warn",
	}, nil, nil)

	if cfg.Behavior.InteractionMode != "static" {
		t.Errorf("style flag should bring the win98 preset, got %q", cfg.Behavior.InteractionMode)
	}
	if !UseASCIIOnly || ShowClock || BorderStyle != "double" {
		t.Errorf("globals = %v %v %q", UseASCIIOnly, ShowClock, BorderStyle)
	}
	if GetCloseButton() != WindowButtonCloseASCII {
		t.Error("ascii glyphs not used")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestApplyOverridesOnLoadedConfig(t *testing.T) {
	resetGlobals(t)

	path := writeConfig(t, "config.toml", "[appearance]\nstyle = \"win98\"\n\n[behavior]\nwindow_drag_mode = \"window\"\n")
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg = ApplyOverrides(Overrides{Style: "winxp", StartMenuMount: "top"}, cfg, nil)
	if cfg.Behavior.InteractionMode != "follow" {
		t.Errorf("win98 preset leaked: %q", cfg.Behavior.InteractionMode)
	}
	if !*cfg.Behavior.Docking.Enabled {
		t.Error("winxp enables docking")
	}
	if cfg.Behavior.WindowDragMode != "window" {
		t.Error("user drag mode lost")
	}
	if cfg.Behavior.StartMenuMount != "top" {
		t.Error("mount flag ignored")
	}

	cfg = ApplyOverrides(Overrides{NoDocking: true}, cfg, nil)
	if *cfg.Behavior.Docking.Enabled {
		t.Error("--no-docking ignored")
	}
}

func TestKeyMap(t *testing.T) {
	km := NewKeyMap(DefaultKeybindings())
	for key, want := range map[string]string{
		"ctrl+c":    ActionQuit,
		"Tab":       ActionNextWindow,
		"shift+tab": ActionPrevWindow,
		"f10":       ActionFocusMenuBar,
	} {
		if got, ok := km.Action(key); !ok || got != want {
			t.Errorf("Action(%q) = %q, %v", key, got, ok)
		}
	}
	if _, ok := km.Action("ctrl+z"); ok {
		t.Error("unbound key resolved")
	}

	km = NewKeyMap(map[string][]string{
		ActionNewWindow: {"Q", " "},
		ActionQuit:      {"q"},
	})
	if got, _ := km.Action("q"); got != ActionQuit {
		t.Errorf("quit should win a shared key, got %q", got)
	}
	if keys := km.Keys(ActionNewWindow); len(keys) != 1 || keys[0] != "q" {
		t.Errorf("Keys = %v", keys)
	}
	help := km.Help()
	if len(help) != 2 || help[0].Description != "Quit" {
		t.Errorf("Help = %+v", help)
	}
}
