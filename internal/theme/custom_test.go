package theme

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func sameRGB(a, b *tint.Color) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}

func TestLoadCustomThemeFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "desk-full.json", `{
		"id": "desk-full",
		"display_name": "Desk Full",
		"dark": true,
		"fg": "#d4d4d4",
		"bg": "#1e1e2e",
		"blue": "#89b4fa",
		"bright_blue": "#74c7ec"
	}`)

	th, err := LoadCustomThemeFile(path)
	if err != nil {
		t.Fatalf("LoadCustomThemeFile: %v", err)
	}
	if th.ID != "desk-full" || th.DisplayName != "Desk Full" || !th.Dark {
		t.Fatalf("unexpected header: %+v", th)
	}
	if sameRGB(th.BrightBlue, th.Blue) {
		t.Error("explicit bright_blue was overwritten")
	}
	for i, c := range []*tint.Color{th.Cursor, th.Red, th.BrightBlack, th.BrightWhite} {
		if c == nil {
			t.Errorf("color %d not filled", i)
		}
	}
}

func TestLoadCustomThemeFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "Teal-Desk.json", `{"fg": "#c0c0c0", "bg": "#008080"}`)

	th, err := LoadCustomThemeFile(path)
	if err != nil {
		t.Fatalf("LoadCustomThemeFile: %v", err)
	}
	if th.ID != "teal-desk" || th.DisplayName != "teal-desk" {
		t.Errorf("id from file name: got %q / %q", th.ID, th.DisplayName)
	}
	if !sameRGB(th.Cursor, th.Fg) {
		t.Error("cursor should inherit fg")
	}
	if th.Cursor == th.Fg {
		t.Error("cursor should be a copy, not an alias")
	}
	if !sameRGB(th.BrightRed, th.Red) {
		t.Error("bright red should inherit red")
	}
}

func TestLoadCustomThemeFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "bad.json", "{{{")
	if _, err := LoadCustomThemeFile(path); err == nil {
		t.Error("expected parse error")
	}
	if _, err := LoadCustomThemeFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected read error")
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "notes.md", "not a theme")
	writeTheme(t, dir, "broken.json", "nope")
	writeTheme(t, dir, "desk-registered.JSON", `{"id": "desk-registered"}`)

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir, nil)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if !slices.Equal(loaded, []string{"desk-registered"}) {
		t.Fatalf("loaded = %v", loaded)
	}
	if !slices.Contains(tint.TintIDs(), "desk-registered") {
		t.Error("theme not registered")
	}

	if _, err := LoadCustomThemes(filepath.Join(dir, "absent"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestListReportsUnreadableThemesDir(t *testing.T) {
	home := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	// A file where the themes directory should be.
	if err := os.MkdirAll(filepath.Join(home, "deskui"), 0750); err != nil {
		t.Fatal(err)
	}
	writeTheme(t, filepath.Join(home, "deskui"), "themes", "not a directory")

	var buf bytes.Buffer
	ids := List(log.New(&buf))
	if len(ids) == 0 {
		t.Error("built-in themes should still be listed")
	}
	if !strings.Contains(buf.String(), "custom themes") {
		t.Errorf("expected a warning, log = %q", buf.String())
	}
}

func TestFillDefaultsEmpty(t *testing.T) {
	th := &tint.Tint{}
	fillDefaults(th)
	for i, c := range []*tint.Color{th.Fg, th.Bg, th.Cursor, th.Black, th.White, th.BrightWhite} {
		if c == nil {
			t.Errorf("slot %d nil", i)
		}
	}
	if copyColor(nil) != nil {
		t.Error("copyColor(nil) should be nil")
	}
}

func TestFallbackPalette(t *testing.T) {
	if err := Initialize("", nil); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("empty theme name should disable theming")
	}
	if got := ColorToString(TitleActiveBg()); got != "#000080" {
		t.Errorf("TitleActiveBg = %s", got)
	}
	if got := ColorToString(DesktopBg()); got != "#008080" {
		t.Errorf("DesktopBg = %s", got)
	}
	if got := ColorToString(lipgloss.Color("#ff8000")); got != "#ff8000" {
		t.Errorf("ColorToString = %s", got)
	}
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
}
