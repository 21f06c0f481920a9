package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ErrNoThemeID is returned when neither the file nor its name yields an ID.
var ErrNoThemeID = errors.New("theme has no id")

// GetThemesDir returns ~/.config/deskui/themes, creating it when missing.
func GetThemesDir() (string, error) {
	keep, err := xdg.ConfigFile("deskui/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("themes directory: %w", err)
	}
	return filepath.Dir(keep), nil
}

// LoadCustomThemes registers every *.json tint found in dir and returns the
// IDs it registered. Unreadable files are skipped with a warning.
func LoadCustomThemes(dir string, logger *log.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		t, err := LoadCustomThemeFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			if logger != nil {
				logger.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			}
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, nil
}

// LoadCustomThemeFile parses one tint JSON file. The ID defaults to the
// lower-cased file name and missing colors get xterm defaults.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - reading user themes from their config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, ErrNoThemeID
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

// fillDefaults sets nil colors. Bright variants inherit their normal color.
func fillDefaults(t *tint.Tint) {
	base := []struct {
		slot **tint.Color
		hex  string
	}{
		{&t.Fg, "#e5e5e5"},
		{&t.Bg, "#000000"},
		{&t.Black, "#000000"},
		{&t.Red, "#cd0000"},
		{&t.Green, "#00cd00"},
		{&t.Yellow, "#cdcd00"},
		{&t.Blue, "#0000ee"},
		{&t.Purple, "#cd00cd"},
		{&t.Cyan, "#00cdcd"},
		{&t.White, "#e5e5e5"},
	}
	for _, b := range base {
		if *b.slot == nil {
			*b.slot = tint.FromHex(b.hex)
		}
	}

	derived := []struct {
		slot **tint.Color
		from *tint.Color
	}{
		{&t.Cursor, t.Fg},
		{&t.BrightBlack, t.Black},
		{&t.BrightRed, t.Red},
		{&t.BrightGreen, t.Green},
		{&t.BrightYellow, t.Yellow},
		{&t.BrightBlue, t.Blue},
		{&t.BrightPurple, t.Purple},
		{&t.BrightCyan, t.Cyan},
		{&t.BrightWhite, t.White},
	}
	for _, d := range derived {
		if *d.slot == nil {
			*d.slot = copyColor(d.from)
		}
	}
}

func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
