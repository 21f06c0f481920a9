package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/dock"
	"github.com/Gaurav-Gosain/deskui/internal/geom"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func cliLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "deskui"})
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func showConfig() error {
	cfg := loadConfig(cliLogger())
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func resetConfigToDefaults() error {
	path, err := config.ResetConfig()
	if err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Printf("Configuration reset to defaults: %s\n", path)
	return nil
}

func listKeybindings() error {
	cfg := loadConfig(cliLogger())
	km := config.NewKeyMap(cfg.Keybindings)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ACTION", "KEYS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, kb := range km.Help() {
		t.Row(kb.Description, kb.Key)
	}
	lipgloss.Println(t)
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return geom.Point{X: x, Y: y}, nil
}

// printZones prints the configured dock zones resolved against a
// width x height viewport and, when at is set, the zone picked there.
func printZones(width, height int, at string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", width, height)
	}
	cfg := loadConfig(cliLogger())
	behavior := cfg.Behavior
	viewport := geom.Size{Width: float64(width), Height: float64(height)}
	zones := behavior.DockZones()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ZONE", "GRID", "RECT", "PRIORITY", "ENABLED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, z := range zones {
		r := z.Rect(viewport)
		t.Row(
			z.ID,
			fmt.Sprintf("c%d-%d r%d-%d", z.ColumnStart, z.ColumnEnd, z.RowStart, z.RowEnd),
			fmt.Sprintf("%.0f,%.0f %.0fx%.0f", r.X, r.Y, r.Width, r.Height),
			strconv.Itoa(z.Priority),
			strconv.FormatBool(z.IsEnabled()),
		)
	}
	lipgloss.Println(t)

	if at == "" {
		return nil
	}
	p, err := parsePoint(at)
	if err != nil {
		return err
	}
	if m, ok := dock.Resolve(zones, p, behavior.Docking.Threshold, viewport); ok {
		fmt.Printf("%s -> %s\n", at, m)
	} else {
		fmt.Printf("%s -> no zone within %.0f cells\n", at, behavior.Docking.Threshold)
	}
	return nil
}
