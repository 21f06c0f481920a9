package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// configRelPath is the config file location inside the XDG config home.
const configRelPath = "deskui/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance" yaml:"appearance"`
	Behavior    Behavior            `toml:"behavior" yaml:"behavior"`
	Keybindings map[string][]string `toml:"keybindings" yaml:"keybindings"`
	Logging     LoggingConfig       `toml:"logging" yaml:"logging"`

	raw      Behavior
	warnings []ValidationIssue
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme       string `toml:"theme" yaml:"theme"`               // Color theme name (e.g., dracula, nord, my-custom-theme)
	Style       string `toml:"style" yaml:"style"`               // Behavior preset and renderer style: default, win98, winxp
	BorderStyle string `toml:"border_style" yaml:"border_style"` // Border style: rounded, normal, thick, double, block, ascii
	ShowClock   *bool  `toml:"show_clock,omitempty" yaml:"show_clock,omitempty"`
	ASCIIOnly   bool   `toml:"ascii_only" yaml:"ascii_only"` // Use ASCII instead of Unicode glyphs
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn, error
	File  string `toml:"file" yaml:"file"`   // Log file path; empty disables file logging
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Style:       "default",
			BorderStyle: "rounded",
			ShowClock:   boolPtr(true),
		},
		Behavior:    DefaultBehavior(),
		Keybindings: DefaultKeybindings(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config
// directory, creating a default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile reads a TOML or YAML config file, chosen by extension,
// and completes it with defaults.
func LoadConfigFile(path string) (*UserConfig, error) {
	// #nosec G304 - reading a user supplied config path is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fillMissing(&cfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		return nil, fmt.Errorf("configuration has %d error(s): %s", len(validation.Errors), validation.Errors[0])
	}
	cfg.warnings = validation.Warnings
	return &cfg, nil
}

// Warnings returns the validation warnings found while loading.
func (c *UserConfig) Warnings() []ValidationIssue {
	return c.warnings
}

// fillMissing completes cfg with the defaults. Behavior goes through the
// style preset first.
func fillMissing(cfg *UserConfig) {
	defaultCfg := DefaultConfig()
	fillMissingAppearance(cfg, defaultCfg)
	cfg.raw = cfg.Behavior
	cfg.Behavior = cfg.Behavior.Resolve(cfg.Appearance.Style)
	fillMissingKeybinds(cfg, defaultCfg)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.Style == "" {
		cfg.Appearance.Style = defaultCfg.Appearance.Style
	}
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.ShowClock == nil {
		cfg.Appearance.ShowClock = defaultCfg.Appearance.ShowClock
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	for action, keys := range defaultCfg.Keybindings {
		if _, exists := cfg.Keybindings[action]; !exists {
			cfg.Keybindings[action] = keys
		}
	}
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as TOML with a commented header. Behavior is
// written as the user set it, before style presets and defaults, so a
// later style change still brings its own preset.
func SaveConfig(cfg *UserConfig, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *cfg
	out.Behavior = cfg.raw
	data, err := toml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# deskui configuration file\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# appearance.style: behavior preset and renderer style\n")
	sb.WriteString("#   Options: default, win98, winxp\n")
	sb.WriteString("#\n")
	sb.WriteString("# behavior.interaction_mode: follow applies drags live, static shows an outline\n")
	sb.WriteString("# behavior.window_drag_mode: titlebar or window\n")
	sb.WriteString("# behavior.start_menu_mount: top or bottom\n")
	sb.WriteString("# behavior.docking.mode: release snaps into the zone, follow only previews\n")
	sb.WriteString("# behavior.docking.zones: grid lines 1..4 on a 3x3 grid, e.g.\n")
	sb.WriteString("#   [[behavior.docking.zones]]\n")
	sb.WriteString("#   id = \"left\"\n")
	sb.WriteString("#   column_start = 1\n")
	sb.WriteString("#   column_end = 2\n")
	sb.WriteString("#   row_start = 1\n")
	sb.WriteString("#   row_end = 4\n")
	sb.WriteString("# behavior.menu_focus.open / close: parent or firstChild\n")
	sb.WriteString("# ============================================================================\n\n")
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResetConfig overwrites the config file with the defaults and returns its path.
func ResetConfig() (string, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if err := SaveConfig(DefaultConfig(), configPath); err != nil {
		return "", err
	}
	return configPath, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
