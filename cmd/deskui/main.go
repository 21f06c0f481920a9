// Package main implements deskui, a desktop-style terminal UI built from
// the deskui engines: draggable and resizable windows with dock zones, a
// menubar, window menus, a taskbar with a resizable start menu and a
// stacking registry that orders them all.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/deskui/internal/app"
	"github.com/Gaurav-Gosain/deskui/internal/theme"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode       bool
	configFile      string
	logFile         string
	logLevel        string
	asciiOnly       bool
	themeName       string
	listThemes      bool
	styleName       string
	interactionMode string
	dragMode        string
	startMenuMount  string
	borderStyle     string
	noDocking       bool
	hideClock       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskui",
		Short: "Desktop-style terminal UI",
		Long: `deskui - a desktop in your terminal

Windows can be dragged by their title bar, resized from any edge and
snapped into dock zones. A menubar, per-window menus and a taskbar with a
resizable start menu are driven by mouse and keyboard.`,
		Example: `  # Run deskui
  deskui

  # Run with the win98 preset (static drag with an outline)
  deskui --style win98

  # Follow-mode drags, docking disabled
  deskui --mode follow --no-docking

  # Start menu mounted at the top
  deskui --start-menu-mount top

  # Log to a file at debug level
  deskui --debug --log-file /tmp/deskui.log

  # Run with a specific theme
  deskui --theme dracula

  # Show the dock zones of a 120x40 viewport and the zone under a point
  deskui zones --width 120 --height 40 --at 118,20

  # Print the configuration path
  deskui config path`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				for _, t := range theme.List(cliLogger()) {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file to load instead of the XDG one (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (default: from config, empty disables)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config or info)")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&styleName, "style", "", "Style preset: default, win98, winxp (default: from config or default)")
	rootCmd.PersistentFlags().StringVar(&interactionMode, "mode", "", "Window interaction mode: follow, static (default: from style)")
	rootCmd.PersistentFlags().StringVar(&dragMode, "drag-mode", "", "Window drag area: titlebar, window (default: from style)")
	rootCmd.PersistentFlags().StringVar(&startMenuMount, "start-menu-mount", "", "Taskbar and start menu position: bottom, top (default: from style)")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().BoolVar(&noDocking, "no-docking", false, "Disable dock zones")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the taskbar clock")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deskui configuration",
		Long:  `Manage the deskui configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the deskui configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the style preset and command
line flags have been applied, followed by any validation warnings.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the deskui configuration file to default settings

This overwrites your existing configuration.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configShowCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "List keybindings",
		Long:    `Display the configured keybindings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	var zonesWidth, zonesHeight int
	var zonesAt string

	zonesCmd := &cobra.Command{
		Use:   "zones",
		Short: "Show the dock zones for a viewport",
		Long: `Print every configured dock zone resolved against a viewport

With --at, the zone the resolver picks for that pointer position is
reported as well, using the configured threshold.`,
		Example: `  deskui zones --width 120 --height 40
  deskui zones --at 0,20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printZones(zonesWidth, zonesHeight, zonesAt)
		},
	}
	zonesCmd.Flags().IntVar(&zonesWidth, "width", 80, "Viewport width in cells")
	zonesCmd.Flags().IntVar(&zonesHeight, "height", 22, "Viewport height in cells")
	zonesCmd.Flags().StringVar(&zonesAt, "at", "", "Pointer position x,y to resolve")

	rootCmd.AddCommand(configCmd, keybindsCmd, zonesCmd)

	app.Version = version

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
