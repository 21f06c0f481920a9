package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/app"
	"github.com/Gaurav-Gosain/deskui/internal/config"
	"github.com/Gaurav-Gosain/deskui/internal/input"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// overrides collects the command line flags.
func overrides() config.Overrides {
	o := config.Overrides{
		ThemeName:       themeName,
		Style:           styleName,
		InteractionMode: interactionMode,
		DragMode:        dragMode,
		StartMenuMount:  startMenuMount,
		BorderStyle:     borderStyle,
		ASCIIOnly:       asciiOnly,
		NoDocking:       noDocking,
		HideClock:       hideClock,
		LogLevel:        logLevel,
	}
	if debugMode {
		o.LogLevel = "debug"
	}
	return o
}

// loadConfig reads --config or the XDG config, falling back to the
// defaults when the file cannot be used, and applies the flags.
func loadConfig(logger *log.Logger) *config.UserConfig {
	var (
		cfg *config.UserConfig
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadConfigFile(configFile)
	} else {
		cfg, err = config.LoadUserConfig()
	}
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	for _, w := range cfg.Warnings() {
		logger.Warn("config", "issue", w.String())
	}
	return config.ApplyOverrides(overrides(), cfg, logger)
}

// openLogFile opens path for appending. An empty path discards.
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, nil
	}
	// #nosec G304 - the log path comes from the user
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("deskui needs an interactive terminal")
	}

	startup := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "deskui"})
	cfg := loadConfig(startup)

	path := logFile
	if path == "" {
		path = cfg.Logging.File
	}
	out, err := openLogFile(path)
	if err != nil {
		return err
	}
	opts := app.Options{Config: cfg}
	if out != nil {
		defer func() {
			if closeErr := out.Close(); closeErr != nil {
				startup.Warn("failed to close log file", "err", closeErr)
			}
		}()
		opts.LogOutput = out
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Width, opts.Height = w, h
	}

	app.SetInputHandler(input.HandleInput)

	desktop, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create desktop: %w", err)
	}
	desktop.OpenNotes()

	p := tea.NewProgram(
		desktop,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(input.Filter),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Desktop); ok {
		final.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
