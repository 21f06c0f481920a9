package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskui/internal/config"
)

// TickerMsg drives the frame loop. It is exported for the input package.
type TickerMsg time.Time

// InputHandler handles input messages. It lets Update delegate to the
// input package without an import cycle.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler. It must be called before
// the program starts.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick loop.
func (d *Desktop) Init() tea.Cmd {
	return TickCmd()
}

// TickCmd ticks at the normal frame rate.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd ticks slowly while nothing is moving; it keeps the clock
// current.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

func (d *Desktop) nextTick() tea.Cmd {
	if d.Interacting() || d.Frames.Pending() > 0 {
		return TickCmd()
	}
	return IdleTickCmd()
}

// Update implements tea.Model.
func (d *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		d.Frames.Flush()
		if d.Quitting {
			d.Cleanup()
			return d, tea.Quit
		}
		return d, d.nextTick()

	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil
	}

	if inputHandler == nil {
		return d, nil
	}
	model, cmd := inputHandler(msg, d)
	if d.Quitting {
		d.Cleanup()
		return model, tea.Quit
	}
	return model, cmd
}
