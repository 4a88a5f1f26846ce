package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wyclef-go/wyclef/internal/clef"
	"github.com/wyclef-go/wyclef/internal/logging"
)

// ErrTerminal is returned by Run when the terminal session fails.
var ErrTerminal = errors.New("terminal error")

const (
	// DefaultTickRate is the tick budget used when AppConfig.TickRate is zero.
	DefaultTickRate = 250 * time.Millisecond
	// DefaultPageStep is the Shift+Up/Down step used when AppConfig.PageStep
	// is zero.
	DefaultPageStep = 10

	// MinWidth and MinHeight are the smallest terminal the viewer draws in.
	MinWidth  = 20
	MinHeight = 5
)

// AppConfig holds configuration for the viewer.
type AppConfig struct {
	// Path is the log file path shown in the panel title.
	Path string
	// Events are the loaded events, in file order.
	Events []clef.Event
	// TickRate is the interval between ticks.
	TickRate time.Duration
	// PageStep is how far Shift+Up/Down move the selection.
	PageStep int
}

// App is the top-level Bubble Tea model for the viewer. It implements
// tea.Model (Init, Update, View).
type App struct {
	config   AppConfig
	keys     KeyMap
	theme    Theme
	list     EventLogModel
	status   StatusBarModel
	width    int
	height   int
	ready    bool // true after first WindowSizeMsg
	quitting bool
	lastTick time.Time
}

// NewApp constructs an App. Zero TickRate and PageStep fall back to
// DefaultTickRate and DefaultPageStep.
func NewApp(cfg AppConfig) App {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.PageStep < 1 {
		cfg.PageStep = DefaultPageStep
	}

	theme := DefaultTheme()
	keys := DefaultKeyMap(cfg.PageStep)
	return App{
		config: cfg,
		keys:   keys,
		theme:  theme,
		list:   NewEventLogModel(theme, "Reading File: "+cfg.Path, cfg.Events),
		status: NewStatusBarModel(theme, keys, len(cfg.Events)),
	}
}

// Init starts the tick. bubbletea v1.x sends a WindowSizeMsg on startup, so
// sizing needs no command.
func (a App) Init() tea.Cmd {
	return TickCmd(a.config.TickRate)
}

// Update dispatches incoming messages and returns the updated model plus any
// follow-up command.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.ready = true
		// The status bar takes the last row.
		a.list.SetDimensions(m.Width, max(m.Height-1, 0))
		a.status.SetWidth(m.Width)
		return a, nil

	case TickMsg:
		a.lastTick = m.Time
		return a, TickCmd(a.config.TickRate)

	case tea.KeyMsg:
		return a.handleKey(m)
	}

	return a, nil
}

// handleKey applies one key press. PageDown and PageUp are checked before
// Down and Up so shift variants never fall through to the single step.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit
	case key.Matches(msg, a.keys.Clear):
		a.list.Unselect()
	case key.Matches(msg, a.keys.PageDown):
		a.list.Next(a.config.PageStep)
	case key.Matches(msg, a.keys.Down):
		a.list.Next(1)
	case key.Matches(msg, a.keys.PageUp):
		a.list.Previous(a.config.PageStep)
	case key.Matches(msg, a.keys.Up):
		a.list.Previous(1)
	default:
		return a, nil
	}
	a.status.SetSelection(a.list.Cursor(), a.config.Events)
	return a, nil
}

// Selected returns the index of the selected event.
func (a App) Selected() (int, bool) {
	return a.list.Cursor().Selected()
}

// LastTick returns when the most recent tick fired.
func (a App) LastTick() time.Time {
	return a.lastTick
}

// View renders the complete UI as a string.
//
// Rendering logic:
//   - If quitting, return an empty string to clear the screen on exit.
//   - If not yet ready (no WindowSizeMsg received), show a loading message.
//   - If the terminal is below MinWidth x MinHeight, show a resize warning.
//   - Otherwise, render the event list followed by the status bar.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	if !a.ready {
		return "Loading…"
	}

	if a.width < MinWidth || a.height < MinHeight {
		return a.terminalTooSmallView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.list.View(), a.status.View())
}

// terminalTooSmallView returns a warning when the terminal is below the
// minimum supported dimensions.
func (a App) terminalTooSmallView() string {
	msg := fmt.Sprintf("Terminal too small. Please resize to at least %dx%d.", MinWidth, MinHeight)
	return a.theme.WarningText.Width(max(a.width, 1)).Render(msg)
}

// Run creates a tea.Program configured for full-screen rendering with
// cell-motion mouse support, runs it until the user quits or ctx is
// cancelled, and restores the terminal before returning. opts are appended
// to the defaults, which lets tests supply their own input and output.
//
// Use tea.WithMouseCellMotion (not WithMouseAllMotion) so that the user can
// still select and copy text from the terminal.
func Run(ctx context.Context, cfg AppConfig, opts ...tea.ProgramOption) error {
	logger := logging.New("tui")
	logger.Info("starting TUI", "path", cfg.Path, "events", len(cfg.Events))

	options := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts...)

	p := tea.NewProgram(NewApp(cfg), options...)

	_, err := p.Run()
	if err != nil {
		// Cancellation is a normal way to stop the viewer.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Debug("TUI stopped by context", "reason", ctx.Err())
			return nil
		}
		return fmt.Errorf("%w: running TUI: %w", ErrTerminal, err)
	}

	logger.Debug("TUI exited")
	return nil
}
