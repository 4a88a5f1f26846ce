package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per tick budget. The viewer does no periodic work yet;
// the tick only records when it fired and schedules the next one.
type TickMsg struct {
	// Time is the wall-clock time at which the tick fired.
	Time time.Time
}

// TickCmd returns a tea.Cmd that sends a single TickMsg after duration d.
// The Update handler re-issues it on every TickMsg to keep the tick going.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
