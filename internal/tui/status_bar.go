package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wyclef-go/wyclef/internal/clef"
	"github.com/wyclef-go/wyclef/internal/nav"
)

// StatusBarModel is the single line under the event list. It shows the
// selection position, details of the selected event that the list row
// cannot show (event id, first line of the exception), and key hints.
type StatusBarModel struct {
	theme Theme
	keys  KeyMap
	help  help.Model
	width int

	total     int
	selected  int
	hasSel    bool
	eventID   string
	exception string
}

// NewStatusBarModel creates a StatusBarModel for a list of total events.
func NewStatusBarModel(theme Theme, keys KeyMap, total int) StatusBarModel {
	h := help.New()
	h.ShortSeparator = " · "
	return StatusBarModel{
		theme: theme,
		keys:  keys,
		help:  h,
		total: total,
	}
}

// SetWidth updates the status bar width. Call it whenever the parent App
// processes a tea.WindowSizeMsg.
func (sb *StatusBarModel) SetWidth(width int) {
	sb.width = width
}

// SetSelection refreshes the position and event details from the cursor.
// events is the sequence the cursor moves over.
func (sb *StatusBarModel) SetSelection(c nav.Cursor, events []clef.Event) {
	sb.total = c.Len()
	sb.selected, sb.hasSel = c.Selected()
	sb.eventID, sb.exception = "", ""
	if sb.hasSel && sb.selected < len(events) {
		e := events[sb.selected]
		sb.eventID = sanitize(e.EventID())
		sb.exception = sanitize(firstLine(e.Exception()))
	}
}

// View renders the bar as one line of exactly width columns. Event details
// take priority over the right-aligned key hints; hints that no longer fit
// are cut off with an ellipsis by help.Model.
//
//	Event 3/120 | id 8a1f2b3c | System.Exception: boom      ↓ next · ↑ prev · ...
func (sb StatusBarModel) View() string {
	if sb.width <= 0 {
		return ""
	}

	// StatusBar has Padding(0,1): two columns go to padding.
	const barPadding = 2
	innerWidth := max(sb.width-barPadding, 0)

	sep := sb.theme.StatusSeparator.Render(" | ")

	left := sb.positionSegment()
	if sb.eventID != "" {
		left += sep + sb.theme.StatusKey.Render("id") + " " + sb.theme.StatusValue.Render(sb.eventID)
	}
	if sb.exception != "" {
		left += sep + sb.theme.StatusAlert.Render(sb.exception)
	}
	left = ansi.Truncate(left, innerWidth, "…")

	line := left
	if room := innerWidth - lipgloss.Width(left) - 1; room > 0 {
		h := sb.help
		h.Width = room
		hints := h.ShortHelpView(sb.keys.ShortHelp())
		gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(hints)
		line = left + strings.Repeat(" ", max(gap, 1)) + hints
	}

	return sb.theme.StatusBar.Width(sb.width).Render(line)
}

// positionSegment renders "Event i/n" when something is selected and
// "n events" otherwise.
func (sb StatusBarModel) positionSegment() string {
	if sb.hasSel {
		return sb.theme.StatusKey.Render("Event") + " " +
			sb.theme.StatusValue.Render(fmt.Sprintf("%d/%d", sb.selected+1, sb.total))
	}
	noun := "events"
	if sb.total == 1 {
		noun = "event"
	}
	return sb.theme.StatusValue.Render(fmt.Sprintf("%d %s", sb.total, noun))
}

// firstLine returns s up to its first line break, trimmed.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
