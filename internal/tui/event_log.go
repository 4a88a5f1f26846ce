package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wyclef-go/wyclef/internal/clef"
	"github.com/wyclef-go/wyclef/internal/nav"
)

// lineFlattener keeps every event on a single terminal row.
var lineFlattener = strings.NewReplacer("\r\n", " ⏎ ", "\n", " ⏎ ", "\r", " ⏎ ", "\t", "    ")

// sanitize makes text read from a log file safe to draw: line breaks and tabs
// are flattened, escape sequences are removed, and any control rune left over
// (BEL, BS, DEL, C1 codes, a dangling ESC) becomes U+FFFD.
func sanitize(s string) string {
	s = ansi.Strip(lineFlattener.Replace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

// ---------------------------------------------------------------------------
// EventLogModel
// ---------------------------------------------------------------------------

// EventLogModel is the bordered, scrollable list of events that fills the
// viewer. It renders one display line per event in its level colour and
// highlights the row under the cursor.
//
// The events themselves belong to the caller's clef.Log; the model keeps
// the rendered display lines and levels, a nav.Cursor over them, and the
// index of the first visible row.
type EventLogModel struct {
	theme  Theme
	title  string
	lines  []string
	levels []clef.Level
	cursor nav.Cursor
	offset int
	width  int
	height int
}

// NewEventLogModel builds the panel for events. title is drawn centred in
// the top border.
func NewEventLogModel(theme Theme, title string, events []clef.Event) EventLogModel {
	lines := make([]string, len(events))
	levels := make([]clef.Level, len(events))
	for i, e := range events {
		lines[i] = sanitize(clef.DisplayLine(e))
		levels[i] = e.Level()
	}
	return EventLogModel{
		theme:  theme,
		title:  sanitize(title),
		lines:  lines,
		levels: levels,
		cursor: nav.New(len(events)),
	}
}

// SetDimensions sets the outer size of the panel, borders included.
func (el *EventLogModel) SetDimensions(width, height int) {
	el.width = width
	el.height = height
	el.scrollToSelection()
}

// Cursor returns the current selection state.
func (el EventLogModel) Cursor() nav.Cursor {
	return el.cursor
}

// Offset returns the index of the first visible row.
func (el EventLogModel) Offset() int {
	return el.offset
}

// Next moves the selection forward by step and scrolls it into view.
func (el *EventLogModel) Next(step int) {
	el.cursor.Next(step)
	el.scrollToSelection()
}

// Previous moves the selection back by step and scrolls it into view.
func (el *EventLogModel) Previous(step int) {
	el.cursor.Previous(step)
	el.scrollToSelection()
}

// Unselect clears the selection. The scroll position is kept.
func (el *EventLogModel) Unselect() {
	el.cursor.Unselect()
}

// rows returns the number of event rows inside the border.
func (el EventLogModel) rows() int {
	return max(el.height-2, 0)
}

// innerWidth returns the number of columns inside the border.
func (el EventLogModel) innerWidth() int {
	return max(el.width-2, 0)
}

// scrollToSelection adjusts offset so the selected row is visible and the
// list never scrolls past its last row.
func (el *EventLogModel) scrollToSelection() {
	rows := el.rows()
	if rows == 0 {
		return
	}
	if i, ok := el.cursor.Selected(); ok {
		switch {
		case i < el.offset:
			el.offset = i
		case i >= el.offset+rows:
			el.offset = i - rows + 1
		}
	}
	el.offset = min(el.offset, max(len(el.lines)-rows, 0))
	el.offset = max(el.offset, 0)
}

// View renders the panel. It returns an empty string until dimensions large
// enough for a border and one row have been set.
func (el EventLogModel) View() string {
	width, rows := el.innerWidth(), el.rows()
	if width <= 0 || rows <= 0 {
		return ""
	}

	var body []string
	if len(el.lines) == 0 {
		body = append(body, el.theme.Placeholder.Render(ansi.Truncate("No events in file", width, "…")))
	}
	end := min(el.offset+rows, len(el.lines))
	for i := el.offset; i < end; i++ {
		line := ansi.Truncate(el.lines[i], width, "…")
		if el.cursor.IsSelected(i) {
			body = append(body, el.theme.Highlight.Width(width).Render(line))
			continue
		}
		body = append(body, el.theme.LevelStyle(el.levels[i]).Render(line))
	}

	box := el.theme.Panel.
		Width(width).
		Height(rows).
		Render(strings.Join(body, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, el.topBorder(width), box)
}

// topBorder draws the top edge of the rounded border with the title centred
// in it. lipgloss borders have no title slot, so this edge is drawn by hand
// and the Panel style draws the other three.
func (el EventLogModel) topBorder(width int) string {
	b := lipgloss.RoundedBorder()

	title := ""
	if el.title != "" && width > 2 {
		title = ansi.Truncate(" "+el.title+" ", width, "…")
	}
	tw := ansi.StringWidth(title)
	left := (width - tw) / 2
	right := width - tw - left

	return el.theme.PanelBorder.Render(b.TopLeft+strings.Repeat(b.Top, left)) +
		el.theme.PanelTitle.Render(title) +
		el.theme.PanelBorder.Render(strings.Repeat(b.Top, right)+b.TopRight)
}
