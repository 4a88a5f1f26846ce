package tui

import (
	"strings"
	"testing"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyclef-go/wyclef/internal/clef"
	"github.com/wyclef-go/wyclef/internal/nav"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// makeStatusBar is a convenience constructor that creates a StatusBarModel
// with the default theme and the given width. Width=0 is valid (no-op view).
func makeStatusBar(t *testing.T, width, total int) StatusBarModel {
	t.Helper()
	sb := NewStatusBarModel(DefaultTheme(), DefaultKeyMap(10), total)
	sb.SetWidth(width)
	return sb
}

// selectAt returns a cursor over n events with index i selected.
func selectAt(t *testing.T, n, i int) nav.Cursor {
	t.Helper()
	c := nav.New(n)
	require.True(t, c.Select(i))
	return c
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func TestStatusBarModel_View_ZeroWidth(t *testing.T) {
	t.Parallel()
	assert.Empty(t, makeStatusBar(t, 0, 3).View())
}

func TestStatusBarModel_View_CountWhenUnselected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int
		want  string
	}{
		{0, "0 events"},
		{1, "1 event"},
		{42, "42 events"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			view := makeStatusBar(t, 80, tt.total).View()
			assert.Contains(t, view, tt.want)
		})
	}
}

func TestStatusBarModel_View_ExactWidth(t *testing.T) {
	t.Parallel()
	for _, width := range []int{10, 40, 80, 200} {
		view := makeStatusBar(t, width, 12).View()
		assert.Equal(t, width, lipgloss.Width(view), "width %d", width)
		assert.NotContains(t, view, "\n", "width %d must render one line", width)
	}
}

func TestStatusBarModel_View_ShowsHintsWhenRoomy(t *testing.T) {
	t.Parallel()
	view := makeStatusBar(t, 120, 3).View()
	assert.Contains(t, view, "↓ next")
	assert.Contains(t, view, "q quit")
}

func TestStatusBarModel_SetSelection_Position(t *testing.T) {
	t.Parallel()
	events := makeEvents(t, 5)
	sb := makeStatusBar(t, 80, 5)

	sb.SetSelection(selectAt(t, 5, 2), events)
	assert.Contains(t, sb.View(), "Event 3/5")

	sb.SetSelection(nav.New(5), events)
	view := sb.View()
	assert.Contains(t, view, "5 events")
	assert.NotContains(t, view, "Event ")
}

func TestStatusBarModel_SetSelection_EventDetails(t *testing.T) {
	t.Parallel()
	e, err := clef.Parse(`{"@t":"t","@m":"boom","@i":"8a1f2b3c","@x":"System.Exception: boom\n   at Main()"}`)
	require.NoError(t, err)

	sb := makeStatusBar(t, 120, 1)
	sb.SetSelection(selectAt(t, 1, 0), []clef.Event{e})

	view := sb.View()
	assert.Contains(t, view, "id 8a1f2b3c")
	assert.Contains(t, view, "System.Exception: boom")
	assert.NotContains(t, view, "at Main()", "only the first exception line is shown")
}

func TestStatusBarModel_SetSelection_SanitizesEventDetails(t *testing.T) {
	t.Parallel()
	e, err := clef.Parse(`{"@mt":"m","@x":"\u001b[2J\u001b]0;pwned\u0007boom","@i":"id\u0008\u0008X"}`)
	require.NoError(t, err)

	sb := makeStatusBar(t, 120, 1)
	sb.SetSelection(selectAt(t, 1, 0), []clef.Event{e})

	assert.Equal(t, "boom", sb.exception)
	assert.Equal(t, -1, strings.IndexFunc(sb.eventID, unicode.IsControl), "event id %q", sb.eventID)
	assert.True(t, strings.HasPrefix(sb.eventID, "id"))
	assert.True(t, strings.HasSuffix(sb.eventID, "X"))

	view := sb.View()
	assert.NotContains(t, view, "\x1b]")
	assert.NotContains(t, view, "\x1b[2J")
	assert.NotContains(t, view, "\a")
	assert.NotContains(t, view, "\b")
}

func TestStatusBarModel_View_NarrowKeepsPosition(t *testing.T) {
	t.Parallel()
	e, err := clef.Parse(`{"@t":"t","@x":"` + strings.Repeat("E", 100) + `"}`)
	require.NoError(t, err)

	sb := makeStatusBar(t, 30, 1)
	sb.SetSelection(selectAt(t, 1, 0), []clef.Event{e})

	view := sb.View()
	assert.Equal(t, 30, lipgloss.Width(view))
	assert.Contains(t, view, "Event 1/1")
	assert.Contains(t, view, "…")
}

func TestFirstLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", firstLine(""))
	assert.Equal(t, "one", firstLine("one"))
	assert.Equal(t, "one", firstLine("  one  \ntwo"))
	assert.Equal(t, "one", firstLine("one\r\ntwo"))
}
