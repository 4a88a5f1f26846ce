package tui

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyclef-go/wyclef/internal/clef"
)

// Compile-time verification that App implements tea.Model.
var _ tea.Model = App{}

// applyMsg applies a single message to App.Update and returns the updated App
// and any command. It panics if Update returns a non-App model, which would
// indicate a bug in the implementation.
func applyMsg(a App, msg tea.Msg) (App, tea.Cmd) {
	model, cmd := a.Update(msg)
	updated, ok := model.(App)
	if !ok {
		panic("Update returned a non-App tea.Model")
	}
	return updated, cmd
}

// applyMsgs applies a sequence of messages in order and returns the final App.
func applyMsgs(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		a, _ = applyMsg(a, msg)
	}
	return a
}

// makeReadyApp returns an App that has received a WindowSizeMsg with the given
// dimensions, placing it in the "ready" state.
func makeReadyApp(t *testing.T, cfg AppConfig, width, height int) App {
	t.Helper()
	a := NewApp(cfg)
	a, _ = applyMsg(a, tea.WindowSizeMsg{Width: width, Height: height})
	require.True(t, a.ready, "makeReadyApp: app should be ready after WindowSizeMsg")
	return a
}

// makeEvents returns n Information events whose messages are "event 0",
// "event 1", ...
func makeEvents(t *testing.T, n int) []clef.Event {
	t.Helper()
	events := make([]clef.Event, n)
	for i := range events {
		e, err := clef.Parse(`{"@t":"2024-01-01T00:00:00Z","@mt":"event {N}","N":` + strconv.Itoa(i) + `}`)
		require.NoError(t, err)
		events[i] = e
	}
	return events
}

var (
	keyDown      = tea.KeyMsg{Type: tea.KeyDown}
	keyUp        = tea.KeyMsg{Type: tea.KeyUp}
	keyShiftDown = tea.KeyMsg{Type: tea.KeyShiftDown}
	keyShiftUp   = tea.KeyMsg{Type: tea.KeyShiftUp}
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyQ         = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	keyCtrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// ---- NewApp ----

func TestNewApp_Defaults(t *testing.T) {
	t.Parallel()
	a := NewApp(AppConfig{Path: "app.clef"})

	assert.Equal(t, DefaultTickRate, a.config.TickRate)
	assert.Equal(t, DefaultPageStep, a.config.PageStep)
	assert.False(t, a.ready)
	assert.False(t, a.quitting)
	_, ok := a.Selected()
	assert.False(t, ok, "nothing is selected on start")
}

func TestNewApp_KeepsExplicitSettings(t *testing.T) {
	t.Parallel()
	a := NewApp(AppConfig{TickRate: time.Second, PageStep: 3})
	assert.Equal(t, time.Second, a.config.TickRate)
	assert.Equal(t, 3, a.config.PageStep)
}

func TestAppConfig_ZeroValue(t *testing.T) {
	t.Parallel()
	// A zero-value AppConfig must not cause NewApp or View to panic.
	assert.NotPanics(t, func() {
		a := NewApp(AppConfig{})
		_ = a.View()
		a, _ = applyMsg(a, tea.WindowSizeMsg{Width: 80, Height: 24})
		a, _ = applyMsg(a, keyDown)
		_ = a.View()
	})
}

// ---- Init / tick ----

func TestApp_Init_ReturnsTickCmd(t *testing.T) {
	t.Parallel()
	a := NewApp(AppConfig{TickRate: time.Millisecond})
	cmd := a.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(TickMsg)
	assert.True(t, ok, "Init command must produce a TickMsg, got %T", msg)
}

func TestApp_Update_TickMsg_RecordsAndReschedules(t *testing.T) {
	t.Parallel()
	a := NewApp(AppConfig{})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	a, cmd := applyMsg(a, TickMsg{Time: now})

	assert.Equal(t, now, a.LastTick())
	assert.NotNil(t, cmd, "every tick must schedule the next one")
}

// ---- WindowSizeMsg ----

func TestApp_Update_WindowSizeMsg_SetsReadyAndDimensions(t *testing.T) {
	t.Parallel()
	a, cmd := applyMsg(NewApp(AppConfig{}), tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, a.ready)
	assert.Equal(t, 100, a.width)
	assert.Equal(t, 30, a.height)
	assert.Equal(t, 100, a.list.width)
	assert.Equal(t, 29, a.list.height, "the list leaves one row for the status bar")
}

func TestApp_Update_MultipleWindowSizeMsgs_TracksLatest(t *testing.T) {
	t.Parallel()
	a := applyMsgs(t, NewApp(AppConfig{}),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.WindowSizeMsg{Width: 120, Height: 40},
	)
	assert.Equal(t, 120, a.width)
	assert.Equal(t, 40, a.height)
}

// ---- Key dispatch ----

func TestApp_Update_NavigationKeys_TableDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		keys    []tea.Msg
		want    int
		wantSel bool
	}{
		{name: "down from unselected selects first", n: 5, keys: []tea.Msg{keyDown}, want: 0, wantSel: true},
		{name: "up from unselected selects first", n: 5, keys: []tea.Msg{keyUp}, want: 0, wantSel: true},
		{name: "down steps by one", n: 5, keys: []tea.Msg{keyDown, keyDown, keyDown}, want: 2, wantSel: true},
		{name: "down wraps from last to first", n: 3, keys: []tea.Msg{keyDown, keyDown, keyDown, keyDown}, want: 0, wantSel: true},
		{name: "up wraps from first to last", n: 3, keys: []tea.Msg{keyDown, keyUp}, want: 2, wantSel: true},
		{name: "shift+down steps by page", n: 30, keys: []tea.Msg{keyDown, keyShiftDown}, want: 10, wantSel: true},
		{name: "shift+down clamps to last", n: 5, keys: []tea.Msg{keyDown, keyShiftDown}, want: 4, wantSel: true},
		{name: "shift+down at last wraps", n: 5, keys: []tea.Msg{keyDown, keyShiftDown, keyShiftDown}, want: 0, wantSel: true},
		{name: "shift+up clamps to first", n: 30, keys: []tea.Msg{keyDown, keyDown, keyDown, keyShiftUp}, want: 0, wantSel: true},
		{name: "shift+up at first wraps", n: 30, keys: []tea.Msg{keyDown, keyShiftUp}, want: 29, wantSel: true},
		{name: "enter clears selection", n: 5, keys: []tea.Msg{keyDown, keyDown, keyEnter}, wantSel: false},
		{name: "down after enter restarts at first", n: 5, keys: []tea.Msg{keyDown, keyDown, keyEnter, keyDown}, want: 0, wantSel: true},
		{name: "keys on empty log do nothing", n: 0, keys: []tea.Msg{keyDown, keyShiftUp, keyEnter}, wantSel: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := makeReadyApp(t, AppConfig{Events: makeEvents(t, tt.n)}, 80, 24)
			a = applyMsgs(t, a, tt.keys...)

			got, ok := a.Selected()
			require.Equal(t, tt.wantSel, ok)
			if tt.wantSel {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestApp_Update_PageStepFromConfig(t *testing.T) {
	t.Parallel()
	a := makeReadyApp(t, AppConfig{Events: makeEvents(t, 20), PageStep: 4}, 80, 24)
	a = applyMsgs(t, a, keyDown, keyShiftDown, keyShiftDown)

	got, ok := a.Selected()
	require.True(t, ok)
	assert.Equal(t, 8, got)
}

func TestApp_Update_QuitKeys_TableDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: keyQ},
		{name: "ctrl+c", msg: keyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := makeReadyApp(t, AppConfig{Events: makeEvents(t, 3)}, 80, 24)
			a, cmd := applyMsg(a, tt.msg)

			assert.True(t, a.quitting)
			require.NotNil(t, cmd)
			_, isQuit := cmd().(tea.QuitMsg)
			assert.True(t, isQuit, "quit key must produce tea.QuitMsg")
		})
	}
}

func TestApp_Update_OtherKeys_Ignored(t *testing.T) {
	t.Parallel()
	a := makeReadyApp(t, AppConfig{Events: makeEvents(t, 3)}, 80, 24)
	a, _ = applyMsg(a, keyDown)

	others := []tea.Msg{
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Q")},
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyPgDown},
	}
	for _, msg := range others {
		var cmd tea.Cmd
		a, cmd = applyMsg(a, msg)
		assert.Nil(t, cmd, "key %v must not produce a command", msg)
	}

	got, ok := a.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, got)
	assert.False(t, a.quitting)
}

func TestApp_Update_UnknownMsg_NoOp(t *testing.T) {
	t.Parallel()
	type customMsg struct{}
	a := makeReadyApp(t, AppConfig{}, 80, 24)
	updated, cmd := applyMsg(a, customMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, a.width, updated.width)
	assert.False(t, updated.quitting)
}

// ---- View ----

func TestApp_View_NotReady_ReturnsLoadingMessage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Loading…", NewApp(AppConfig{}).View())
}

func TestApp_View_Quitting_ReturnsEmpty(t *testing.T) {
	t.Parallel()
	a := makeReadyApp(t, AppConfig{}, 80, 24)
	a, _ = applyMsg(a, keyQ)
	assert.Empty(t, a.View())
}

func TestApp_View_TooSmall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
	}{
		{"too narrow", MinWidth - 1, 24},
		{"too short", 80, MinHeight - 1},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := makeReadyApp(t, AppConfig{Path: "x.clef"}, tt.width, tt.height)
			view := a.View()
			assert.Contains(t, strings.Join(strings.Fields(view), " "), "Terminal too small")
			assert.NotContains(t, view, "Reading File")
		})
	}
}

func TestApp_View_ContainsTitleAndEvents(t *testing.T) {
	t.Parallel()
	a := makeReadyApp(t, AppConfig{Path: "/var/log/app.clef", Events: makeEvents(t, 3)}, 80, 12)
	view := a.View()

	assert.Contains(t, view, "Reading File: /var/log/app.clef")
	assert.Contains(t, view, "2024-01-01T00:00:00Z: [INFORMATION] event 0")
	assert.Contains(t, view, "event 2")
	assert.Contains(t, view, "3 events")

	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 12, "view must fill the terminal height")
}

func TestApp_View_ShowsSelectedPosition(t *testing.T) {
	t.Parallel()
	a := makeReadyApp(t, AppConfig{Path: "app.clef", Events: makeEvents(t, 5)}, 80, 12)
	a = applyMsgs(t, a, keyDown, keyDown)

	view := a.View()
	assert.Contains(t, view, "Event 2/5")
	assert.Contains(t, view, "event 1")
}

func TestApp_View_LogTextCannotControlTerminal(t *testing.T) {
	t.Parallel()
	hostile, err := clef.Parse(`{"@mt":"m","@x":"\u001b[2J\u001b]0;pwned\u0007boom","@i":"id\u0008\u0008X"}`)
	require.NoError(t, err)
	bell, err := clef.Parse(`{"@mt":"a\u0007b\u001b[31mred"}`)
	require.NoError(t, err)

	a := makeReadyApp(t, AppConfig{Path: "app.clef", Events: []clef.Event{hostile, bell}}, 100, 10)
	a = applyMsgs(t, a, keyDown)

	view := a.View()
	assert.Contains(t, view, "boom")
	assert.NotContains(t, view, "\x1b]")
	assert.NotContains(t, view, "\x1b[2J")
	assert.NotContains(t, view, "\a")
	assert.NotContains(t, view, "\b")
}

func TestApp_View_SelectionScrollsIntoView(t *testing.T) {
	t.Parallel()
	// 8 rows: 1 status, 2 border, 5 event rows.
	a := makeReadyApp(t, AppConfig{Events: makeEvents(t, 50)}, 80, 8)
	a = applyMsgs(t, a, keyDown, keyShiftDown, keyShiftDown)

	view := a.View()
	assert.Contains(t, view, "event 20")
	assert.NotContains(t, view, "event 15")
	assert.Equal(t, 16, a.list.Offset())
}

// ---- Run ----

func TestRun_QuitsOnQ(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Run(context.Background(), AppConfig{Path: "app.clef", Events: makeEvents(t, 2)},
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(&out),
	)
	require.NoError(t, err)
}

func TestRun_CancelledContextIsNotAnError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, AppConfig{Path: "app.clef"},
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(&out),
	)
	assert.NoError(t, err)
}
