package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wyclef-go/wyclef/internal/clef"
)

// ---------------------------------------------------------------------------
// Color Palette
// ---------------------------------------------------------------------------

// Level colours use the 16 ANSI colours so they follow the user's terminal
// palette.
var (
	ColorVerbose     = lipgloss.Color("7") // white
	ColorDebug       = lipgloss.Color("4") // blue
	ColorInformation = lipgloss.Color("2") // green
	ColorWarning     = lipgloss.Color("3") // yellow
	ColorError       = lipgloss.Color("1") // red
	ColorFatal       = lipgloss.Color("5") // magenta
)

// ColorBorder is the panel border and title colour.
var ColorBorder = lipgloss.Color("6") // cyan

// ColorHighlightFg and ColorHighlightBg style the selected row.
var (
	ColorHighlightFg = lipgloss.Color("0") // black
	ColorHighlightBg = lipgloss.Color("4") // blue
)

// ColorMuted is a subdued foreground color for secondary text.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ---------------------------------------------------------------------------
// Theme
// ---------------------------------------------------------------------------

// Theme holds all lipgloss styles used by the viewer. Width and Height are
// not set on any style; they are applied at render time.
type Theme struct {
	// Event list panel
	Panel       lipgloss.Style // left, right and bottom border
	PanelBorder lipgloss.Style // colour for the hand-drawn top border
	PanelTitle  lipgloss.Style
	Highlight   lipgloss.Style
	Placeholder lipgloss.Style

	// Per-level row styles
	Verbose     lipgloss.Style
	Debug       lipgloss.Style
	Information lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Fatal       lipgloss.Style

	// Status bar
	StatusBar       lipgloss.Style
	StatusKey       lipgloss.Style
	StatusValue     lipgloss.Style
	StatusSeparator lipgloss.Style
	StatusAlert     lipgloss.Style

	// General
	WarningText lipgloss.Style
}

// DefaultTheme returns the viewer theme.
func DefaultTheme() Theme {
	return Theme{
		// --- Event list ---
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, true, true, true).
			BorderForeground(ColorBorder),

		PanelBorder: lipgloss.NewStyle().
			Foreground(ColorBorder),

		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBorder),

		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlightFg).
			Background(ColorHighlightBg),

		Placeholder: lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted),

		// --- Levels ---
		Verbose:     lipgloss.NewStyle().Foreground(ColorVerbose),
		Debug:       lipgloss.NewStyle().Foreground(ColorDebug),
		Information: lipgloss.NewStyle().Foreground(ColorInformation),
		Warning:     lipgloss.NewStyle().Foreground(ColorWarning),
		Error:       lipgloss.NewStyle().Foreground(ColorError),
		Fatal:       lipgloss.NewStyle().Bold(true).Foreground(ColorFatal),

		// --- Status bar ---
		StatusBar: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1),

		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBorder),

		StatusValue: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}),

		StatusSeparator: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StatusAlert: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),

		// --- General ---
		WarningText: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning),
	}
}

// LevelStyle returns the row style for level.
func (t Theme) LevelStyle(level clef.Level) lipgloss.Style {
	switch level {
	case clef.Verbose:
		return t.Verbose
	case clef.Debug:
		return t.Debug
	case clef.Warning:
		return t.Warning
	case clef.Error:
		return t.Error
	case clef.Fatal:
		return t.Fatal
	default: // clef.Information
		return t.Information
	}
}

// StyleLine renders line in the colour of level. It lets a Theme colour the
// output of clef.Log.Print.
func (t Theme) StyleLine(level clef.Level, line string) string {
	return t.LevelStyle(level).Render(line)
}
