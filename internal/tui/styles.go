package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/marathon/internal/tui/theme"
)

// listWidth is the width of the option list column.
const listWidth = 34

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	// Option list
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	ListStyle         lipgloss.Style

	// Detail pane
	DetailStyle    lipgloss.Style
	LabelStyle     lipgloss.Style
	MovieStyle     lipgloss.Style
	TimeStyle      lipgloss.Style
	BreakStyle     lipgloss.Style
	MandatoryStyle lipgloss.Style

	// Footer
	HelpStyle    lipgloss.Style
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	if t == nil {
		t = theme.Load("mocha")
	}

	s := &Styles{
		colorBgSelection: theme.Color(t.BgSelection),
		colorFg:          theme.Color(t.Fg),
		colorFgMuted:     theme.Color(t.FgMuted),
		colorAccent:      theme.Color(t.Accent),
	}

	selectedFg := theme.Color(t.Fg)
	if t.IsLight() {
		selectedFg = theme.Color(t.Accent)
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)
	s.SubtitleStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.ItemStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		PaddingLeft(1)
	s.SelectedItemStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(selectedFg).
		Background(s.colorBgSelection).
		PaddingLeft(1)
	s.ListStyle = lipgloss.NewStyle().
		Width(listWidth).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderRight(true).
		BorderForeground(s.colorAccent)

	s.DetailStyle = lipgloss.NewStyle().
		PaddingLeft(2)
	s.LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)
	s.MovieStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Color(t.Movie))
	s.TimeStyle = lipgloss.NewStyle().
		Foreground(s.colorFg)
	s.BreakStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Break)).
		Faint(true)
	s.MandatoryStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Mandatory))

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Mandatory))
	s.WarningStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Warning))

	return s
}
