package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/openlot/driveboard/internal/appointment"
)

// Theme holds the colors for a TUI theme.
type Theme struct {
	Name        string
	Bg          string
	BgHighlight string
	Fg          string
	FgMuted     string
	Accent      string
	Scheduled   string
	Confirmed   string
	Rescheduled string
	Completed   string
	Cancelled   string
	Warning     string
}

var themes = map[string]Theme{
	"dark": {
		Name:        "dark",
		Bg:          "#1e1e2e",
		BgHighlight: "#313244",
		Fg:          "#cdd6f4",
		FgMuted:     "#6c7086",
		Accent:      "#89b4fa",
		Scheduled:   "#89dceb",
		Confirmed:   "#a6e3a1",
		Rescheduled: "#f9e2af",
		Completed:   "#6c7086",
		Cancelled:   "#f38ba8",
		Warning:     "#fab387",
	},
	"light": {
		Name:        "light",
		Bg:          "#eff1f5",
		BgHighlight: "#ccd0da",
		Fg:          "#4c4f69",
		FgMuted:     "#9ca0b0",
		Accent:      "#1e66f5",
		Scheduled:   "#179299",
		Confirmed:   "#40a02b",
		Rescheduled: "#df8e1d",
		Completed:   "#9ca0b0",
		Cancelled:   "#d20f39",
		Warning:     "#fe640b",
	},
}

// LoadTheme returns the named theme, falling back to dark.
func LoadTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["dark"]
}

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	Title      lipgloss.Style
	TabActive  lipgloss.Style
	Tab        lipgloss.Style
	DayHeader  lipgloss.Style
	TodayHead  lipgloss.Style
	TimeColumn lipgloss.Style
	EmptyCell  lipgloss.Style
	Selected   lipgloss.Style
	Excluded   lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	Detail     lipgloss.Style
	Prompt     lipgloss.Style

	blockStyles map[appointment.Status]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) *Styles {
	s := &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Bg)).Background(lipgloss.Color(t.Accent)).Padding(0, 1),
		Tab:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).Padding(0, 1),
		DayHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Fg)),
		TodayHead:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)).Underline(true),
		TimeColumn: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		EmptyCell:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		Selected:   lipgloss.NewStyle().Reverse(true).Bold(true),
		Excluded:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Fg)),
		StatusErr:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Cancelled)),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		Detail:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t.Accent)).Padding(0, 1),
		Prompt:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t.Warning)).Padding(0, 1),
	}

	s.blockStyles = map[appointment.Status]lipgloss.Style{
		appointment.StatusScheduled:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Bg)).Background(lipgloss.Color(t.Scheduled)),
		appointment.StatusConfirmed:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Bg)).Background(lipgloss.Color(t.Confirmed)),
		appointment.StatusRescheduled: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Bg)).Background(lipgloss.Color(t.Rescheduled)),
		appointment.StatusCompleted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Bg)).Background(lipgloss.Color(t.Completed)),
		appointment.StatusCancelled:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Bg)).Background(lipgloss.Color(t.Cancelled)).Strikethrough(true),
	}

	return s
}

// Block returns the style for an appointment block with the given status.
func (s *Styles) Block(status appointment.Status) lipgloss.Style {
	if st, ok := s.blockStyles[status]; ok {
		return st
	}
	return s.blockStyles[appointment.StatusScheduled]
}
