package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Content panels
	FocusBg    string // Focused panel background

	// Selection colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string // Default border
	BorderFocus string // Focus border

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Order status colors
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for the given order status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// Theme definitions

var themes = map[string]Theme{
	"Ink":       inkTheme(),
	"Parchment": parchmentTheme(),
}

var themeOrder = []string{"Ink", "Parchment"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return inkTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func inkTheme() Theme {
	return Theme{
		Name: "Ink",

		Background: "#14161f",
		Surface:    "#1b1e2b",
		SurfaceAlt: "#23263a",
		FocusBg:    "#2a2e47",

		SelectionBg:   "#353a5c",
		SelectionText: "#d4d6e4",

		Border:      "#3e436b",
		BorderFocus: "#82aaff",

		Text:    "#d4d6e4",
		Muted:   "#7a7f9c",
		Faint:   "#595e7a",
		Accent:  "#82aaff",
		Success: "#a3d9a5",
		Warning: "#e6c27a",
		Danger:  "#e06c8a",
		Info:    "#89ddff",

		StatusColors: map[string]string{
			"pending":    "#e6c27a",
			"processing": "#82aaff",
			"sent":       "#89ddff",
			"completed":  "#a3d9a5",
		},
	}
}

func parchmentTheme() Theme {
	return Theme{
		Name: "Parchment",

		Background: "#f3ead8",
		Surface:    "#e9dec6",
		SurfaceAlt: "#efe5d0",
		FocusBg:    "#e3d5b8",

		SelectionBg:   "#d8c7a1",
		SelectionText: "#3a3226",

		Border:      "#b8a77f",
		BorderFocus: "#8a5a2b",

		Text:    "#3a3226",
		Muted:   "#7d7158",
		Faint:   "#9c906f",
		Accent:  "#8a5a2b",
		Success: "#4f7a4a",
		Warning: "#a1762a",
		Danger:  "#a4403f",
		Info:    "#3f6d8a",

		StatusColors: map[string]string{
			"pending":    "#a1762a",
			"processing": "#8a5a2b",
			"sent":       "#3f6d8a",
			"completed":  "#4f7a4a",
		},
	}
}
