package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contractdesk/internal/contracts"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Unfocused panes
	FocusBg    string // Focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors maps a contracts.Status to its badge color.
	StatusColors map[contracts.Status]string

	// Glamour is the standard glamour style used for the details pane.
	Glamour string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

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

	statusColors map[contracts.Status]string
	background   string
	muted        string
}

// StatusStyle returns a badge style for the given status.
func (s Styles) StatusStyle(status contracts.Status) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with every text style painted on
// bgColor, so adjacent segments do not leave gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
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

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24",
		Surface:    "#192330",
		SurfaceAlt: "#212e3f",
		FocusBg:    "#29394f",

		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",

		Border:      "#39506d",
		BorderFocus: "#719cd6",

		Text:    "#cdcecf",
		Muted:   "#738091",
		Faint:   "#71839b",
		Accent:  "#719cd6",
		Success: "#81b29a",
		Warning: "#dbc074",
		Danger:  "#c94f6d",
		Info:    "#63cdcf",

		StatusColors: map[contracts.Status]string{
			contracts.StatusActive:    "#719cd6",
			contracts.StatusCompleted: "#81b29a",
		},
		Glamour: "dark",
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D",
		Surface:    "#1F1F28",
		SurfaceAlt: "#2A2A37",
		FocusBg:    "#363646",

		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",

		Border:      "#54546D",
		BorderFocus: "#7E9CD8",

		Text:    "#DCD7BA",
		Muted:   "#C8C093",
		Faint:   "#727169",
		Accent:  "#7E9CD8",
		Success: "#98BB6C",
		Warning: "#E6C384",
		Danger:  "#E46876",
		Info:    "#7FB4CA",

		StatusColors: map[contracts.Status]string{
			contracts.StatusActive:    "#7FB4CA",
			contracts.StatusCompleted: "#98BB6C",
		},
		Glamour: "dracula",
	}
}

func slateTheme() Theme {
	// Tailwind Slate/Sky: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617",
		Surface:    "#0f172a",
		SurfaceAlt: "#1e293b",
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",

		Border:      "#334155",
		BorderFocus: "#38bdf8",

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",

		StatusColors: map[contracts.Status]string{
			contracts.StatusActive:    "#0ea5e9",
			contracts.StatusCompleted: "#16a34a",
		},
		Glamour: "tokyo-night",
	}
}
