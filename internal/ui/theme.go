package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. All colors are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string // header and command bar
	SurfaceAlt string // event log title
	Border     string

	Text, Muted, Faint                string
	Accent, Success, Warning, Danger string

	// ViewColors tag event log lines by the view that raised them.
	ViewColors map[string]string
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	SurfaceAlt lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style
	Column lipgloss.Style

	viewColors map[string]string
	muted      string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		SurfaceAlt: fg(t.Text).Background(lipgloss.Color(t.SurfaceAlt)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),
		Column: fg(t.Text).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		viewColors: t.ViewColors,
		muted:      t.Muted,
	}
}

// ViewStyle returns the style for event log lines raised by view.
func (s Styles) ViewStyle(view string) lipgloss.Style {
	color, ok := s.viewColors[view]
	if !ok {
		color = s.muted
	}
	return fg(color).Bold(true)
}

// WithBackground returns a copy whose text styles carry bgColor explicitly,
// so segments rendered next to each other keep the bar color.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", Border: "#39506d",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent: "#719cd6", Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d",
		ViewColors: map[string]string{"source": "#719cd6", "filtered": "#9d79d6", "rows": "#63cdcf"},
	},
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", Border: "#54546D",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent: "#7E9CD8", Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876",
		ViewColors: map[string]string{"source": "#7E9CD8", "filtered": "#957FB8", "rows": "#7FB4CA"},
	},
	// Tailwind slate and sky
	"Slate": {
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", Border: "#334155",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b",
		Accent: "#38bdf8", Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444",
		ViewColors: map[string]string{"source": "#38bdf8", "filtered": "#06b6d4", "rows": "#14b8a6"},
	},
}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return themeOrder
}
