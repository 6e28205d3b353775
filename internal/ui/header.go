package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contractdesk/internal/contracts"
)

// renderHeader renders the status bar: logo, counts and connection info.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("contractdesk", styles.Logo)}

	if m.session.Loading() {
		parts = append(parts, bg.Render(m.spinner.View()+" Loading...", styles.WarningText.Bold(true)))
	} else {
		list := m.session.Contracts()
		active, completed := 0, 0
		for _, c := range list {
			if contracts.StatusOf(c, m.keyword) == contracts.StatusCompleted {
				completed++
			} else {
				active++
			}
		}
		parts = append(parts,
			bg.Render("Total:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", len(list)), styles.Text),
			bg.Render("Active:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", active), styles.InfoText),
			bg.Render("Completed:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", completed), styles.SuccessText),
		)
		if !m.session.Criteria().IsZero() {
			parts = append(parts, bg.Render("Filtered", styles.WarningText))
		}
	}

	if m.status != "" {
		parts = append(parts, bg.Render(truncate(m.status, 48), styles.AccentText))
	}

	if !compact && m.apiURL != "" {
		parts = append(parts, bg.Render(truncate(m.apiURL, 40), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Space() + bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.focus {
	case paneFilters:
		commands = []cmd{
			{"enter", "Apply"},
			{"ctrl+r", "Reset"},
			{"tab", "Next field"},
			{"esc", "Back to list"},
		}
	case paneDetails:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"e", "Edit"},
			{"y", "Copy No."},
			{"[/]", "Tabs"},
			{"x", "Close tab"},
			{"tab", "Focus"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"n", "New"},
			{"e", "Edit"},
			{"f", "Filters"},
			{"t", "Tabs"},
			{"tab", "Focus"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(c.desc, styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Space() + bg.Join(segments, "  "))
}
