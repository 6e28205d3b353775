package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{m.keys.FocusNext, m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom, m.keys.HalfPageDown}},
		{"Contracts", []key.Binding{m.keys.Open, m.keys.New, m.keys.Edit, m.keys.Copy}},
		{"Filters", []key.Binding{m.keys.ToggleFilters, m.keys.Confirm, m.keys.ResetFilters}},
		{"Tabs", []key.Binding{m.keys.NextTab, m.keys.PrevTab, m.keys.CloseTab, m.keys.TabsList}},
		{"Editor", []key.Binding{m.keys.Submit, m.keys.FocusNext, m.keys.Escape}},
		{"General", []key.Binding{m.keys.CycleTheme, m.keys.Help, m.keys.Quit}},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return renderOverlay(m.theme, m.width, m.height, 44, b.String())
}

func modalBox(theme Theme, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(width)
}

func placeCenter(theme Theme, width, height int, content string) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
