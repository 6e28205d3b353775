package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contractdesk/internal/state"
)

// renderAlert renders the pending alert as a blocking dialog.
func (m Model) renderAlert(alert state.Alert) string {
	styles := m.theme.Styles()

	title := styles.InfoText.Bold(true).Render("Notice")
	border := m.theme.Info
	if alert.Kind == state.AlertError {
		title = styles.DangerText.Render("Error")
		border = m.theme.Danger
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(alert.Text))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Enter: OK"))

	box := modalBox(m.theme, min(60, max(m.width-4, 30))).
		BorderForeground(lipgloss.Color(border)).
		Render(b.String())
	return placeCenter(m.theme, m.width, m.height, box)
}
