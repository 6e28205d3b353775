package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contractdesk/internal/contracts"
)

// renderCard renders one contract as three lines:
//
//	Title                       [Status]
//	No. 42/2023 · 01.02.2023
//	1 250 000 ₽
func (m Model) renderCard(c contracts.Contract, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	titleStyle := styles.Text.Bold(true)
	metaStyle := styles.MutedText
	amountStyle := styles.InfoText
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle = sel.Bold(true)
		metaStyle = sel
		amountStyle = sel
	}

	status := contracts.StatusOf(c, m.keyword)
	badge := styles.StatusStyle(status).Render(status.Label())
	titleWidth := max(width-lipgloss.Width(badge)-2, 8)
	title := bg.Render(truncate(c.Title(), titleWidth), titleStyle)
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(badge)-1, 1)
	first := bg.Space() + title + bg.Spaces(gap) + badge

	meta := []string{}
	if n := strings.TrimSpace(c.Number); n != "" {
		meta = append(meta, fmt.Sprintf("No. %s", n))
	}
	meta = append(meta, m.format.Date(c.ContractDate))
	second := bg.Space() + bg.Render(truncate(strings.Join(meta, " · "), width-2), metaStyle)

	third := bg.Space() + bg.Render(truncate(m.format.Amount(c.PlannedAmount), width-2), amountStyle)

	return strings.Join([]string{
		bg.FillLine(first, width),
		bg.FillLine(second, width),
		bg.FillLine(third, width),
	}, "\n")
}
