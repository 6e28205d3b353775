package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contractdesk/internal/contracts"
)

// renderSidebar renders the filtered contract list as a scrolling column of
// cards with the selection kept in view.
func (m Model) renderSidebar(width, height int) string {
	focused := m.focus == paneList
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := width - 2
	rows := height - 2

	list := m.session.Filtered()
	title := m.sidebarTitle(len(list))

	var content string
	switch {
	case m.session.Loading():
		content = styles.WarningText.Render(m.spinner.View() + " Loading contracts...")
	case len(list) == 0 && len(m.session.Contracts()) == 0:
		content = styles.MutedText.Render("No contracts yet · n creates one")
	case len(list) == 0:
		content = styles.MutedText.Render("No contracts match the filters")
	default:
		content = m.renderCards(list, inner, rows, bgColor)
	}

	return m.renderTitledBox(title, content, width, height, focused)
}

func (m Model) sidebarTitle(shown int) string {
	total := len(m.session.Contracts())
	if m.session.Loading() {
		return "Contracts"
	}
	if shown == total {
		return fmt.Sprintf("Contracts (%d)", total)
	}
	return fmt.Sprintf("Contracts (%d of %d)", shown, total)
}

func (m Model) renderCards(list []contracts.Contract, width, rows int, bgColor string) string {
	perPage := max(rows/cardRows, 1)
	start := 0
	if m.selected >= perPage {
		start = m.selected - perPage + 1
	}
	end := min(start+perPage, len(list))

	bg := NewBgStyle(bgColor)
	blank := bg.Spaces(width)
	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	activeID := int64(-1)
	if c, ok := m.session.Active(); ok {
		activeID = c.ID
	}

	var lines []string
	for i := start; i < end; i++ {
		c := list[i]
		cardBg := bgColor
		selected := i == m.selected && m.focus == paneList
		if selected {
			cardBg = m.theme.SelectionBg
		}
		card := m.renderCard(c, width-1, cardBg, selected)
		marker := bg.Space()
		if c.ID == activeID {
			marker = bg.Render("▌", markerStyle)
		}
		for _, line := range strings.Split(card, "\n") {
			lines = append(lines, marker+line)
		}
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

// selectedContract returns the highlighted contract in the filtered list.
func (m Model) selectedContract() (contracts.Contract, bool) {
	list := m.session.Filtered()
	if m.selected < 0 || m.selected >= len(list) {
		return contracts.Contract{}, false
	}
	return list[m.selected], true
}

func (m *Model) clampSelection() {
	n := len(m.session.Filtered())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
