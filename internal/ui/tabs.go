package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/contractdesk/internal/state"
)

const tabTitleWidth = 22

// renderTabStrip renders the most recently opened tabs on one line. Older
// tabs collapse into a "+N" chip; t opens the full list.
func (m Model) renderTabStrip() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	visible, hidden := m.session.VisibleTabs(state.MaxVisibleTabs)
	if len(visible) == 0 {
		return bg.FillLine(bg.Space()+bg.Render("No open tabs · enter opens a contract", styles.FaintText), m.width)
	}

	chip := lipgloss.NewStyle().Padding(0, 1)
	parts := make([]string, 0, len(visible)+1)
	if hidden > 0 {
		parts = append(parts, chip.
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Foreground(lipgloss.Color(m.theme.Warning)).
			Render(fmt.Sprintf("+%d", hidden)))
	}
	for _, tab := range visible {
		title := truncate(tab.Title, tabTitleWidth)
		if tab.Active {
			parts = append(parts, chip.
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Bold(true).
				Render(title+" ×"))
			continue
		}
		parts = append(parts, chip.
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Foreground(lipgloss.Color(m.theme.Muted)).
			Render(title))
	}
	return bg.FillLine(bg.Space()+strings.Join(parts, bg.Space()), m.width)
}

// selectTabMsg asks the model to activate a tab.
type selectTabMsg struct{ id int64 }

// closeTabMsg asks the model to close a tab.
type closeTabMsg struct{ id int64 }

// tabsOverlay lists every open tab, including those collapsed out of the
// strip.
type tabsOverlay struct {
	tabs   []state.Tab
	cursor int
}

func newTabsOverlay(tabs []state.Tab) tabsOverlay {
	o := tabsOverlay{tabs: tabs}
	for i, t := range tabs {
		if t.Active {
			o.cursor = i
		}
	}
	return o
}

// withTabs refreshes the list after a tab was closed, keeping the cursor in
// range.
func (o tabsOverlay) withTabs(tabs []state.Tab) tabsOverlay {
	o.tabs = tabs
	if o.cursor >= len(tabs) {
		o.cursor = len(tabs) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	return o
}

func (o tabsOverlay) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.TabsList):
		return o, nil, true
	case key.Matches(km, keys.Up):
		if o.cursor > 0 {
			o.cursor--
		}
	case key.Matches(km, keys.Down):
		if o.cursor < len(o.tabs)-1 {
			o.cursor++
		}
	case key.Matches(km, keys.Confirm):
		if len(o.tabs) == 0 {
			return o, nil, true
		}
		id := o.tabs[o.cursor].ID
		return o, func() tea.Msg { return selectTabMsg{id: id} }, true
	case key.Matches(km, keys.RemoveItem):
		if len(o.tabs) == 0 {
			return o, nil, true
		}
		id := o.tabs[o.cursor].ID
		return o, func() tea.Msg { return closeTabMsg{id: id} }, false
	}
	return o, nil, false
}

func (o tabsOverlay) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Open tabs (%d)", len(o.tabs))))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	if len(o.tabs) == 0 {
		b.WriteString(styles.MutedText.Render("No open tabs"))
		b.WriteString("\n")
	}
	for i, tab := range o.tabs {
		line := padRight(truncate(tab.Title, 36), 38)
		if tab.Active {
			line = "● " + line
		} else {
			line = "  " + line
		}
		if i == o.cursor {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Show  •  x: Close tab  •  Esc: Back"))

	return renderOverlay(theme, width, height, 50, b.String())
}
