package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/contractdesk/internal/state"
)

// filterAction is what the panel asks the model to do after a key.
type filterAction int

const (
	filterNone filterAction = iota
	filterApply
	filterReset
	filterLeave
)

const (
	fieldDateFrom = iota
	fieldDateTo
	fieldAmountFrom
	fieldAmountTo
	filterFieldCount
)

var filterLabels = [filterFieldCount]string{
	"From date:  ",
	"To date:    ",
	"Min amount: ",
	"Max amount: ",
}

// filterPanel holds uncommitted filter input. Nothing reaches the session
// until the user applies it.
type filterPanel struct {
	inputs [filterFieldCount]textinput.Model
	focus  int
	err    string
}

func newFilterPanel() filterPanel {
	placeholders := [filterFieldCount]string{"YYYY-MM-DD", "YYYY-MM-DD", "e.g. 10000", "e.g. 500000"}
	var p filterPanel
	for i := range p.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 24
		ti.Width = 16
		p.inputs[i] = ti
	}
	return p
}

func (p *filterPanel) focusField(i int) {
	for j := range p.inputs {
		p.inputs[j].Blur()
	}
	p.focus = (i + filterFieldCount) % filterFieldCount
	p.inputs[p.focus].Focus()
}

func (p *filterPanel) blur() {
	for j := range p.inputs {
		p.inputs[j].Blur()
	}
}

// criteria returns the current input as criteria.
func (p filterPanel) criteria() state.Criteria {
	return state.Criteria{
		DateFrom:   strings.TrimSpace(p.inputs[fieldDateFrom].Value()),
		DateTo:     strings.TrimSpace(p.inputs[fieldDateTo].Value()),
		AmountFrom: strings.TrimSpace(p.inputs[fieldAmountFrom].Value()),
		AmountTo:   strings.TrimSpace(p.inputs[fieldAmountTo].Value()),
	}
}

func (p *filterPanel) clear() {
	for j := range p.inputs {
		p.inputs[j].SetValue("")
	}
	p.err = ""
}

func (p *filterPanel) update(msg tea.KeyMsg, keys keyMap) (filterAction, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		p.blur()
		return filterLeave, nil
	case key.Matches(msg, keys.Confirm):
		if err := p.criteria().Validate(); err != nil {
			p.err = err.Error()
			return filterNone, nil
		}
		p.err = ""
		return filterApply, nil
	case key.Matches(msg, keys.ResetFilters):
		p.clear()
		return filterReset, nil
	case key.Matches(msg, keys.FocusNext), msg.String() == "down":
		p.focusField(p.focus + 1)
		return filterNone, nil
	case key.Matches(msg, keys.FocusPrev), msg.String() == "up":
		p.focusField(p.focus - 1)
		return filterNone, nil
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return filterNone, cmd
}

// renderFilters renders the filter panel box.
func (m Model) renderFilters(width, height int) string {
	focused := m.focus == paneFilters
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)

	lines := make([]string, 0, filterFieldCount+1)
	for i, input := range m.filters.inputs {
		label := styles.MutedText.Render(filterLabels[i])
		if focused && i == m.filters.focus {
			label = styles.AccentText.Render(filterLabels[i])
		}
		lines = append(lines, label+input.View())
	}
	switch {
	case m.filters.err != "":
		lines = append(lines, styles.DangerText.Render(truncate(m.filters.err, width-4)))
	case !m.session.Criteria().IsZero():
		lines = append(lines, styles.InfoText.Render("Filters applied · ctrl+r resets"))
	default:
		lines = append(lines, styles.FaintText.Render("enter applies · blank fields do not filter"))
	}

	return m.renderTitledBox("Filters", strings.Join(lines, "\n"), width, height, focused)
}
