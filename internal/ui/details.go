package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/five82/contractdesk/internal/contracts"
)

// detailsPane shows the active contract as glamour-rendered markdown in a
// scrollable viewport.
type detailsPane struct {
	viewport viewport.Model

	renderer      *glamour.TermRenderer
	rendererWidth int
	rendererStyle string

	shownID int64
}

func newDetailsPane() detailsPane {
	return detailsPane{viewport: viewport.New(0, 0)}
}

// render converts markdown for the given width, rebuilding the renderer only
// when the width or style changes. Markdown is shown raw if glamour fails.
func (d *detailsPane) render(markdown string, width int, style string) string {
	if d.renderer == nil || d.rendererWidth != width || d.rendererStyle != style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(max(width-2, 20)),
		)
		if err != nil {
			d.renderer = nil
			return markdown
		}
		d.renderer, d.rendererWidth, d.rendererStyle = r, width, style
	}
	out, err := d.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(out, "\n")
}

func (m Model) detailsSize() (int, int) {
	return m.width - listWidth(m.width), m.height - chromeRows
}

// refreshDetails re-renders the details pane for the active contract. The
// scroll position resets only when a different contract is shown.
func (m *Model) refreshDetails() {
	if !m.ready {
		return
	}
	width, height := m.detailsSize()
	m.details.viewport.Width = max(width-2, 0)
	m.details.viewport.Height = max(height-2, 0)

	c, ok := m.session.Active()
	if !ok {
		styles := m.theme.Styles()
		m.details.viewport.SetContent(styles.MutedText.Render("Select a contract and press enter to view its details."))
		m.details.viewport.GotoTop()
		m.details.shownID = 0
		return
	}

	md := contracts.Markdown(c, m.format, m.keyword)
	m.details.viewport.SetContent(m.details.render(md, m.details.viewport.Width, m.theme.Glamour))
	if c.ID != m.details.shownID {
		m.details.viewport.GotoTop()
	}
	m.details.shownID = c.ID
}

func (m Model) renderDetails(width, height int) string {
	title := "Details"
	if c, ok := m.session.Active(); ok {
		title = c.Title()
	}
	return m.renderTitledBox(title, m.details.viewport.View(), width, height, m.focus == paneDetails)
}

// handleDetailsKey scrolls the details viewport.
func (m Model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.details.viewport
	switch {
	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfViewUp()
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	}
	return m, nil
}
