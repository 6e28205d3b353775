package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal asks to
// close. Modals never touch the session; they report intent through the
// messages their commands produce.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// renderOverlay centers a bordered modal box on the screen.
func renderOverlay(theme Theme, width, height, boxWidth int, content string) string {
	box := modalBox(theme, boxWidth).Render(content)
	return placeCenter(theme, width, height, box)
}
