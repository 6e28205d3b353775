package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders text segments on one background color. Lipgloss resets
// between styled segments otherwise leave unpainted gaps.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a background helper for bgColor.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render paints text, spaces included, with style on the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = wordStyle.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}

// renderTitledBox draws content in a frame with the title in the top border:
// ┌─── Title ───┐. Focused boxes use the focus border and background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	if width < 4 || height < 2 {
		return ""
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, innerWidth-4)
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle)
	bottom := bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle)

	lineStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColor))
	side := bg.Render("│", borderStyle)

	lines := strings.Split(content, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, side+lineStyle.Render(line)+side)
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}
