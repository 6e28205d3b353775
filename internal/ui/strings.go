package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || lipgloss.Width(value) <= limit {
		return value
	}
	runes := []rune(value)
	if limit <= 3 {
		return string(runes[:min(limit, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if width <= 0 || w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// humanSize formats a byte count the way file pickers do.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
