package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops labels.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth gives the details pane more room.
	LayoutExtraWideWidth = 160
)

// Fixed row heights.
const (
	headerRows    = 1
	commandRows   = 1
	tabStripRows  = 1
	filterBoxRows = 7
	cardRows      = 4
)

// chromeRows is the height taken above the panes.
const chromeRows = headerRows + commandRows + tabStripRows

// listWidth returns the sidebar width for a terminal width.
func listWidth(total int) int {
	if total >= LayoutExtraWideWidth {
		return total * 30 / 100
	}
	return total * 40 / 100
}
