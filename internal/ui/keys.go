package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	FocusNext  key.Binding
	FocusPrev  key.Binding
	Escape     key.Binding

	// Contracts
	Open          key.Binding
	New           key.Binding
	Edit          key.Binding
	Copy          key.Binding
	ToggleFilters key.Binding
	ResetFilters  key.Binding

	// Tabs
	NextTab    key.Binding
	PrevTab    key.Binding
	CloseTab   key.Binding
	TabsList   key.Binding
	RemoveItem key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Forms
	Confirm key.Binding
	Submit  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane/field"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane/field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back/cancel"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open in tab"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New contract"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit contract"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy number"),
		),
		ToggleFilters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filters"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Reset filters"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Close tab"),
		),
		TabsList: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "All tabs"),
		),
		RemoveItem: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x/del", "Remove"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.FocusPrev, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.Open, k.New, k.Edit, k.Copy, k.ToggleFilters, k.ResetFilters},
		{k.NextTab, k.PrevTab, k.CloseTab, k.TabsList},
		{k.Submit, k.Confirm},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
