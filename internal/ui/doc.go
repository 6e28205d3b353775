// Package ui is the contractdesk terminal interface, built on Bubble Tea.
//
// # Layout
//
//	┌ header: logo, counts, API endpoint ────────────────────────────┐
//	│ command bar (keys for the focused pane)                        │
//	│ tab strip: newest open tabs, "+N" for the rest                 │
//	├ filters (toggle f) ─┬ details ─────────────────────────────────┤
//	│ contract cards      │ glamour-rendered contract, analysis and  │
//	│                     │ version history                          │
//	└─────────────────────┴──────────────────────────────────────────┘
//
// # State
//
// Model owns a *state.Session and mutates it only inside Update, so the
// session needs no locking. Network calls run as tea.Cmds and report back
// through contractsLoadedMsg and contractSavedMsg.
//
// Overlays implement Modal. Alerts come first and swallow every key except
// enter, esc and space. Help, then the open modal (editor form or tab list),
// then the filter panel get the next chance at a key before the global
// bindings in keys.go.
//
// # Editor
//
// The form validates locally before anything is sent. A save in flight locks
// the form; esc does nothing until the result arrives. Staged attachments
// are listed with their size but never uploaded.
//
// # Preferences
//
// Theme (T) and filter panel visibility (f) are written to the prefs file as
// soon as they change.
package ui
