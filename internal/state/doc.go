// Package state holds the root state of a contractdesk session.
//
// # Overview
//
// A Session caches the contract list fetched at startup and everything the
// user does on top of it: committed filter criteria, open tabs, the contract
// shown in the details pane, the create/edit form and pending alerts. It never
// talks to the network; the UI runs requests as commands and feeds the
// results back through Load and FinishSubmit.
//
// # Ownership
//
// The UI update loop is the only goroutine that touches a Session, so there
// is no locking. Getters return copies so views cannot mutate cached data.
//
// # Filtering
//
//	contracts ──┐
//	            ├─> Apply(list, criteria) ─> Filtered()
//	criteria  ──┘
//
// Filtered is recomputed whenever the list or the criteria change. Each set
// criterion is an inclusive bound and narrows the result independently, so
// tightening a bound can only shrink the result.
//
// # Tabs
//
//   - OpenTab deactivates every tab, then re-activates the contract's tab or
//     appends a new one.
//   - SelectTab activates one tab and shows its cached contract.
//   - CloseTab removes a tab; when it was active, the last remaining tab
//     becomes active, or the active contract is cleared.
//
// At most one tab is active and its ContractID always equals the active
// contract's ID.
//
// # Editor
//
//	closed ─OpenCreate/OpenEdit─> open ─BeginSubmit─> submitting
//	  ^                                                   │
//	  └──────── FinishSubmit(ok) ──┘   FinishSubmit(err) ─┴─> open + alert
package state
