package contracts

import "strings"

// DefaultCompletionKeyword is the stem the registry's operators use when a
// contract is finished ("завершен", "завершено", ...).
const DefaultCompletionKeyword = "заверш"

// Status is derived from the readiness description; it is never stored.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Label returns the human readable status text.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	default:
		return "Active"
	}
}

// StatusOf reports completed iff the readiness description contains keyword.
// An empty keyword falls back to DefaultCompletionKeyword.
func StatusOf(c Contract, keyword string) Status {
	if keyword == "" {
		keyword = DefaultCompletionKeyword
	}
	if strings.Contains(c.ReadinessDescription, keyword) {
		return StatusCompleted
	}
	return StatusActive
}
