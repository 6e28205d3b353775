package state

// AlertKind distinguishes confirmations from failures.
type AlertKind int

const (
	AlertInfo AlertKind = iota
	AlertError
)

// Alert is a blocking message; the UI ignores other input until it is
// dismissed.
type Alert struct {
	Kind AlertKind
	Text string
}

// PushAlert queues an alert behind any already pending.
func (s *Session) PushAlert(kind AlertKind, text string) {
	s.alerts = append(s.alerts, Alert{Kind: kind, Text: text})
}

// CurrentAlert returns the alert to display, if any.
func (s *Session) CurrentAlert() (Alert, bool) {
	if len(s.alerts) == 0 {
		return Alert{}, false
	}
	return s.alerts[0], true
}

// DismissAlert drops the displayed alert.
func (s *Session) DismissAlert() {
	if len(s.alerts) == 0 {
		return
	}
	s.alerts = s.alerts[1:]
}
