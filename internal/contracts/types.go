package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire layout for contract_date and execution_deadline.
const DateLayout = "2006-01-02"

// Contract mirrors a record returned by /api/v1/contracts/.
type Contract struct {
	ID                   int64     `json:"id"`
	Number               string    `json:"number,omitempty"`
	Name                 string    `json:"name,omitempty"`
	ContractDate         string    `json:"contract_date,omitempty"`
	Parties              string    `json:"parties,omitempty"`
	ExecutionDeadline    string    `json:"execution_deadline,omitempty"`
	PlannedAmount        *Amount   `json:"planned_amount,omitempty"`
	ActualAmount         *Amount   `json:"actual_amount,omitempty"`
	ReadinessDescription string    `json:"readiness_description,omitempty"`
	CreatedAt            string    `json:"created_at,omitempty"`
	Versions             []Version `json:"versions,omitempty"`
}

// Version is one entry of a contract's change history.
type Version struct {
	ID                 int64  `json:"id"`
	ContractID         int64  `json:"contract_id"`
	VersionNumber      int    `json:"version_number"`
	ChangesDescription string `json:"changes_description,omitempty"`
	AISummary          string `json:"ai_summary,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// ParsedContractDate returns contract_date as a time when it is a valid date.
func (c Contract) ParsedContractDate() (time.Time, bool) {
	return ParseDate(c.ContractDate)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (c Contract) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

// Title is the label used for tabs and cards.
func (c Contract) Title() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return "Untitled"
}

// Amount is a monetary value. The backend serialises decimals as strings,
// older builds as numbers; both are accepted.
type Amount float64

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}

// NewAmount returns a pointer to an Amount, convenient for optional fields.
func NewAmount(v float64) *Amount {
	a := Amount(v)
	return &a
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", raw, err)
	}
	*a = Amount(v)
	return nil
}

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// The backend emits naive ISO timestamps (no zone) for created_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for i, layout := range timestampLayouts {
		if i < 2 {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
