package contracts

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingRequired is returned by Draft.Validate when number, name or
// contract date is blank.
var ErrMissingRequired = errors.New("fill in the required fields: number, name and contract date")

// Draft is the editable form state of a contract. Every field is kept as the
// raw text the user typed.
type Draft struct {
	Number               string
	Name                 string
	ContractDate         string
	Parties              string
	ExecutionDeadline    string
	PlannedAmount        string
	ActualAmount         string
	ReadinessDescription string
}

// DraftFrom prefills a draft from an existing contract.
func DraftFrom(c Contract) Draft {
	return Draft{
		Number:               c.Number,
		Name:                 c.Name,
		ContractDate:         c.ContractDate,
		Parties:              c.Parties,
		ExecutionDeadline:    c.ExecutionDeadline,
		PlannedAmount:        amountText(c.PlannedAmount),
		ActualAmount:         amountText(c.ActualAmount),
		ReadinessDescription: c.ReadinessDescription,
	}
}

func amountText(a *Amount) string {
	if a == nil {
		return ""
	}
	return strconv.FormatFloat(a.Float(), 'f', -1, 64)
}

// Payload is the sparse JSON body for POST and PATCH. Nil fields are omitted.
type Payload struct {
	Number               *string  `json:"number,omitempty"`
	Name                 *string  `json:"name,omitempty"`
	ContractDate         *string  `json:"contract_date,omitempty"`
	Parties              *string  `json:"parties,omitempty"`
	ExecutionDeadline    *string  `json:"execution_deadline,omitempty"`
	PlannedAmount        *float64 `json:"planned_amount,omitempty"`
	ActualAmount         *float64 `json:"actual_amount,omitempty"`
	ReadinessDescription *string  `json:"readiness_description,omitempty"`
}

// Validate checks required fields first, then the format of populated
// optional fields.
func (d Draft) Validate() error {
	if blank(d.Number) || blank(d.Name) || blank(d.ContractDate) {
		return ErrMissingRequired
	}
	if _, ok := ParseDate(d.ContractDate); !ok {
		return fmt.Errorf("contract date %q must be YYYY-MM-DD", strings.TrimSpace(d.ContractDate))
	}
	if !blank(d.ExecutionDeadline) {
		if _, ok := ParseDate(d.ExecutionDeadline); !ok {
			return fmt.Errorf("execution deadline %q must be YYYY-MM-DD", strings.TrimSpace(d.ExecutionDeadline))
		}
	}
	if _, err := parseAmountField("planned amount", d.PlannedAmount); err != nil {
		return err
	}
	if _, err := parseAmountField("actual amount", d.ActualAmount); err != nil {
		return err
	}
	return nil
}

// Payload validates the draft and returns only the populated fields.
func (d Draft) Payload() (Payload, error) {
	if err := d.Validate(); err != nil {
		return Payload{}, err
	}
	var p Payload
	p.Number = textField(d.Number)
	p.Name = textField(d.Name)
	p.ContractDate = textField(d.ContractDate)
	p.Parties = textField(d.Parties)
	p.ExecutionDeadline = textField(d.ExecutionDeadline)
	p.ReadinessDescription = textField(d.ReadinessDescription)
	p.PlannedAmount, _ = parseAmountField("planned amount", d.PlannedAmount)
	p.ActualAmount, _ = parseAmountField("actual amount", d.ActualAmount)
	return p, nil
}

// ErrEmptyPatch is returned by Sparse when no field is populated.
var ErrEmptyPatch = errors.New("nothing to update")

// Sparse returns only the populated fields without requiring number, name
// or contract date. Populated fields are format-checked like Validate does.
func (d Draft) Sparse() (Payload, error) {
	for _, f := range []struct{ label, value string }{
		{"contract date", d.ContractDate},
		{"execution deadline", d.ExecutionDeadline},
	} {
		if blank(f.value) {
			continue
		}
		if _, ok := ParseDate(f.value); !ok {
			return Payload{}, fmt.Errorf("%s %q must be YYYY-MM-DD", f.label, strings.TrimSpace(f.value))
		}
	}
	planned, err := parseAmountField("planned amount", d.PlannedAmount)
	if err != nil {
		return Payload{}, err
	}
	actual, err := parseAmountField("actual amount", d.ActualAmount)
	if err != nil {
		return Payload{}, err
	}

	p := Payload{
		Number:               textField(d.Number),
		Name:                 textField(d.Name),
		ContractDate:         textField(d.ContractDate),
		Parties:              textField(d.Parties),
		ExecutionDeadline:    textField(d.ExecutionDeadline),
		PlannedAmount:        planned,
		ActualAmount:         actual,
		ReadinessDescription: textField(d.ReadinessDescription),
	}
	if p == (Payload{}) {
		return Payload{}, ErrEmptyPatch
	}
	return p, nil
}

func textField(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseAmountField(label, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s %q is not a number", label, value)
	}
	if v < 0 {
		return nil, fmt.Errorf("%s must be non-negative", label)
	}
	return &v, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
