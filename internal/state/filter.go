package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/five82/contractdesk/internal/contracts"
)

// Criteria are the committed filter values. Empty fields do not filter.
type Criteria struct {
	DateFrom   string `toml:"date_from"`
	DateTo     string `toml:"date_to"`
	AmountFrom string `toml:"amount_from"`
	AmountTo   string `toml:"amount_to"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.DateFrom) == "" &&
		strings.TrimSpace(c.DateTo) == "" &&
		strings.TrimSpace(c.AmountFrom) == "" &&
		strings.TrimSpace(c.AmountTo) == ""
}

// Validate reports the first bound that cannot be parsed.
func (c Criteria) Validate() error {
	for _, d := range []struct{ label, value string }{
		{"date from", c.DateFrom},
		{"date to", c.DateTo},
	} {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		if _, ok := contracts.ParseDate(d.value); !ok {
			return fmt.Errorf("%s %q must be YYYY-MM-DD", d.label, strings.TrimSpace(d.value))
		}
	}
	for _, a := range []struct{ label, value string }{
		{"amount from", c.AmountFrom},
		{"amount to", c.AmountTo},
	} {
		if strings.TrimSpace(a.value) == "" {
			continue
		}
		if _, ok := parseBound(a.value); !ok {
			return fmt.Errorf("%s %q is not a number", a.label, strings.TrimSpace(a.value))
		}
	}
	return nil
}

// predicate narrows the list; every active predicate must pass.
type predicate func(contracts.Contract) bool

func (c Criteria) predicates() []predicate {
	var preds []predicate
	if v := strings.TrimSpace(c.DateFrom); v != "" {
		bound, ok := contracts.ParseDate(v)
		preds = append(preds, func(k contracts.Contract) bool {
			d, has := k.ParsedContractDate()
			return ok && has && !d.Before(bound)
		})
	}
	if v := strings.TrimSpace(c.DateTo); v != "" {
		bound, ok := contracts.ParseDate(v)
		preds = append(preds, func(k contracts.Contract) bool {
			d, has := k.ParsedContractDate()
			return ok && has && !d.After(bound)
		})
	}
	if v := strings.TrimSpace(c.AmountFrom); v != "" {
		bound, ok := parseBound(v)
		preds = append(preds, func(k contracts.Contract) bool {
			return ok && k.PlannedAmount != nil && k.PlannedAmount.Float() >= bound
		})
	}
	if v := strings.TrimSpace(c.AmountTo); v != "" {
		bound, ok := parseBound(v)
		preds = append(preds, func(k contracts.Contract) bool {
			return ok && k.PlannedAmount != nil && k.PlannedAmount.Float() <= bound
		})
	}
	return preds
}

// Apply returns the contracts matching every set criterion, preserving order.
// A bound that cannot be parsed matches nothing. Contracts lacking the
// filtered field never match an active bound on it.
func Apply(list []contracts.Contract, c Criteria) []contracts.Contract {
	preds := c.predicates()
	out := make([]contracts.Contract, 0, len(list))
next:
	for _, k := range list {
		for _, p := range preds {
			if !p(k) {
				continue next
			}
		}
		out = append(out, k)
	}
	return out
}

func parseBound(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(value), ",", "."), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
