package state

import (
	"time"

	"github.com/five82/contractdesk/internal/contracts"
)

// Session is the root state of a contractdesk run: the cached contract list,
// the committed filters, open tabs, the active contract, the editor and the
// pending alerts. It is owned by a single goroutine (the UI update loop); it
// performs no I/O.
type Session struct {
	contracts []contracts.Contract
	filtered  []contracts.Contract
	criteria  Criteria

	tabs      []Tab
	lastTabID int64
	active    *contracts.Contract

	loading bool
	editor  Editor
	alerts  []Alert

	now func() time.Time
}

var timeNow = time.Now

// NewSession returns a session waiting for its initial load.
func NewSession() *Session {
	return &Session{loading: true, now: timeNow}
}

// Loading reports whether the initial fetch is still outstanding.
func (s *Session) Loading() bool {
	return s.loading
}

// Load records the result of the initial fetch. On error the list stays empty
// and an alert is raised.
func (s *Session) Load(list []contracts.Contract, err error) {
	s.loading = false
	if err != nil {
		s.contracts = nil
		s.PushAlert(AlertError, "Could not load contracts from the server.")
		s.recompute()
		return
	}
	s.contracts = cloneContracts(list)
	s.recompute()
}

// Contracts returns a copy of the cached list.
func (s *Session) Contracts() []contracts.Contract {
	return cloneContracts(s.contracts)
}

// Filtered returns the contracts matching the current criteria.
func (s *Session) Filtered() []contracts.Contract {
	return cloneContracts(s.filtered)
}

// Criteria returns the committed filter criteria.
func (s *Session) Criteria() Criteria {
	return s.criteria
}

// ApplyFilters replaces the criteria wholesale.
func (s *Session) ApplyFilters(c Criteria) {
	s.criteria = c
	s.recompute()
}

// ResetFilters clears every criterion.
func (s *Session) ResetFilters() {
	s.ApplyFilters(Criteria{})
}

// Lookup finds a cached contract by id.
func (s *Session) Lookup(id int64) (contracts.Contract, bool) {
	for _, c := range s.contracts {
		if c.ID == id {
			return c, true
		}
	}
	return contracts.Contract{}, false
}

// Merge stores a record returned by the server, replacing the cached record
// with the same id or appending it. The active contract and tab titles that
// refer to it are refreshed.
func (s *Session) Merge(saved contracts.Contract) {
	replaced := false
	for i := range s.contracts {
		if s.contracts[i].ID == saved.ID {
			s.contracts[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		s.contracts = append(s.contracts, saved)
	}
	if s.active != nil && s.active.ID == saved.ID {
		updated := saved
		s.active = &updated
	}
	for i := range s.tabs {
		if s.tabs[i].ContractID == saved.ID {
			s.tabs[i].Title = saved.Title()
		}
	}
	s.recompute()
}

// Active returns the contract shown in the details pane.
func (s *Session) Active() (contracts.Contract, bool) {
	if s.active == nil {
		return contracts.Contract{}, false
	}
	return *s.active, true
}

func (s *Session) setActive(c *contracts.Contract) {
	if c == nil {
		s.active = nil
		return
	}
	dup := *c
	s.active = &dup
}

func (s *Session) recompute() {
	s.filtered = Apply(s.contracts, s.criteria)
}

func cloneContracts(list []contracts.Contract) []contracts.Contract {
	if len(list) == 0 {
		return nil
	}
	dup := make([]contracts.Contract, len(list))
	copy(dup, list)
	return dup
}
