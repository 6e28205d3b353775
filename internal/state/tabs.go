package state

import "github.com/five82/contractdesk/internal/contracts"

// MaxVisibleTabs is how many of the most recently opened tabs the strip shows.
const MaxVisibleTabs = 4

// Tab is an open-contract shortcut. ID is the creation time in unix
// milliseconds, bumped when needed so IDs stay unique and increasing.
type Tab struct {
	ID         int64
	Title      string
	Active     bool
	ContractID int64
}

// Tabs returns a copy of the open tabs in opening order.
func (s *Session) Tabs() []Tab {
	if len(s.tabs) == 0 {
		return nil
	}
	dup := make([]Tab, len(s.tabs))
	copy(dup, s.tabs)
	return dup
}

// ActiveTab returns the active tab, if any.
func (s *Session) ActiveTab() (Tab, bool) {
	for _, t := range s.tabs {
		if t.Active {
			return t, true
		}
	}
	return Tab{}, false
}

// VisibleTabs returns the last limit tabs and the number collapsed before them.
func (s *Session) VisibleTabs(limit int) ([]Tab, int) {
	tabs := s.Tabs()
	if limit <= 0 || len(tabs) <= limit {
		return tabs, 0
	}
	hidden := len(tabs) - limit
	return tabs[hidden:], hidden
}

// OpenTab shows c, re-activating its tab when one exists and appending a new
// active tab otherwise.
func (s *Session) OpenTab(c contracts.Contract) {
	found := false
	for i := range s.tabs {
		s.tabs[i].Active = s.tabs[i].ContractID == c.ID && !found
		if s.tabs[i].Active {
			found = true
		}
	}
	if !found {
		s.tabs = append(s.tabs, Tab{
			ID:         s.nextTabID(),
			Title:      c.Title(),
			Active:     true,
			ContractID: c.ID,
		})
	}
	s.setActive(&c)
}

// SelectTab activates tabID and shows its contract. Unknown ids are ignored.
func (s *Session) SelectTab(tabID int64) bool {
	idx := s.tabIndex(tabID)
	if idx < 0 {
		return false
	}
	for i := range s.tabs {
		s.tabs[i].Active = i == idx
	}
	s.showTabContract(s.tabs[idx])
	return true
}

// CloseTab removes tabID. Closing the active tab activates the last remaining
// tab, or clears the active contract when none remain.
func (s *Session) CloseTab(tabID int64) {
	idx := s.tabIndex(tabID)
	if idx < 0 {
		return
	}
	wasActive := s.tabs[idx].Active
	s.tabs = append(s.tabs[:idx], s.tabs[idx+1:]...)
	if !wasActive {
		return
	}
	if len(s.tabs) == 0 {
		s.setActive(nil)
		return
	}
	last := len(s.tabs) - 1
	s.tabs[last].Active = true
	s.showTabContract(s.tabs[last])
}

func (s *Session) showTabContract(t Tab) {
	if c, ok := s.Lookup(t.ContractID); ok {
		s.setActive(&c)
		return
	}
	s.setActive(nil)
}

func (s *Session) tabIndex(tabID int64) int {
	for i, t := range s.tabs {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}

func (s *Session) nextTabID() int64 {
	now := s.now
	if now == nil {
		now = timeNow
	}
	id := now().UnixMilli()
	if id <= s.lastTabID {
		id = s.lastTabID + 1
	}
	s.lastTabID = id
	return id
}
