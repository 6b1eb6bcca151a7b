// Package radiogroup provides a tether.Source for radio-group style widgets
// exposing a single checked-change listener slot.
//
// Radio groups fire their listener on internal updates (clearing and
// re-checking during programmatic changes) even when the externally
// meaningful selection has not changed, so this source implements
// tether.Distinctable: consecutive equal checked ids are suppressed.
package radiogroup

import "github.com/zoobzio/tether"

// None is the checked id a group reports when no button is checked.
const None = -1

// Group is the widget surface this adapter binds to. Any widget exposing a
// single checked-change listener slot and its current checked id can be
// bound; passing nil to SetOnCheckedChangeListener clears the listener.
type Group interface {
	SetOnCheckedChangeListener(fn func(checkedID int))
	CheckedID() int
}

// Source emits the checked id whenever the group's selection changes.
type Source struct {
	group Group
}

// CheckedChanges creates a Source for the group's selection. The source is
// stateful: binding it replays the current checked id at subscription time,
// unless nothing is checked yet.
func CheckedChanges(g Group) *Source {
	return &Source{group: g}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(int) bool) (tether.Handle, error) {
	s.group.SetOnCheckedChangeListener(func(checkedID int) {
		emit(checkedID)
	})
	return s.group, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.group.SetOnCheckedChangeListener(nil)
}

// Current implements tether.Stateful. It reports no value while nothing is
// checked, so a default-empty group does not replay None.
func (s *Source) Current() (int, bool) {
	id := s.group.CheckedID()
	if id == None {
		return 0, false
	}
	return id, true
}

// Distinct implements tether.Distinctable.
func (s *Source) Distinct(prev, next int) bool {
	return prev == next
}
