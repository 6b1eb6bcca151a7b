// Package bottomnav provides a tether.Source for bottom-navigation style
// widgets exposing a single item-selected listener slot.
//
// Navigation views re-fire their listener when an already-selected item is
// tapped again, so this source implements tether.Distinctable. Use
// ReselectedItems for the opposite: a stream of only the re-taps.
package bottomnav

import "github.com/zoobzio/tether"

// View is the widget surface this adapter binds to.
type View interface {
	SetOnItemSelectedListener(fn func(itemID int))
	SetOnItemReselectedListener(fn func(itemID int))
	SelectedItemID() int
}

// Source emits the selected item id whenever the selection changes.
type Source struct {
	view       View
	reselected bool
}

// SelectedItems creates a Source for the view's selected item. The source is
// stateful and deduplicating: the current selection is replayed at
// subscription time and re-taps of the selected item are suppressed.
func SelectedItems(v View) *Source {
	return &Source{view: v}
}

// ReselectedItems creates a Source emitting the item id each time the
// already-selected item is tapped again. No replay, no dedup: every re-tap
// is a meaningful event.
func ReselectedItems(v View) *Source {
	return &Source{view: v, reselected: true}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(int) bool) (tether.Handle, error) {
	fn := func(itemID int) {
		emit(itemID)
	}
	if s.reselected {
		s.view.SetOnItemReselectedListener(fn)
	} else {
		s.view.SetOnItemSelectedListener(fn)
	}
	return s.view, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	if s.reselected {
		s.view.SetOnItemReselectedListener(nil)
	} else {
		s.view.SetOnItemSelectedListener(nil)
	}
}

// Current implements tether.Stateful for the selected-items form.
// Reselection streams have no current value.
func (s *Source) Current() (int, bool) {
	if s.reselected {
		return 0, false
	}
	return s.view.SelectedItemID(), true
}

// Distinct implements tether.Distinctable. Reselection streams never
// suppress: repeats are the point.
func (s *Source) Distinct(prev, next int) bool {
	if s.reselected {
		return false
	}
	return prev == next
}
