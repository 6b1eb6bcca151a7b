// Package pager provides a tether.Source for paged-container widgets
// exposing a single page-change listener slot.
package pager

import "github.com/zoobzio/tether"

// Pager is the widget surface this adapter binds to.
type Pager interface {
	SetOnPageChangeListener(fn func(page int))
	CurrentItem() int
}

// Source emits the page index whenever the displayed page settles.
type Source struct {
	pager Pager
}

// PageChanges creates a Source for the pager's current page. The source is
// stateful and deduplicating: the current page is replayed at subscription
// time, and settle callbacks for the page already shown are suppressed.
func PageChanges(p Pager) *Source {
	return &Source{pager: p}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(int) bool) (tether.Handle, error) {
	s.pager.SetOnPageChangeListener(func(page int) {
		emit(page)
	})
	return s.pager, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.pager.SetOnPageChangeListener(nil)
}

// Current implements tether.Stateful.
func (s *Source) Current() (int, bool) {
	return s.pager.CurrentItem(), true
}

// Distinct implements tether.Distinctable.
func (s *Source) Distinct(prev, next int) bool {
	return prev == next
}
