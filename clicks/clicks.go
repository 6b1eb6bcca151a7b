// Package clicks provides a tether.Source for click events on widgets
// exposing a single click listener slot.
package clicks

import "github.com/zoobzio/tether"

// Click is the unit event a click stream carries.
type Click struct{}

// Clickable is the widget surface this adapter binds to.
type Clickable interface {
	SetOnClickListener(fn func())
}

// Source emits a Click per click. Clicks have no current state and no
// duplicates to suppress; every click is its own event. Pair with an
// Unlimited or Buffered capacity when no click may be lost, or keep the
// Conflated default when only "was clicked since last turn" matters.
type Source struct {
	widget Clickable
}

// Clicks creates a Source for the widget's clicks.
func Clicks(w Clickable) *Source {
	return &Source{widget: w}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(Click) bool) (tether.Handle, error) {
	s.widget.SetOnClickListener(func() {
		emit(Click{})
	})
	return s.widget, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.widget.SetOnClickListener(nil)
}
