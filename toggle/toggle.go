// Package toggle provides a tether.Source for two-state widgets (switches,
// checkboxes) exposing a single checked-change listener slot.
package toggle

import "github.com/zoobzio/tether"

// Toggle is the widget surface this adapter binds to.
type Toggle interface {
	SetOnCheckedChangeListener(fn func(checked bool))
	IsChecked() bool
}

// Source emits the checked state whenever it changes.
type Source struct {
	toggle Toggle
}

// CheckedChanges creates a Source for the toggle's checked state. The source
// is stateful: binding it replays the current state at subscription time.
func CheckedChanges(t Toggle) *Source {
	return &Source{toggle: t}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(bool) bool) (tether.Handle, error) {
	s.toggle.SetOnCheckedChangeListener(func(checked bool) {
		emit(checked)
	})
	return s.toggle, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.toggle.SetOnCheckedChangeListener(nil)
}

// Current implements tether.Stateful.
func (s *Source) Current() (bool, bool) {
	return s.toggle.IsChecked(), true
}
