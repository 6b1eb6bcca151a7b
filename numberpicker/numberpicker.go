// Package numberpicker provides a tether.Source for number-picker style
// widgets exposing a single value-change listener slot.
package numberpicker

import "github.com/zoobzio/tether"

// Picker is the widget surface this adapter binds to.
type Picker interface {
	SetOnValueChangedListener(fn func(oldVal, newVal int))
	Value() int
}

// Source emits the picker's new value whenever it changes.
type Source struct {
	picker Picker
}

// ValueChanges creates a Source for the picker's value. The source is
// stateful: binding it replays the current value at subscription time.
func ValueChanges(p Picker) *Source {
	return &Source{picker: p}
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(int) bool) (tether.Handle, error) {
	s.picker.SetOnValueChangedListener(func(_, newVal int) {
		emit(newVal)
	})
	return s.picker, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.picker.SetOnValueChangedListener(nil)
}

// Current implements tether.Stateful.
func (s *Source) Current() (int, bool) {
	return s.picker.Value(), true
}
