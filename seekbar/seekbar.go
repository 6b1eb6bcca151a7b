// Package seekbar provides a tether.Source for seek-bar style widgets
// exposing a single progress-change listener slot.
package seekbar

import "github.com/zoobzio/tether"

// Bar is the widget surface this adapter binds to. The listener receives the
// new progress and whether the change was user-initiated (a drag) rather
// than programmatic.
type Bar interface {
	SetOnProgressChangeListener(fn func(progress int, fromUser bool))
	Progress() int
}

// Source emits the bar's progress whenever it changes.
type Source struct {
	bar          Bar
	fromUserOnly bool
}

// Option configures a Source.
type Option func(*Source)

// FromUserOnly restricts the stream to user-initiated changes, dropping
// programmatic SetProgress updates.
func FromUserOnly() Option {
	return func(s *Source) {
		s.fromUserOnly = true
	}
}

// ProgressChanges creates a Source for the bar's progress. The source is
// stateful: binding it replays the current progress at subscription time.
func ProgressChanges(b Bar, opts ...Option) *Source {
	s := &Source{bar: b}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(int) bool) (tether.Handle, error) {
	s.bar.SetOnProgressChangeListener(func(progress int, fromUser bool) {
		if s.fromUserOnly && !fromUser {
			return
		}
		emit(progress)
	})
	return s.bar, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.bar.SetOnProgressChangeListener(nil)
}

// Current implements tether.Stateful.
func (s *Source) Current() (int, bool) {
	return s.bar.Progress(), true
}
