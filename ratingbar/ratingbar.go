// Package ratingbar provides a tether.Source for rating-bar style widgets
// exposing a single rating-change listener slot.
package ratingbar

import "github.com/zoobzio/tether"

// Bar is the widget surface this adapter binds to.
type Bar interface {
	SetOnRatingChangeListener(fn func(rating float64, fromUser bool))
	Rating() float64
}

// Source emits the bar's rating whenever it changes.
type Source struct {
	bar          Bar
	fromUserOnly bool
}

// Option configures a Source.
type Option func(*Source)

// FromUserOnly restricts the stream to user-initiated changes.
func FromUserOnly() Option {
	return func(s *Source) {
		s.fromUserOnly = true
	}
}

// RatingChanges creates a Source for the bar's rating. The source is
// stateful: binding it replays the current rating at subscription time.
func RatingChanges(b Bar, opts ...Option) *Source {
	s := &Source{bar: b}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach implements tether.Source.
func (s *Source) Attach(emit func(float64) bool) (tether.Handle, error) {
	s.bar.SetOnRatingChangeListener(func(rating float64, fromUser bool) {
		if s.fromUserOnly && !fromUser {
			return
		}
		emit(rating)
	})
	return s.bar, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(tether.Handle) {
	s.bar.SetOnRatingChangeListener(nil)
}

// Current implements tether.Stateful.
func (s *Source) Current() (float64, bool) {
	return s.bar.Rating(), true
}
