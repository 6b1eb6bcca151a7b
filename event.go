package tether

import "github.com/zoobzio/pipz"

// Event carries a single widget value through a Binding's processing
// pipeline. Middleware stages see the event before the action does and may
// transform or observe it.
type Event[T any] struct {
	// Value is the value the adapter extracted from the native event.
	Value T

	// Seq numbers accepted events per binding, starting at 1. Replay
	// seeds are numbered like any other event.
	Seq uint64

	// Replayed marks the pre-seeded subscription-time value of a stateful
	// widget, as opposed to a value produced by a native event.
	Replayed bool
}

// Terminal is the final processing stage in a Binding pipeline. It receives
// the Event after all middleware has processed it.
type Terminal[T any] pipz.Chainable[*Event[T]]
