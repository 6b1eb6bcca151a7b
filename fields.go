package tether

import "github.com/zoobzio/capitan"

// Field keys for Binding events.
var (
	// KeyState is the current state of the Binding.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyCapacity is the relay capacity policy.
	KeyCapacity = capitan.NewStringKey("capacity")

	// KeySeq is the per-binding sequence number of an event.
	KeySeq = capitan.NewIntKey("seq")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
