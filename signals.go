package tether

import "github.com/zoobzio/capitan"

// Binding lifecycle signals.
var (
	// BindingStarted is emitted when a Binding attaches its listener and
	// begins processing.
	BindingStarted = capitan.NewSignal(
		"tether.binding.started",
		"Binding started, listener attached",
	)

	// BindingStopped is emitted when a Binding stops processing.
	BindingStopped = capitan.NewSignal(
		"tether.binding.stopped",
		"Binding stopped",
	)

	// BindingStateChanged is emitted when a Binding transitions between states.
	BindingStateChanged = capitan.NewSignal(
		"tether.binding.state.changed",
		"Binding state transition",
	)
)

// Listener plumbing signals.
var (
	// ListenerAttached is emitted when a native listener is installed.
	ListenerAttached = capitan.NewSignal(
		"tether.listener.attached",
		"Native listener attached",
	)

	// ListenerDetached is emitted when a native listener is removed.
	// Exactly one detach is emitted per attach.
	ListenerDetached = capitan.NewSignal(
		"tether.listener.detached",
		"Native listener detached",
	)
)

// Event flow signals.
var (
	// EventAccepted is emitted when the relay accepts a value from the
	// native listener.
	EventAccepted = capitan.NewSignal(
		"tether.event.accepted",
		"Event accepted into relay",
	)

	// EventDropped is emitted when the relay rejects a value: late
	// emission after close, rendezvous with no waiting consumer, or a
	// full drop-newest buffer.
	EventDropped = capitan.NewSignal(
		"tether.event.dropped",
		"Event dropped by relay",
	)

	// EventSuppressed is emitted when deduplication discards a value
	// equal to the previously accepted one.
	EventSuppressed = capitan.NewSignal(
		"tether.event.suppressed",
		"Duplicate event suppressed",
	)

	// EventReplayed is emitted when a stateful widget's subscription-time
	// value is seeded into the relay.
	EventReplayed = capitan.NewSignal(
		"tether.event.replayed",
		"Subscription-time value replayed",
	)
)

// Action processing signals.
var (
	// ActionSucceeded is emitted when the per-event action completes.
	ActionSucceeded = capitan.NewSignal(
		"tether.action.succeeded",
		"Per-event action completed",
	)

	// ActionFailed is emitted when the per-event action (after any
	// pipeline middleware) returns an error.
	ActionFailed = capitan.NewSignal(
		"tether.action.failed",
		"Per-event action failed",
	)
)
