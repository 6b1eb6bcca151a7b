package tether

// State represents the current state of a Binding.
type State int32

const (
	// StateIdle indicates the Binding has been constructed but Start has
	// not been called.
	StateIdle State = iota

	// StateActive indicates the listener is attached and events are being
	// processed.
	StateActive

	// StateDegraded indicates an action failed on a Binding configured
	// with ContinueOnError. Processing continues; the failure is retained
	// in the error history.
	StateDegraded

	// StateStopped indicates the Binding terminated normally: its context
	// was cancelled or Stop was called, and the listener is detached.
	StateStopped

	// StateFailed indicates an action failed and terminated the Binding.
	// The listener is detached; the failure is available via Err.
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateDegraded:
		return "degraded"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
