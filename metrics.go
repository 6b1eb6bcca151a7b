package tether

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key binding events.
type MetricsProvider interface {
	// OnStateChange is called when the binding transitions between states.
	OnStateChange(from, to State)

	// OnEventAccepted is called when the relay accepts a value from the
	// native listener.
	OnEventAccepted()

	// OnEventDropped is called when the relay rejects a value per its
	// capacity policy, or when a late emission arrives after close.
	OnEventDropped()

	// OnActionSuccess is called when the per-event action completes.
	// Duration covers the full pipeline including middleware.
	OnActionSuccess(duration time.Duration)

	// OnActionFailure is called when the per-event action fails after any
	// pipeline middleware has run.
	OnActionFailure(duration time.Duration)

	// OnDetach is called when the native listener is detached. At most
	// once per binding.
	OnDetach()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)        {}
func (NoOpMetricsProvider) OnEventAccepted()                {}
func (NoOpMetricsProvider) OnEventDropped()                 {}
func (NoOpMetricsProvider) OnActionSuccess(_ time.Duration) {}
func (NoOpMetricsProvider) OnActionFailure(_ time.Duration) {}
func (NoOpMetricsProvider) OnDetach()                       {}
