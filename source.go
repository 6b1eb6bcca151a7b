package tether

// Handle is the opaque registration token returned by Source.Attach and
// required by Source.Detach. Exactly one handle exists per active binding.
type Handle any

// Source adapts a one-shot, callback-registration style event source into
// something a Binding or Events stream can consume. Implementations supply
// only the attach/detach pair; the bridge owns everything else.
//
// Attach installs a listener on the native source. The emit function reports
// whether the value was accepted; it never blocks and never panics, so it is
// safe to call from any callback site, including after the consumer has torn
// down. Attach must install the listener before returning so that no event
// between registration and the first consumer read is lost.
//
// Detach removes the listener identified by the handle. The bridge guarantees
// Detach is called at most once per Attach, and always eventually once the
// stream is abandoned or its context is cancelled.
//
// A native source holds at most one bridge-installed listener at a time.
// Attaching a second bridge without detaching the first silently overwrites
// the earlier listener; that is a caller error, not detected here.
type Source[T any] interface {
	Attach(emit func(T) bool) (Handle, error)
	Detach(h Handle)
}

// Stateful is implemented by sources whose widget has observable current
// state (current selection, current page). Bind and Events pre-seed the
// stream with this value so the consumer observes the state at subscription
// time even if no native event ever fires. The second return is false when
// the widget has no value yet (for example, no radio button checked).
type Stateful[T any] interface {
	Current() (T, bool)
}

// Distinctable is implemented by sources whose widget fires its listener on
// internal updates even when the externally meaningful value has not changed.
// Events for which Distinct reports true against the previously accepted
// value are suppressed before they reach the relay. The first event is never
// suppressed.
type Distinctable[T any] interface {
	Distinct(prev, next T) bool
}

// SourceFunc builds a Source from bare functions. Useful for inline sources
// and tests that do not warrant a named adapter type.
type SourceFunc[T any] struct {
	AttachFunc func(emit func(T) bool) (Handle, error)
	DetachFunc func(h Handle)
}

// Attach implements Source.
func (s SourceFunc[T]) Attach(emit func(T) bool) (Handle, error) {
	return s.AttachFunc(emit)
}

// Detach implements Source.
func (s SourceFunc[T]) Detach(h Handle) {
	if s.DetachFunc != nil {
		s.DetachFunc(h)
	}
}

// ByValue returns an equality function for comparable event types, for use
// with Binding.Distinct and WithDistinct.
func ByValue[T comparable]() func(prev, next T) bool {
	return func(prev, next T) bool { return prev == next }
}
