// Package testing provides test utilities and helpers for tether binding
// testing.
package testing

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/tether"
)

// FakeSource is a scripted tether.Source for tests. Fire invokes the
// currently attached emitter directly, so tests control exactly when and in
// what order native events arrive. Attach and detach calls are counted for
// asserting the bridge's exactly-once detach guarantee.
type FakeSource[T any] struct {
	mu      sync.Mutex
	emit    func(T) bool
	current *T
	eq      func(prev, next T) bool

	attached atomic.Int32
	detached atomic.Int32
}

// NewFakeSource creates a FakeSource with no current value.
func NewFakeSource[T any]() *FakeSource[T] {
	return &FakeSource[T]{}
}

// SetCurrent makes the source Stateful with the given current value.
func (s *FakeSource[T]) SetCurrent(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &v
}

// SetDistinct makes the source Distinctable with the given equality rule.
func (s *FakeSource[T]) SetDistinct(eq func(prev, next T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eq = eq
}

// Attach implements tether.Source.
func (s *FakeSource[T]) Attach(emit func(T) bool) (tether.Handle, error) {
	s.mu.Lock()
	s.emit = emit
	s.mu.Unlock()
	s.attached.Add(1)
	return s, nil
}

// Detach implements tether.Source.
func (s *FakeSource[T]) Detach(tether.Handle) {
	s.mu.Lock()
	s.emit = nil
	s.mu.Unlock()
	s.detached.Add(1)
}

// Current implements tether.Stateful.
func (s *FakeSource[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		var zero T
		return zero, false
	}
	return *s.current, true
}

// Distinct implements tether.Distinctable. Without a rule installed via
// SetDistinct nothing is suppressed.
func (s *FakeSource[T]) Distinct(prev, next T) bool {
	s.mu.Lock()
	eq := s.eq
	s.mu.Unlock()
	if eq == nil {
		return false
	}
	return eq(prev, next)
}

// Fire invokes the attached emitter with v, as the native widget would.
// It reports whether the value was accepted, or false when no listener is
// attached (a late emission).
func (s *FakeSource[T]) Fire(v T) bool {
	s.mu.Lock()
	emit := s.emit
	s.mu.Unlock()
	if emit == nil {
		return false
	}
	return emit(v)
}

// AttachCount returns how many times Attach was called.
func (s *FakeSource[T]) AttachCount() int {
	return int(s.attached.Load())
}

// DetachCount returns how many times Detach was called.
func (s *FakeSource[T]) DetachCount() int {
	return int(s.detached.Load())
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

// WaitForState waits until the binding reaches the expected state or timeout
// occurs.
func WaitForState[T any](t *testing.T, b *tether.Binding[T], expected tether.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return b.State() == expected
	})
}

// RequireState fails the test immediately if the binding is not in the
// expected state.
func RequireState[T any](t *testing.T, b *tether.Binding[T], expected tether.State) {
	t.Helper()
	if got := b.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireDetached fails the test unless the source saw exactly one detach.
func RequireDetached[T any](t *testing.T, s *FakeSource[T]) {
	t.Helper()
	if got := s.DetachCount(); got != 1 {
		t.Fatalf("expected exactly 1 detach, got %d", got)
	}
}
