package tether

import "sync"

// ChannelSource adapts an existing channel into a Source. Useful for testing
// and for producers that already expose their events as a channel.
//
// Attach starts a pump goroutine forwarding values from the channel through
// the guarded emitter; Detach stops it. Values arriving while no listener is
// attached are not consumed.
type ChannelSource[T any] struct {
	ch <-chan T

	mu      sync.Mutex
	current *T
	track   bool
}

// NewChannelSource creates a ChannelSource forwarding values from ch.
func NewChannelSource[T any](ch <-chan T) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch}
}

// NewStatefulChannelSource creates a ChannelSource that additionally tracks
// the last forwarded value and reports it via Current, making the source
// Stateful with the given initial value.
func NewStatefulChannelSource[T any](ch <-chan T, initial T) *ChannelSource[T] {
	return &ChannelSource[T]{ch: ch, current: &initial, track: true}
}

// Attach implements Source. It installs a pump goroutine reading from the
// wrapped channel until Detach is called or the channel closes.
func (s *ChannelSource[T]) Attach(emit func(T) bool) (Handle, error) {
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				if s.track {
					s.mu.Lock()
					val := v
					s.current = &val
					s.mu.Unlock()
				}
				emit(v)
			}
		}
	}()
	return stop, nil
}

// Detach implements Source.
func (s *ChannelSource[T]) Detach(h Handle) {
	if stop, ok := h.(chan struct{}); ok {
		close(stop)
	}
}

// Current returns the last forwarded value when tracking is enabled.
func (s *ChannelSource[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.track || s.current == nil {
		var zero T
		return zero, false
	}
	return *s.current, true
}
