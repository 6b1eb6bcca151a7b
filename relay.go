package tether

import (
	"sync"
	"time"
)

// relay is the queue connecting a native listener to its single consumer.
// It is exclusively owned by the bridge instance that created it: one
// producer (the native callback, via the guarded emitter) and one consumer
// (the binding's processing goroutine or the Events forwarder).
//
// trySend never blocks and never panics, so it is safe to call from a
// callback site that may race with shutdown. close is idempotent and runs
// the onClose finalizer exactly once; the finalizer is where the bridge
// detaches the native listener.
type relay[T any] struct {
	capacity Capacity

	mu      sync.Mutex
	pending []T
	waiting int
	closed  bool

	notify chan struct{}
	done   chan struct{}

	closeOnce sync.Once
	onClose   func()
}

func newRelay[T any](capacity Capacity) *relay[T] {
	return &relay[T]{
		capacity: capacity,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// trySend attempts to enqueue a value per the capacity policy. It reports
// false when the relay is closed, when a rendezvous relay has no waiting
// consumer, or when a full drop-newest buffer rejects the value.
func (r *relay[T]) trySend(v T) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}

	accepted := true
	switch r.capacity.kind {
	case capRendezvous:
		// Accepted only while a consumer is parked with nothing pending.
		if r.waiting > 0 && len(r.pending) == 0 {
			r.pending = append(r.pending, v)
		} else {
			accepted = false
		}
	case capConflated:
		if len(r.pending) == 0 {
			r.pending = append(r.pending, v)
		} else {
			r.pending[0] = v
		}
	case capBuffered:
		switch {
		case len(r.pending) < r.capacity.size:
			r.pending = append(r.pending, v)
		case r.capacity.overflow == OverflowDropOldest:
			copy(r.pending, r.pending[1:])
			r.pending[len(r.pending)-1] = v
		default:
			accepted = false
		}
	case capUnlimited:
		r.pending = append(r.pending, v)
	}
	r.mu.Unlock()

	if accepted {
		select {
		case r.notify <- struct{}{}:
		default:
		}
	}
	return accepted
}

// seed force-enqueues a replay value before the listener is attached. Replay
// bypasses the rendezvous no-waiter rule: the subscription-time state must
// survive until the consumer's first read regardless of policy.
func (r *relay[T]) seed(v T) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if r.capacity.kind == capConflated && len(r.pending) > 0 {
		r.pending[0] = v
	} else {
		r.pending = append(r.pending, v)
	}
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// receive blocks until a value is available, the relay closes, or cancel is
// closed. It reports false when no further values will arrive.
func (r *relay[T]) receive(cancel <-chan struct{}) (T, bool) {
	v, ok, _ := r.receiveOr(cancel, nil)
	return v, ok
}

// receiveOr is receive with an additional wake channel, used by the debounce
// loop to wait for whichever comes first: the next value or a timer fire.
// The third return reports that the extra channel fired while no value was
// pending.
func (r *relay[T]) receiveOr(cancel <-chan struct{}, extra <-chan time.Time) (T, bool, bool) {
	var zero T
	for {
		r.mu.Lock()
		if len(r.pending) > 0 {
			v := r.pending[0]
			r.pending = r.pending[1:]
			r.mu.Unlock()
			return v, true, false
		}
		if r.closed {
			r.mu.Unlock()
			return zero, false, false
		}
		r.waiting++
		r.mu.Unlock()

		fired := false
		select {
		case <-r.notify:
		case <-r.done:
		case <-cancel:
			r.mu.Lock()
			r.waiting--
			r.mu.Unlock()
			return zero, false, false
		case <-extra:
			fired = true
		}

		r.mu.Lock()
		r.waiting--
		r.mu.Unlock()

		if fired {
			return zero, false, true
		}
	}
}

// drain removes and returns the next pending value, if any, without
// blocking. Used by the debounce loop and by sync-mode pumping.
func (r *relay[T]) drain() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if len(r.pending) == 0 {
		return zero, false
	}
	v := r.pending[0]
	r.pending = r.pending[1:]
	return v, true
}

// close marks the relay closed and runs the onClose finalizer exactly once,
// regardless of how many paths race to close it.
func (r *relay[T]) close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.done)
		if r.onClose != nil {
			r.onClose()
		}
	})
}
