package tether

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// streamConfig holds per-call configuration for Events.
type streamConfig[T any] struct {
	capacity Capacity
	distinct func(prev, next T) bool
	noReplay bool
}

// StreamOption configures an Events stream.
type StreamOption[T any] func(*streamConfig[T])

// WithCapacity sets the relay's buffering policy. Default: Conflated.
func WithCapacity[T any](c Capacity) StreamOption[T] {
	return func(cfg *streamConfig[T]) {
		cfg.capacity = c
	}
}

// WithDistinct sets the duplicate-suppression rule, overriding whatever the
// source supplies via Distinctable. Use ByValue for comparable types.
func WithDistinct[T any](eq func(prev, next T) bool) StreamOption[T] {
	return func(cfg *streamConfig[T]) {
		cfg.distinct = eq
	}
}

// WithoutReplay disables subscription-time replay for a Stateful source.
func WithoutReplay[T any]() StreamOption[T] {
	return func(cfg *streamConfig[T]) {
		cfg.noReplay = true
	}
}

// Events attaches to the source and returns its values as a channel for
// external consumption: iteration, transformation, select loops.
//
// The stream is finite-until-cancelled and not restartable: when ctx is
// cancelled the channel closes and the native listener is detached exactly
// once; observing the widget again requires a new call. For a Stateful
// source the widget's current value is seeded before the listener is
// attached, so the first receive observes the subscription-time state even
// if no native event ever fires.
//
// Example:
//
//	pages, err := tether.Events[int](ctx, pager.PageChanges(p))
//	if err != nil {
//	    return err
//	}
//	for page := range pages {
//	    render(page)
//	}
func Events[T any](ctx context.Context, source Source[T], opts ...StreamOption[T]) (<-chan T, error) {
	cfg := streamConfig[T]{capacity: Conflated()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.distinct == nil {
		if d, ok := source.(Distinctable[T]); ok {
			cfg.distinct = d.Distinct
		}
	}

	r := newRelay[T](cfg.capacity)

	if !cfg.noReplay {
		if s, ok := source.(Stateful[T]); ok {
			if v, ok := s.Current(); ok {
				r.seed(v)
				capitan.Emit(ctx, EventReplayed)
			}
		}
	}

	handle, err := source.Attach(streamEmitter(ctx, r, cfg.distinct))
	if err != nil {
		r.close()
		return nil, fmt.Errorf("failed to attach listener: %w", err)
	}
	capitan.Emit(ctx, ListenerAttached, KeyCapacity.Field(cfg.capacity.String()))

	r.onClose = func() {
		source.Detach(handle)
		capitan.Emit(ctx, ListenerDetached)
	}

	out := make(chan T)
	go func() {
		defer close(out)
		defer r.close()
		for {
			v, ok := r.receive(ctx.Done())
			if !ok {
				return
			}
			// Values still queued at cancellation are discarded, not
			// delivered: the consumer's scope is already inactive.
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// streamEmitter builds the guarded emission function for a pull stream.
// Like Binding's emitter it never blocks and never panics at the native
// callback site.
func streamEmitter[T any](ctx context.Context, r *relay[T], distinct func(prev, next T) bool) func(T) bool {
	var last T
	var haveLast bool

	return func(v T) bool {
		if distinct != nil {
			if haveLast && distinct(last, v) {
				capitan.Emit(ctx, EventSuppressed)
				return false
			}
			last, haveLast = v, true
		}
		if !r.trySend(v) {
			capitan.Emit(ctx, EventDropped)
			return false
		}
		capitan.Emit(ctx, EventAccepted)
		return true
	}
}
