// Package tether converts one-shot, callback-registration style event
// sources into cancellable, context-bound event streams.
//
// Many widget toolkits expose state changes through a single listener slot:
// the widget accepts exactly one callback and invokes it on every change.
// tether bridges that shape into structured-concurrency Go code. The core
// type is Binding, which attaches a listener to a Source, relays values
// through a capacity-bounded queue, and runs a per-event action strictly
// sequentially until its context is cancelled.
//
// # Sources
//
// The Source interface abstracts the native listener pair. Adapter packages
// provide sources for common widget families:
//
//   - radiogroup: checked-change events with selection dedup
//   - numberpicker, seekbar, ratingbar: value-change events
//   - bottomnav, pager: item/page selection with dedup
//   - toggle, textwatch, clicks: checked, text, and click events
//   - fsevent: filesystem events via fsnotify, showing the bridge
//     generalizes beyond widgets
//
// Sources may additionally implement Stateful (the widget's current value is
// replayed at subscription time) and Distinctable (duplicate suppression).
//
// # Binding
//
// Bind runs an action for every event:
//
//	binding := tether.Bind(
//	    radiogroup.CheckedChanges(group),
//	    func(ctx context.Context, id int) error {
//	        return presenter.Select(ctx, id)
//	    },
//	).Capacity(tether.Conflated())
//
//	if err := binding.Start(ctx); err != nil {
//	    return err
//	}
//
// Cancelling ctx stops the binding: no further values are fed, an in-flight
// action finishes, the relay closes, and the native listener is detached
// exactly once.
//
// # Streams
//
// Events returns the stream itself for external consumption:
//
//	pages, err := tether.Events[int](ctx, pager.PageChanges(p))
//	if err != nil {
//	    return err
//	}
//	for page := range pages {
//	    render(page)
//	}
//
// # Capacity
//
// The relay's buffering policy is selectable per binding: Rendezvous,
// Conflated (the default), Buffered(n), or Unlimited. Under Conflated a
// burst of native events collapses to the latest value before the consumer
// catches up; UI state is presented at most once per consumer turn, not
// once per native event. That is a documented relaxation of total ordering,
// not a defect.
package tether

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// ErrAlreadyStarted is returned by Start when the binding is already running.
var ErrAlreadyStarted = errors.New("binding already started")

const actionID pipz.Name = "action"

// Binding runs a per-event action for every value a Source produces, bound
// to the lifetime of the context passed to Start.
type Binding[T any] struct {
	source   Source[T]
	pipeline pipz.Chainable[*Event[T]]
	capacity Capacity
	distinct func(prev, next T) bool
	noReplay bool
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	metrics  MetricsProvider
	onStop   func(State)
	degrade  bool

	state     atomic.Int32
	lastError atomic.Pointer[error]
	seq       atomic.Uint64
	history   *failureRing

	mu      sync.Mutex
	started bool

	rel        *relay[Event[T]]
	done       chan struct{}
	finishOnce sync.Once
}

// Bind creates a Binding that runs fn for every event the source produces.
//
// Events are processed strictly sequentially: fn is awaited before the next
// value is taken, so there are never concurrent invocations for the same
// binding. If the source implements Stateful, the widget's current value is
// replayed to fn at subscription time; if it implements Distinctable,
// consecutive duplicates are suppressed.
//
// Pipeline options (With*) wrap fn with middleware. Instance configuration
// uses chainable methods before calling Start().
//
// Example:
//
//	binding := tether.Bind(
//	    seekbar.ProgressChanges(bar, seekbar.FromUserOnly()),
//	    func(ctx context.Context, progress int) error {
//	        return player.Seek(ctx, progress)
//	    },
//	    tether.WithTimeout[int](time.Second),
//	).Capacity(tether.Conflated())
func Bind[T any](
	source Source[T],
	fn func(ctx context.Context, value T) error,
	opts ...Option[T],
) *Binding[T] {
	terminal := pipz.Effect(actionID, func(ctx context.Context, e *Event[T]) error {
		return fn(ctx, e.Value)
	})
	pipeline := buildPipeline(terminal, opts)

	b := &Binding[T]{
		source:   source,
		pipeline: pipeline,
		capacity: Conflated(),
		clock:    clockz.RealClock,
		done:     make(chan struct{}),
	}
	if d, ok := source.(Distinctable[T]); ok {
		b.distinct = d.Distinct
	}
	b.state.Store(int32(StateIdle))

	return b
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Capacity sets the relay's buffering policy.
// Default: Conflated. Must be called before Start().
func (b *Binding[T]) Capacity(c Capacity) *Binding[T] {
	b.capacity = c
	return b
}

// Distinct sets the duplicate-suppression rule, overriding whatever the
// source supplies via Distinctable. Events for which eq reports true against
// the previously accepted value never reach the relay. The first event is
// never suppressed. Use ByValue for comparable types.
// Must be called before Start().
func (b *Binding[T]) Distinct(eq func(prev, next T) bool) *Binding[T] {
	b.distinct = eq
	return b
}

// NoReplay disables subscription-time replay for a Stateful source.
// Must be called before Start().
func (b *Binding[T]) NoReplay() *Binding[T] {
	b.noReplay = true
	return b
}

// Debounce coalesces rapid event bursts: the action only runs once no new
// value has arrived for d. Default: no debounce; Conflated capacity already
// collapses bursts for most UI cases. Must be called before Start().
func (b *Binding[T]) Debounce(d time.Duration) *Binding[T] {
	b.debounce = d
	return b
}

// Clock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
// Must be called before Start().
func (b *Binding[T]) Clock(clock clockz.Clock) *Binding[T] {
	b.clock = clock
	return b
}

// SyncMode enables synchronous processing for testing.
// In sync mode, Start attaches the listener but spawns no goroutine; use
// Process() to pump queued events deterministically.
// Must be called before Start().
func (b *Binding[T]) SyncMode() *Binding[T] {
	b.syncMode = true
	return b
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (b *Binding[T]) Metrics(provider MetricsProvider) *Binding[T] {
	b.metrics = provider
	return b
}

// OnStop sets a callback invoked when the binding stops, with the final
// state. Must be called before Start().
func (b *Binding[T]) OnStop(fn func(State)) *Binding[T] {
	b.onStop = fn
	return b
}

// ContinueOnError keeps the binding alive after an action failure instead of
// terminating it. Failures are retained (see ErrorHistory) and the binding
// transitions to StateDegraded until the next successful action.
// Must be called before Start().
func (b *Binding[T]) ContinueOnError() *Binding[T] {
	b.degrade = true
	if b.history == nil {
		b.history = newFailureRing(defaultHistorySize)
	}
	return b
}

// ErrorHistorySize sets the number of recent action failures to retain.
// Must be called before Start().
func (b *Binding[T]) ErrorHistorySize(n int) *Binding[T] {
	b.history = newFailureRing(n)
	return b
}

const defaultHistorySize = 8

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the current state of the binding.
func (b *Binding[T]) State() State {
	return State(b.state.Load())
}

// Err returns the error that terminated or degraded the binding, or nil.
func (b *Binding[T]) Err() error {
	ptr := b.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent action failures, oldest first. Nil unless
// ContinueOnError or ErrorHistorySize enabled retention.
func (b *Binding[T]) ErrorHistory() []Failure {
	return b.history.all()
}

// Done returns a channel closed when the binding has fully stopped: the
// consumer loop has exited and the native listener is detached.
// In sync mode the channel is closed by Stop.
func (b *Binding[T]) Done() <-chan struct{} {
	return b.done
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start attaches the native listener and begins processing events. The
// binding runs until ctx is cancelled, Stop is called, or an action fails
// (unless ContinueOnError is set).
//
// For a Stateful source, the widget's current value is seeded into the relay
// before the listener is attached. Seeding first means the replay value can
// be superseded by a native event that fires during attachment under
// Conflated capacity; the consumer then observes only the newer value, which
// is the correct subscription-time state.
//
// Start can only be called once; subsequent calls return ErrAlreadyStarted.
// A Start that fails to attach leaves the binding idle, so Start may be
// retried after the source recovers.
func (b *Binding[T]) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return ErrAlreadyStarted
	}
	b.started = true
	b.mu.Unlock()

	b.rel = newRelay[Event[T]](b.capacity)

	// Seed before attach. See doc comment for the ordering rationale.
	if !b.noReplay {
		if s, ok := b.source.(Stateful[T]); ok {
			if v, ok := s.Current(); ok {
				seq := b.seq.Add(1)
				b.rel.seed(Event[T]{Value: v, Seq: seq, Replayed: true})
				capitan.Emit(ctx, EventReplayed, KeySeq.Field(int(seq)))
			}
		}
	}

	handle, err := b.source.Attach(b.emitter(ctx))
	if err != nil {
		b.rel.close()
		// A failed attach leaves the binding idle and startable again.
		b.mu.Lock()
		b.started = false
		b.mu.Unlock()
		return fmt.Errorf("failed to attach listener: %w", err)
	}
	capitan.Emit(ctx, ListenerAttached, KeyCapacity.Field(b.capacity.String()))

	// The finalizer runs exactly once when the relay reaches closed state,
	// whether closure came from cancellation, Stop, or an action failure.
	b.rel.onClose = func() {
		b.source.Detach(handle)
		capitan.Emit(ctx, ListenerDetached)
		if b.metrics != nil {
			b.metrics.OnDetach()
		}
	}

	b.transition(ctx, StateIdle, StateActive)
	capitan.Emit(ctx, BindingStarted,
		KeyCapacity.Field(b.capacity.String()),
		KeyDebounce.Field(b.debounce),
	)

	if b.syncMode {
		return nil
	}

	go b.run(ctx)

	return nil
}

// Stop terminates the binding without cancelling its context. Closing the
// relay detaches the native listener synchronously before Stop returns; the
// consumer loop then drains out and Done is closed. Stop is idempotent and
// safe to race with context cancellation: the detach still happens exactly
// once.
func (b *Binding[T]) Stop() {
	b.mu.Lock()
	started := b.started
	b.mu.Unlock()
	if !started || b.rel == nil {
		return
	}
	b.rel.close()
	if b.syncMode {
		b.finish(context.Background())
	}
}

// Process pumps one queued event through the pipeline.
// Only available in sync mode; used for deterministic testing.
// Returns false if no event is queued or the binding is not in sync mode.
func (b *Binding[T]) Process(ctx context.Context) bool {
	if !b.syncMode || b.rel == nil {
		return false
	}
	e, ok := b.rel.drain()
	if !ok {
		return false
	}
	_ = b.processEvent(ctx, e) //nolint:errcheck // Errors stored via setError
	return true
}

// emitter builds the guarded emission function handed to Source.Attach.
// It never blocks and never panics: a late native callback racing with
// shutdown sees false, nothing else. Native callbacks for one widget are
// serialized on the toolkit's dispatch context, so the last-accepted slot
// needs no lock.
func (b *Binding[T]) emitter(ctx context.Context) func(T) bool {
	var last T
	var haveLast bool

	return func(v T) bool {
		if b.distinct != nil {
			if haveLast && b.distinct(last, v) {
				capitan.Emit(ctx, EventSuppressed)
				return false
			}
			last, haveLast = v, true
		}

		seq := b.seq.Add(1)
		if !b.rel.trySend(Event[T]{Value: v, Seq: seq}) {
			capitan.Emit(ctx, EventDropped, KeySeq.Field(int(seq)))
			if b.metrics != nil {
				b.metrics.OnEventDropped()
			}
			return false
		}
		capitan.Emit(ctx, EventAccepted, KeySeq.Field(int(seq)))
		if b.metrics != nil {
			b.metrics.OnEventAccepted()
		}
		return true
	}
}

// run is the single-consumer processing loop. One value at a time: the
// action is awaited before the next value is taken.
func (b *Binding[T]) run(ctx context.Context) {
	defer b.finish(ctx)

	if b.debounce > 0 {
		b.runDebounced(ctx)
		return
	}

	for {
		e, ok := b.rel.receive(ctx.Done())
		if !ok {
			return
		}
		// Queued values left over at cancellation are discarded, not
		// processed: nothing runs once the owning context is inactive.
		if ctx.Err() != nil {
			return
		}
		if err := b.processEvent(ctx, e); err != nil && !b.degrade {
			return
		}
	}
}

// runDebounced coalesces bursts: a received value is held until no newer
// value arrives for the debounce duration, then processed. Newer values
// replace the held one.
func (b *Binding[T]) runDebounced(ctx context.Context) {
	var (
		timer      clockz.Timer
		pending    Event[T]
		hasPending bool
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var timerC <-chan time.Time
		if hasPending && timer != nil {
			timerC = timer.C()
		}

		e, ok, fired := b.rel.receiveOr(ctx.Done(), timerC)
		switch {
		case fired:
			hasPending = false
			if err := b.processEvent(ctx, pending); err != nil && !b.degrade {
				return
			}

		case ok:
			pending = e
			hasPending = true
			if timer == nil {
				timer = b.clock.NewTimer(b.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(b.debounce)
			}

		default:
			// Relay closed or context cancelled. On closure the held value
			// is still processed so a trailing change is not silently lost;
			// on cancellation nothing more runs.
			if hasPending && ctx.Err() == nil {
				_ = b.processEvent(ctx, pending) //nolint:errcheck // Errors stored via setError
			}
			return
		}
	}
}

// processEvent runs one event through the pipeline and records the outcome.
func (b *Binding[T]) processEvent(ctx context.Context, e Event[T]) error {
	start := b.clock.Now()

	if _, err := b.pipeline.Process(ctx, &e); err != nil {
		b.setError(e.Seq, err)
		capitan.Emit(ctx, ActionFailed,
			KeySeq.Field(int(e.Seq)),
			KeyError.Field(err.Error()),
		)
		if b.metrics != nil {
			b.metrics.OnActionFailure(b.clock.Since(start))
		}
		if b.degrade {
			b.transition(ctx, b.State(), StateDegraded)
		} else {
			b.transition(ctx, b.State(), StateFailed)
		}
		return fmt.Errorf("action failed: %w", err)
	}

	if b.State() == StateDegraded {
		b.lastError.Store(nil)
		b.transition(ctx, StateDegraded, StateActive)
	}
	capitan.Emit(ctx, ActionSucceeded, KeySeq.Field(int(e.Seq)))
	if b.metrics != nil {
		b.metrics.OnActionSuccess(b.clock.Since(start))
	}
	return nil
}

// finish closes the relay (detaching the listener if that has not happened
// yet), settles the final state, and signals Done.
func (b *Binding[T]) finish(ctx context.Context) {
	b.finishOnce.Do(func() {
		b.rel.close()
		if s := b.State(); s == StateActive || s == StateDegraded {
			b.transition(ctx, s, StateStopped)
		}
		final := b.State()
		capitan.Emit(ctx, BindingStopped, KeyState.Field(final.String()))
		if b.onStop != nil {
			b.onStop(final)
		}
		close(b.done)
	})
}

// transition updates the state and emits a state change event if changed.
func (b *Binding[T]) transition(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	b.state.Store(int32(newState))
	capitan.Emit(ctx, BindingStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
	if b.metrics != nil {
		b.metrics.OnStateChange(oldState, newState)
	}
}

// setError stores an error atomically and adds it to the failure history.
func (b *Binding[T]) setError(seq uint64, err error) {
	e := err
	b.lastError.Store(&e)
	b.history.push(seq, err)
}
