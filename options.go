package tether

import (
	"context"
	"time"

	"github.com/zoobzio/pipz"
)

// Option configures the processing pipeline of a Binding. Pipeline options
// wrap the per-event action with middleware for retry, timeout, circuit
// breaking, and other reliability patterns.
//
// Instance configuration (capacity, replay, distinct, debounce, etc.) is
// handled via chainable methods on the Binding before calling Start().
type Option[T any] func(pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]]

// buildPipeline wraps a terminal with pipeline options.
func buildPipeline[T any](terminal pipz.Chainable[*Event[T]], opts []Option[T]) pipz.Chainable[*Event[T]] {
	pipeline := terminal
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// -----------------------------------------------------------------------------
// Pipeline Options - Wrapping (With*)
// -----------------------------------------------------------------------------
// These options wrap the entire pipeline, providing protection at the boundary.

// WithRetry wraps the pipeline with retry logic.
// Failed actions are retried immediately up to maxAttempts times.
// For exponential backoff between retries, use WithBackoff instead.
func WithRetry[T any](maxAttempts int) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		return pipz.NewRetry("retry", p, maxAttempts)
	}
}

// WithBackoff wraps the pipeline with exponential backoff retry logic.
// Failed actions are retried with increasing delays: baseDelay, 2*baseDelay,
// 4*baseDelay, etc.
func WithBackoff[T any](maxAttempts int, baseDelay time.Duration) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		return pipz.NewBackoff("backoff", p, maxAttempts, baseDelay)
	}
}

// WithTimeout wraps the pipeline with a timeout.
// If an action takes longer than the specified duration, it fails with a
// timeout error. Remember that actions run strictly sequentially: a slow
// action delays every queued event behind it.
func WithTimeout[T any](d time.Duration) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		return pipz.NewTimeout("timeout", p, d)
	}
}

// WithFallback wraps the pipeline with fallback processors.
// If the primary pipeline fails, each fallback is tried in order until one
// succeeds.
func WithFallback[T any](fallbacks ...pipz.Chainable[*Event[T]]) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		all := append([]pipz.Chainable[*Event[T]]{p}, fallbacks...)
		return pipz.NewFallback("fallback", all...)
	}
}

// WithCircuitBreaker wraps the pipeline with circuit breaker protection.
// After 'failures' consecutive failures, the circuit opens and rejects
// further events until 'recovery' time has passed. Useful with
// ContinueOnError when the action talks to something that can be down.
func WithCircuitBreaker[T any](failures int, recovery time.Duration) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		return pipz.NewCircuitBreaker("circuit-breaker", p, failures, recovery)
	}
}

// WithErrorHandler adds error observation to the pipeline.
// Errors are passed to the handler for logging, metrics, or alerting,
// but the error still propagates. Use this for observability, not recovery.
func WithErrorHandler[T any](handler pipz.Chainable[*pipz.Error[*Event[T]]]) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		return pipz.NewHandle("error-handler", p, handler)
	}
}

// WithMiddleware wraps the pipeline with a sequence of processors.
// Processors execute in order, with the wrapped pipeline (the action) last.
//
// Use the Use* functions to create processors for common patterns,
// or provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	tether.Bind(
//	    radiogroup.CheckedChanges(group),
//	    applySelection,
//	    tether.WithMiddleware(
//	        tether.UseEffect[int]("log", logFn),
//	        tether.UseFilter[int]("skip-replay", isLive, handleLive),
//	    ),
//	    tether.WithRetry[int](3),
//	)
func WithMiddleware[T any](processors ...pipz.Chainable[*Event[T]]) Option[T] {
	return func(p pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
		all := make([]pipz.Chainable[*Event[T]], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence("middleware", all...)
	}
}

// -----------------------------------------------------------------------------
// Middleware Processors - Adapters (Use*)
// -----------------------------------------------------------------------------
// These create processors for use inside WithMiddleware.

// UseTransform creates a processor that transforms the event.
// Cannot fail. Use for pure transformations that always succeed.
func UseTransform[T any](name string, fn func(context.Context, *Event[T]) *Event[T]) pipz.Chainable[*Event[T]] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the event and fail.
func UseApply[T any](name string, fn func(context.Context, *Event[T]) (*Event[T], error)) pipz.Chainable[*Event[T]] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect.
// The event passes through unchanged. Use for logging, metrics,
// or notifications that should not affect the event value.
func UseEffect[T any](name string, fn func(context.Context, *Event[T]) error) pipz.Chainable[*Event[T]] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseMutate creates a processor that conditionally transforms the event.
// The transformer is only applied if the condition returns true.
func UseMutate[T any](name string, transformer func(context.Context, *Event[T]) *Event[T], condition func(context.Context, *Event[T]) bool) pipz.Chainable[*Event[T]] {
	return pipz.Mutate(pipz.Name(name), transformer, condition)
}

// UseEnrich creates a processor that attempts optional enhancement.
// If the enrichment fails, the error is logged but processing continues
// with the original event.
func UseEnrich[T any](name string, fn func(context.Context, *Event[T]) (*Event[T], error)) pipz.Chainable[*Event[T]] {
	return pipz.Enrich(pipz.Name(name), fn)
}

// -----------------------------------------------------------------------------
// Middleware Processors - Wrapping (Use*)
// -----------------------------------------------------------------------------

// UseRetry wraps a processor with retry logic.
func UseRetry[T any](maxAttempts int, processor pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
	return pipz.NewRetry("retry", processor, maxAttempts)
}

// UseBackoff wraps a processor with exponential backoff retry logic.
func UseBackoff[T any](maxAttempts int, baseDelay time.Duration, processor pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
	return pipz.NewBackoff("backoff", processor, maxAttempts, baseDelay)
}

// UseTimeout wraps a processor with a deadline.
func UseTimeout[T any](d time.Duration, processor pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
	return pipz.NewTimeout("timeout", processor, d)
}

// UseFallback wraps a processor with fallback alternatives.
// If the primary fails, each fallback is tried in order.
func UseFallback[T any](primary pipz.Chainable[*Event[T]], fallbacks ...pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
	all := append([]pipz.Chainable[*Event[T]]{primary}, fallbacks...)
	return pipz.NewFallback("fallback", all...)
}

// UseFilter wraps a processor with a condition.
// If the condition returns false, the event passes through unchanged.
func UseFilter[T any](name string, condition func(context.Context, *Event[T]) bool, processor pipz.Chainable[*Event[T]]) pipz.Chainable[*Event[T]] {
	return pipz.NewFilter(pipz.Name(name), condition, processor)
}

// UseRateLimit creates a processor that limits event throughput.
// Events beyond the rate wait for capacity.
func UseRateLimit[T any](rate float64, burst int) pipz.Chainable[*Event[T]] {
	return pipz.NewRateLimiter[*Event[T]]("rate-limiter", rate, burst)
}
