// Package fsevent provides a tether.Source for filesystem events using
// fsnotify. It is not a widget adapter; it exists to show the bridge
// generalizes to any callback-shaped native source, and it is handy for
// binding UI to on-disk state (theme files, user preferences).
package fsevent

import (
	"github.com/fsnotify/fsnotify"

	"github.com/zoobzio/tether"
)

// Source adapts an fsnotify.Watcher's event channel into a tether.Source.
// The caller owns the watcher: adding paths and closing it remain the
// caller's responsibility. Detach stops the pump without closing the
// watcher.
type Source struct {
	watcher *fsnotify.Watcher
	ops     fsnotify.Op
}

// Option configures a Source.
type Option func(*Source)

// FilterOps restricts the stream to events matching any of the given
// operations, e.g. fsnotify.Write|fsnotify.Create.
func FilterOps(ops fsnotify.Op) Option {
	return func(s *Source) {
		s.ops = ops
	}
}

// Changes creates a Source emitting the watcher's filesystem events.
func Changes(w *fsnotify.Watcher, opts ...Option) *Source {
	s := &Source{watcher: w}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach implements tether.Source. It installs a pump goroutine forwarding
// the watcher's events through the guarded emitter until Detach is called
// or the watcher closes.
func (s *Source) Attach(emit func(fsnotify.Event) bool) (tether.Handle, error) {
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-s.watcher.Events:
				if !ok {
					return
				}
				if s.ops != 0 && ev.Op&s.ops == 0 {
					continue
				}
				emit(ev)
			}
		}
	}()
	return stop, nil
}

// Detach implements tether.Source.
func (s *Source) Detach(h tether.Handle) {
	if stop, ok := h.(chan struct{}); ok {
		close(stop)
	}
}
