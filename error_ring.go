package tether

import "sync"

// Failure records one failed action invocation.
type Failure struct {
	// Seq is the sequence number of the event whose action failed.
	Seq uint64

	// Err is the error the pipeline returned.
	Err error
}

// failureRing is a thread-safe ring buffer retaining the most recent action
// failures of a binding.
type failureRing struct {
	mu       sync.RWMutex
	failures []Failure
	size     int
	head     int
	count    int
}

// newFailureRing creates a failure ring with the given capacity.
// If size is 0, the ring is disabled and all operations are no-ops.
func newFailureRing(size int) *failureRing {
	if size <= 0 {
		return nil
	}
	return &failureRing{
		failures: make([]Failure, size),
		size:     size,
	}
}

// push adds a failure, evicting the oldest when full.
func (r *failureRing) push(seq uint64, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures[r.head] = Failure{Seq: seq, Err: err}
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns the retained failures, oldest first.
func (r *failureRing) all() []Failure {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]Failure, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.failures[(start+i)%r.size]
	}
	return result
}
