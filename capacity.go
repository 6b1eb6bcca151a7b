package tether

import "fmt"

// Overflow selects what a full buffered relay does with a new value.
// The producer is always a native UI callback, which must never block, so
// there is no blocking policy; full means a value is discarded, the only
// question is which one.
type Overflow int

const (
	// OverflowDropOldest discards the oldest unread value to admit the new
	// one (most-recent-wins).
	OverflowDropOldest Overflow = iota

	// OverflowDropNewest rejects the incoming value and keeps the queue
	// as is.
	OverflowDropNewest
)

// String returns the string representation of the overflow policy.
func (o Overflow) String() string {
	switch o {
	case OverflowDropOldest:
		return "drop-oldest"
	case OverflowDropNewest:
		return "drop-newest"
	default:
		return "unknown"
	}
}

type capacityKind int

const (
	capConflated capacityKind = iota
	capRendezvous
	capBuffered
	capUnlimited
)

// Capacity selects the relay channel's buffering policy. The zero value is
// Conflated, the usual choice for UI state: a burst of native events
// collapses to the latest value before the consumer catches up.
type Capacity struct {
	kind     capacityKind
	size     int
	overflow Overflow
}

// Rendezvous buffers nothing: a value is accepted only while a consumer is
// already waiting for it. Values emitted with no waiting consumer are lost.
// That is documented backpressure, not a defect.
func Rendezvous() Capacity {
	return Capacity{kind: capRendezvous}
}

// Conflated holds a single value; a newer value overwrites an unread one.
func Conflated() Capacity {
	return Capacity{kind: capConflated}
}

// Buffered holds up to n values FIFO, dropping the oldest on overflow.
// Use BufferedOverflow to drop the newest instead. Panics if n < 1.
func Buffered(n int) Capacity {
	return BufferedOverflow(n, OverflowDropOldest)
}

// BufferedOverflow holds up to n values FIFO with an explicit overflow
// policy. Panics if n < 1.
func BufferedOverflow(n int, policy Overflow) Capacity {
	if n < 1 {
		panic(fmt.Sprintf("tether: buffered capacity must be at least 1, got %d", n))
	}
	return Capacity{kind: capBuffered, size: n, overflow: policy}
}

// Unlimited holds every value FIFO without bound. Use cautiously: a stalled
// consumer means unbounded growth.
func Unlimited() Capacity {
	return Capacity{kind: capUnlimited}
}

// String returns the string representation of the capacity policy.
func (c Capacity) String() string {
	switch c.kind {
	case capRendezvous:
		return "rendezvous"
	case capConflated:
		return "conflated"
	case capBuffered:
		return fmt.Sprintf("buffered(%d,%s)", c.size, c.overflow)
	case capUnlimited:
		return "unlimited"
	default:
		return "unknown"
	}
}
