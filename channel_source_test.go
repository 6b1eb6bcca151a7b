package tether

import (
	"context"
	"testing"
	"time"
)

func TestChannelSource_ForwardsValues(t *testing.T) {
	ch := make(chan int, 4)
	src := NewChannelSource(ch)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Events[int](ctx, src, WithCapacity[int](Unlimited()))
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	ch <- 1
	ch <- 2
	ch <- 3

	for _, want := range []int{1, 2, 3} {
		select {
		case v := <-events:
			if v != want {
				t.Errorf("expected %d, got %d", want, v)
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for value")
		}
	}
}

func TestChannelSource_DetachStopsPump(t *testing.T) {
	ch := make(chan int)
	src := NewChannelSource(ch)

	received := make(chan int, 1)
	h, err := src.Attach(func(v int) bool {
		received <- v
		return true
	})
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	ch <- 10
	select {
	case v := <-received:
		if v != 10 {
			t.Errorf("expected 10, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for pumped value")
	}

	src.Detach(h)

	// The pump must no longer consume; the unbuffered send would block
	// forever if nothing reads, so probe with a timeout.
	select {
	case ch <- 11:
		t.Error("expected pump stopped, but send was consumed")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChannelSource_StatefulTracksLastValue(t *testing.T) {
	ch := make(chan string, 1)
	src := NewStatefulChannelSource(ch, "initial")

	if v, ok := src.Current(); !ok || v != "initial" {
		t.Fatalf("expected current %q, got %q (ok=%v)", "initial", v, ok)
	}

	h, err := src.Attach(func(string) bool { return true })
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer src.Detach(h)

	ch <- "updated"
	if !waitFor(t, time.Second, func() bool {
		v, ok := src.Current()
		return ok && v == "updated"
	}) {
		t.Fatal("expected current value to track the last forwarded value")
	}
}

func TestChannelSource_UntrackedHasNoCurrent(t *testing.T) {
	src := NewChannelSource(make(chan int))
	if _, ok := src.Current(); ok {
		t.Error("expected no current value without tracking")
	}
}

func TestChannelSource_ClosedChannelStopsPump(t *testing.T) {
	ch := make(chan int)
	src := NewChannelSource(ch)

	h, err := src.Attach(func(int) bool { return true })
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer src.Detach(h)

	close(ch)
	// Pump exits on channel close; detach on a stopped pump stays safe.
	time.Sleep(10 * time.Millisecond)
}
