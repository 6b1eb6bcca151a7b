package tether

import (
	"testing"
	"time"
)

func never() <-chan struct{} {
	return nil
}

func TestRelay_Conflated_NewestWins(t *testing.T) {
	r := newRelay[int](Conflated())

	for _, v := range []int{1, 2, 3, 4, 5} {
		if !r.trySend(v) {
			t.Fatalf("trySend(%d) rejected", v)
		}
	}

	v, ok := r.receive(never())
	if !ok {
		t.Fatal("expected a value")
	}
	if v != 5 {
		t.Errorf("expected 5 (newest wins), got %d", v)
	}

	if _, ok := r.drain(); ok {
		t.Error("expected no further pending value")
	}
}

func TestRelay_Buffered_FIFOOrder(t *testing.T) {
	r := newRelay[int](Buffered(3))

	for _, v := range []int{1, 2, 3} {
		if !r.trySend(v) {
			t.Fatalf("trySend(%d) rejected", v)
		}
	}

	for _, want := range []int{1, 2, 3} {
		got, ok := r.receive(never())
		if !ok {
			t.Fatal("expected a value")
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
}

func TestRelay_Buffered_DropOldestOnOverflow(t *testing.T) {
	r := newRelay[int](Buffered(2))

	r.trySend(1)
	r.trySend(2)
	if !r.trySend(3) {
		t.Fatal("drop-oldest overflow should accept the new value")
	}

	for _, want := range []int{2, 3} {
		got, ok := r.receive(never())
		if !ok || got != want {
			t.Errorf("expected %d, got %d (ok=%v)", want, got, ok)
		}
	}
}

func TestRelay_Buffered_DropNewestOnOverflow(t *testing.T) {
	r := newRelay[int](BufferedOverflow(2, OverflowDropNewest))

	r.trySend(1)
	r.trySend(2)
	if r.trySend(3) {
		t.Fatal("drop-newest overflow should reject the new value")
	}

	for _, want := range []int{1, 2} {
		got, ok := r.receive(never())
		if !ok || got != want {
			t.Errorf("expected %d, got %d (ok=%v)", want, got, ok)
		}
	}
}

func TestRelay_Unlimited_KeepsEverything(t *testing.T) {
	r := newRelay[int](Unlimited())

	for i := 0; i < 100; i++ {
		if !r.trySend(i) {
			t.Fatalf("trySend(%d) rejected", i)
		}
	}
	for i := 0; i < 100; i++ {
		got, ok := r.receive(never())
		if !ok || got != i {
			t.Fatalf("expected %d, got %d (ok=%v)", i, got, ok)
		}
	}
}

func TestRelay_Rendezvous_RejectsWithoutWaitingConsumer(t *testing.T) {
	r := newRelay[int](Rendezvous())

	if r.trySend(1) {
		t.Error("rendezvous should reject a value with no waiting consumer")
	}
}

func TestRelay_Rendezvous_HandsOffToWaitingConsumer(t *testing.T) {
	r := newRelay[int](Rendezvous())

	got := make(chan int, 1)
	go func() {
		v, ok := r.receive(never())
		if ok {
			got <- v
		}
	}()

	// Retry until the consumer is parked.
	deadline := time.Now().Add(time.Second)
	for !r.trySend(42) {
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for consumer to park")
		}
		time.Sleep(time.Millisecond)
	}

	select {
	case v := <-got:
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for handoff")
	}
}

func TestRelay_Seed_SurvivesRendezvousPolicy(t *testing.T) {
	r := newRelay[int](Rendezvous())

	r.seed(7)

	v, ok := r.receive(never())
	if !ok || v != 7 {
		t.Errorf("expected seeded 7, got %d (ok=%v)", v, ok)
	}
}

func TestRelay_Seed_ConflatedOverwritten(t *testing.T) {
	r := newRelay[int](Conflated())

	r.seed(7)
	r.trySend(8)

	v, ok := r.receive(never())
	if !ok || v != 8 {
		t.Errorf("expected 8 to supersede seed, got %d (ok=%v)", v, ok)
	}
}

func TestRelay_TrySendAfterCloseReturnsFalse(t *testing.T) {
	r := newRelay[int](Unlimited())
	r.close()

	if r.trySend(1) {
		t.Error("trySend after close should report false")
	}
}

func TestRelay_ReceiveDrainsThenReportsClosed(t *testing.T) {
	r := newRelay[int](Unlimited())
	r.trySend(1)
	r.trySend(2)
	r.close()

	for _, want := range []int{1, 2} {
		got, ok := r.receive(never())
		if !ok || got != want {
			t.Errorf("expected %d before closed, got %d (ok=%v)", want, got, ok)
		}
	}
	if _, ok := r.receive(never()); ok {
		t.Error("expected closed after drain")
	}
}

func TestRelay_CloseRunsFinalizerExactlyOnce(t *testing.T) {
	r := newRelay[int](Conflated())

	var calls int
	r.onClose = func() { calls++ }

	done := make(chan struct{})
	go func() {
		r.close()
		close(done)
	}()
	r.close()
	<-done

	if calls != 1 {
		t.Errorf("expected exactly 1 finalizer call, got %d", calls)
	}
}

func TestRelay_CloseWakesBlockedReceiver(t *testing.T) {
	r := newRelay[int](Conflated())

	woke := make(chan bool, 1)
	go func() {
		_, ok := r.receive(never())
		woke <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	r.close()

	select {
	case ok := <-woke:
		if ok {
			t.Error("expected ok=false from closed relay")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for receiver to wake")
	}
}

func TestRelay_CancelWakesBlockedReceiver(t *testing.T) {
	r := newRelay[int](Conflated())
	cancel := make(chan struct{})

	woke := make(chan bool, 1)
	go func() {
		_, ok := r.receive(cancel)
		woke <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	close(cancel)

	select {
	case ok := <-woke:
		if ok {
			t.Error("expected ok=false from cancelled receive")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for receiver to wake")
	}
}

func TestBufferedPanicsOnZeroSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for Buffered(0)")
		}
	}()
	Buffered(0)
}
