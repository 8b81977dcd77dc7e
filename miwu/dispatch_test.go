package miwu_test

import (
	"context"
	"testing"
	"time"

	"gonpcx/miwu"
	"gonpcx/sim"
)

// TestServiceGroupWakesLatchedLines drives the dispatcher by hand
// against a sim with no interrupt sink, the way a vector stub calls it
// on hardware: only the lines in the pending snapshot wake, and only
// their enable bits drop.
func TestServiceGroupWakesLatchedLines(t *testing.T) {
	a := sim.New()
	miwu.SetRegisterBanks(a.Banks())
	miwu.ClearWakeEvents()

	w2 := miwu.New(miwu.MIWU2_52)
	defer w2.Close()
	w5 := miwu.New(miwu.MIWU2_55)
	defer w5.Close()
	w6 := miwu.New(miwu.MIWU2_56)
	defer w6.Close()

	ctx6, cancel6 := context.WithCancel(context.Background())
	defer cancel6()

	errs2 := make(chan error, 1)
	errs5 := make(chan error, 1)
	errs6 := make(chan error, 1)
	go func() { errs2 <- w2.WaitForRisingEdge(context.Background()) }()
	go func() { errs5 <- w5.WaitForRisingEdge(context.Background()) }()
	go func() { errs6 <- w6.WaitForRisingEdge(ctx6) }()
	waitArmed(t, a, miwu.MIWU2_52)
	waitArmed(t, a, miwu.MIWU2_55)
	waitArmed(t, a, miwu.MIWU2_56)

	// With no sink bound the edges latch but nothing runs the handler.
	a.SetLevel(miwu.MIWU2_52, true)
	a.SetLevel(miwu.MIWU2_55, true)

	gs := a.Group(2, 4)
	if want := uint8(1<<2 | 1<<5); gs.Pending != want {
		t.Fatalf("pending = %#02x, want %#02x", gs.Pending, want)
	}
	if want := uint8(1<<2 | 1<<5 | 1<<6); gs.Enable != want {
		t.Fatalf("enable = %#02x, want %#02x", gs.Enable, want)
	}

	miwu.ServiceGroup(2, 4)

	for i, errs := range []chan error{errs2, errs5} {
		select {
		case err := <-errs:
			if err != nil {
				t.Fatalf("waiter %d: %v", i, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("waiter %d not woken by dispatch", i)
		}
	}
	select {
	case err := <-errs6:
		t.Fatalf("idle waiter returned %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	gs = a.Group(2, 4)
	if want := uint8(1 << 6); gs.Enable != want {
		t.Errorf("enable after dispatch = %#02x, want %#02x", gs.Enable, want)
	}
	if want := uint8(1<<2 | 1<<5); gs.Pending != want {
		t.Errorf("dispatch changed pending to %#02x, want %#02x", gs.Pending, want)
	}

	events := miwu.WakeEvents()
	if len(events) != 2 {
		t.Fatalf("recorded %d wake events, want 2", len(events))
	}
	if events[0].Line != miwu.MIWU2_52 || events[1].Line != miwu.MIWU2_55 {
		t.Errorf("wake order = %s, %s; want %s, %s",
			events[0].Line, events[1].Line, miwu.MIWU2_52, miwu.MIWU2_55)
	}

	cancel6()
	select {
	case err := <-errs6:
		if err != context.Canceled {
			t.Fatalf("idle waiter returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("idle waiter never returned after cancellation")
	}
}

func TestServiceGroupEmptyPending(t *testing.T) {
	a := sim.New()
	miwu.SetRegisterBanks(a.Banks())
	miwu.ClearWakeEvents()

	w := miwu.New(miwu.MIWU2_51)
	defer w.Close()
	w.Enable(miwu.AnyEdge)

	// Spurious interrupt: nothing pending, nothing should change.
	miwu.ServiceGroup(2, 4)

	if !a.Enabled(miwu.MIWU2_51) {
		t.Error("spurious dispatch dropped an enable bit")
	}
	if events := miwu.WakeEvents(); len(events) != 0 {
		t.Errorf("spurious dispatch recorded %d events", len(events))
	}
}
