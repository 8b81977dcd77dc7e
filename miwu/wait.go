package miwu

import "context"

// WaitFor arms the line for cond and suspends until the condition
// latches or ctx is cancelled.
//
// On cancellation the line is unconditionally disabled and its
// pending bit cleared, whether or not the event already fired: an
// abandoned wait leaks no notification and leaves nothing armed.
//
// On normal completion the pending bit is left latched and the line
// has been masked by the group handler. Clearing and re-arming are
// the caller's choice; there is no automatic re-arm.
//
// Waits on one line must be serialized by the caller. A second
// concurrent WaitFor on the same line steals the notification slot
// and the first wait is never separately woken.
func (w *WakeUp) WaitFor(ctx context.Context, cond Condition) error {
	wk := newWaker()
	wakers[w.line].Store(wk)
	defer wakers[w.line].CompareAndSwap(wk, nil)

	w.Enable(cond)

	for {
		if w.IsPending() {
			return nil
		}
		select {
		case <-wk.ch:
			// Woken by the group handler; re-check the latch.
		case <-ctx.Done():
			w.cancelWait()
			return ctx.Err()
		}
	}
}

// cancelWait tears down an abandoned wait. Disable then clear works
// whether or not the group handler already fired, and repeating it is
// harmless.
func (w *WakeUp) cancelWait() {
	w.Disable()
	w.ClearPending()
}

// WaitForHigh suspends until the input sits high.
func (w *WakeUp) WaitForHigh(ctx context.Context) error { return w.WaitFor(ctx, High) }

// WaitForLow suspends until the input sits low.
func (w *WakeUp) WaitForLow(ctx context.Context) error { return w.WaitFor(ctx, Low) }

// WaitForRisingEdge suspends until a low-to-high transition.
func (w *WakeUp) WaitForRisingEdge(ctx context.Context) error { return w.WaitFor(ctx, RisingEdge) }

// WaitForFallingEdge suspends until a high-to-low transition.
func (w *WakeUp) WaitForFallingEdge(ctx context.Context) error { return w.WaitFor(ctx, FallingEdge) }

// WaitForAnyEdge suspends until the input transitions either way.
func (w *WakeUp) WaitForAnyEdge(ctx context.Context) error { return w.WaitFor(ctx, AnyEdge) }
