package miwu

import "sync/atomic"

// waker is the notification target of one suspended wait: a channel
// with a single buffered slot that the group handler pokes without
// blocking.
type waker struct {
	ch chan struct{}
}

// wakers holds the per-line notification slots. Fixed size, zero
// initialized, indexed by Line. A slot holds at most one target and
// publishing a new one replaces the previous: the last writer wins.
var wakers [LineCount]atomic.Pointer[waker]

func newWaker() *waker {
	return &waker{ch: make(chan struct{}, 1)}
}

// wake pokes the waker. A send that would block is dropped; the
// buffered slot already holds an undelivered wake and the waiter
// re-checks pending state when it runs.
func (wk *waker) wake() {
	select {
	case wk.ch <- struct{}{}:
	default:
	}
}

// wakeLine wakes whatever is registered for the line. An empty slot
// is a harmless no-op.
func wakeLine(line Line) {
	if wk := wakers[line].Load(); wk != nil {
		wk.wake()
	}
}
