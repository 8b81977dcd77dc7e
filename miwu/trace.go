package miwu

// Event is one dispatched wake, kept for post-mortem wake-source
// queries.
type Event struct {
	Seq  uint32 // monotonic wake counter, starts at 1
	Line Line
}

// EventFunc receives each wake as it is dispatched. It runs in
// interrupt context and must not block.
type EventFunc func(Event)

const eventRingSize = 32

var (
	eventFunc EventFunc

	// Wake history ring. Guarded by the interrupt-disable critical
	// section, like the group registers.
	eventRing     [eventRingSize]Event
	eventRingHead uint8
	eventSeq      uint32
)

// SetEventFunc installs a hook called for every dispatched wake, or
// removes it when fn is nil. The hook runs in interrupt context.
func SetEventFunc(fn EventFunc) {
	state := disableInterrupts()
	eventFunc = fn
	restoreInterrupts(state)
}

// recordWakeEvent appends to the wake history and feeds the hook.
// Non-blocking, allocation free. The hook runs outside the critical
// section, so it may query the history itself.
func recordWakeEvent(line Line) {
	state := disableInterrupts()
	eventSeq++
	ev := Event{Seq: eventSeq, Line: line}
	eventRing[eventRingHead] = ev
	eventRingHead = (eventRingHead + 1) % eventRingSize
	fn := eventFunc
	restoreInterrupts(state)

	if fn != nil {
		fn(ev)
	}
}

// WakeEvents returns the recorded wake history, oldest first. The
// snapshot is taken in one critical section, so it is safe against
// concurrent dispatches.
func WakeEvents() []Event {
	out := make([]Event, 0, eventRingSize)

	state := disableInterrupts()
	start := eventRingHead
	for i := uint8(0); i < eventRingSize; i++ {
		ev := eventRing[(start+i)%eventRingSize]
		if ev.Seq == 0 {
			continue
		}
		out = append(out, ev)
	}
	restoreInterrupts(state)

	return out
}

// ClearWakeEvents resets the wake history and counter.
func ClearWakeEvents() {
	state := disableInterrupts()
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventSeq = 0
	restoreInterrupts(state)
}
