// Package miwu drives the NPCX Multi-Input Wake-Up unit: 192 wake
// lines fanned into three controllers of eight groups each, every
// line individually configurable as a level- or edge-triggered source
// with a hardware-latched pending bit.
//
// A WakeUp handle owns one line. The synchronous surface configures
// and polls the line; WaitFor suspends the calling goroutine until
// the configured condition latches, bridging the group interrupt into
// the waiter. ServiceGroup is the interrupt entry the 24 hardware
// vectors bind to.
package miwu

import "sync/atomic"

// claimed tracks which lines have a live handle. At most one WakeUp
// exists per line at a time.
var claimed [LineCount]atomic.Bool

// WakeUp is the owning driver handle for one wake-up line.
type WakeUp struct {
	line     Line
	coord    Coord
	released atomic.Bool
}

// New claims a line and returns its handle. A line with a live handle
// cannot be claimed again; doing so is a programming error and
// panics. Close releases the claim.
func New(line Line) *WakeUp {
	coord := line.Coord()
	if !claimed[line].CompareAndSwap(false, true) {
		panic("miwu: line already claimed: " + line.String())
	}
	return &WakeUp{line: line, coord: coord}
}

// Line returns the claimed line.
func (w *WakeUp) Line() Line { return w.line }

// Close disables the line and releases the claim, so no line is left
// armed after its handle goes away. Only the first call acts: a stale
// handle closed twice cannot disarm or release a later claim on the
// same line.
func (w *WakeUp) Close() {
	if !w.released.CompareAndSwap(false, true) {
		return
	}
	w.Disable()
	claimed[w.line].Store(false)
}

// Enable configures the line to latch on cond and unmasks its
// interrupt. Stale pending state is cleared before the enable bit is
// set, so an event from before this call, or from while the line was
// disabled, is not resurfaced.
//
// The whole sequence runs in one critical section: every step except
// the pending clear is a read-modify-write on registers shared with
// the other seven lines of the group and with the group's interrupt
// handler.
func (w *WakeUp) Enable(cond Condition) {
	if cond == nil {
		panic("miwu: nil condition")
	}
	bank := mustBank(w.coord.Controller)
	g := w.coord.Group
	bit := uint8(1) << w.coord.Subgroup

	state := disableInterrupts()
	defer restoreInterrupts(state)

	clearBits(bank.Enable[g], bit)
	switch c := cond.(type) {
	case Level:
		setBits(bank.Mode[g], bit)
		if c == High {
			clearBits(bank.EdgePolarity[g], bit)
		} else {
			setBits(bank.EdgePolarity[g], bit)
		}
	case Edge:
		clearBits(bank.Mode[g], bit)
		switch c {
		case AnyEdge:
			setBits(bank.AnyEdge[g], bit)
		case RisingEdge:
			clearBits(bank.AnyEdge[g], bit)
			clearBits(bank.EdgePolarity[g], bit)
		case FallingEdge:
			clearBits(bank.AnyEdge[g], bit)
			setBits(bank.EdgePolarity[g], bit)
		}
	}
	setBits(bank.InputEnable[g], bit)
	bank.PendingClear[g].Set(bit)
	setBits(bank.Enable[g], bit)
}

// Disable masks the line's interrupt. Detection configuration and any
// latched pending bit are left alone. Idempotent.
func (w *WakeUp) Disable() {
	bank := mustBank(w.coord.Controller)

	state := disableInterrupts()
	defer restoreInterrupts(state)

	clearBits(bank.Enable[w.coord.Group], uint8(1)<<w.coord.Subgroup)
}

// ClearPending clears the line's latched pending bit. The register is
// write-1-to-clear, so the single write cannot disturb sibling lines
// and needs no critical section.
func (w *WakeUp) ClearPending() {
	mustBank(w.coord.Controller).PendingClear[w.coord.Group].Set(uint8(1) << w.coord.Subgroup)
}

// IsPending reports whether the configured condition has latched.
func (w *WakeUp) IsPending() bool {
	return mustBank(w.coord.Controller).Pending[w.coord.Group].Get()&(uint8(1)<<w.coord.Subgroup) != 0
}

// IsHigh reports the live input level, independent of the configured
// condition.
func (w *WakeUp) IsHigh() bool {
	return mustBank(w.coord.Controller).Status[w.coord.Group].Get()&(uint8(1)<<w.coord.Subgroup) != 0
}
