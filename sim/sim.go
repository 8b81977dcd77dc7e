// Package sim is a software model of the NPCX Multi-Input Wake-Up
// array: the full register file of the three controllers plus input
// stimulus, detection latching, and interrupt delivery. The real
// driver runs against it unchanged, which is how the behavioral tests,
// the wakebutton demo, and miwumon's offline mode work without
// hardware.
package sim

import (
	"sync"

	"gonpcx/miwu"
)

// Array models the three wake-up controllers.
//
// Detection follows the documented hardware behavior. The status
// registers track the raw input level. Edge detection latches pending
// on a matching transition while the input is enabled. Level
// detection latches on a transition into the matching level, and
// again when the enable bit arms with the level already present; that
// arm-time sample is what makes a level wait complete immediately
// when the level is already there. The enable bit otherwise gates
// interrupt generation, not detection.
//
// A group's interrupt asserts when pending AND enable becomes
// nonzero. Delivery invokes the bound sink after stimulus calls and
// on Settle, never inside a register write: the writer may be holding
// the driver's critical section.
type Array struct {
	mu       sync.Mutex
	banks    [miwu.ControllerCount]*bankState
	sink     func(controller, group uint8)
	levels   [miwu.LineCount]bool
	queued   [][2]uint8
	asserted [miwu.ControllerCount][miwu.GroupCount]bool
}

type bankState struct {
	enable       [miwu.GroupCount]uint8
	mode         [miwu.GroupCount]uint8
	anyEdge      [miwu.GroupCount]uint8
	edgePolarity [miwu.GroupCount]uint8
	inputEnable  [miwu.GroupCount]uint8
	pending      [miwu.GroupCount]uint8
	status       [miwu.GroupCount]uint8
}

// New returns an Array with all registers zero and all inputs low.
func New() *Array {
	a := &Array{}
	for c := range a.banks {
		a.banks[c] = &bankState{}
	}
	return a
}

// OnInterrupt binds the delivery sink, normally miwu.ServiceGroup.
// Without a sink, asserted interrupts stay queued; tests that drive
// the dispatcher by hand leave the sink unbound.
func (a *Array) OnInterrupt(fn func(controller, group uint8)) {
	a.mu.Lock()
	a.sink = fn
	a.mu.Unlock()
}

// Banks returns register views for miwu.SetRegisterBanks.
func (a *Array) Banks() [miwu.ControllerCount]*miwu.RegisterBank {
	var out [miwu.ControllerCount]*miwu.RegisterBank
	for c := uint8(0); c < miwu.ControllerCount; c++ {
		b := &miwu.RegisterBank{}
		for g := uint8(0); g < miwu.GroupCount; g++ {
			b.Enable[g] = reg{a, c, g, regEnable}
			b.Mode[g] = reg{a, c, g, regMode}
			b.AnyEdge[g] = reg{a, c, g, regAnyEdge}
			b.EdgePolarity[g] = reg{a, c, g, regEdgePolarity}
			b.InputEnable[g] = reg{a, c, g, regInputEnable}
			b.PendingClear[g] = reg{a, c, g, regPendingClear}
			b.Pending[g] = reg{a, c, g, regPending}
			b.Status[g] = reg{a, c, g, regStatus}
		}
		out[c] = b
	}
	return out
}

// SetLevel drives one input line. Any group interrupt this raises is
// delivered before SetLevel returns. Must not be called from a
// delivery sink.
func (a *Array) SetLevel(line miwu.Line, high bool) {
	co := line.Coord()
	bit := uint8(1) << co.Subgroup

	a.mu.Lock()
	prev := a.levels[line]
	a.levels[line] = high
	b := a.banks[co.Controller]
	if high {
		b.status[co.Group] |= bit
	} else {
		b.status[co.Group] &^= bit
	}
	if prev != high && b.inputEnable[co.Group]&bit != 0 {
		a.latchTransitionLocked(co, bit, high)
	}
	a.evaluateLocked(co.Controller, co.Group)
	a.mu.Unlock()

	a.deliver()
}

// Settle delivers interrupts raised by register writes alone, such as
// arming a level-detecting line whose level already matches. On
// hardware these fire as soon as the write sequence leaves its
// critical section.
func (a *Array) Settle() {
	a.deliver()
}

// Level reports the driven input level of a line.
func (a *Array) Level(line miwu.Line) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.levels[line]
}

// Pending reports a line's latched pending bit.
func (a *Array) Pending(line miwu.Line) bool {
	co := line.Coord()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.banks[co.Controller].pending[co.Group]&(1<<co.Subgroup) != 0
}

// Enabled reports a line's interrupt enable bit.
func (a *Array) Enabled(line miwu.Line) bool {
	co := line.Coord()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.banks[co.Controller].enable[co.Group]&(1<<co.Subgroup) != 0
}

// InputEnabled reports a line's detection enable bit.
func (a *Array) InputEnabled(line miwu.Line) bool {
	co := line.Coord()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.banks[co.Controller].inputEnable[co.Group]&(1<<co.Subgroup) != 0
}

// GroupState is a snapshot of one group's registers.
type GroupState struct {
	Enable       uint8
	Mode         uint8
	AnyEdge      uint8
	EdgePolarity uint8
	InputEnable  uint8
	Pending      uint8
	Status       uint8
}

// Group snapshots one group's registers.
func (a *Array) Group(controller, group uint8) GroupState {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.banks[controller]
	return GroupState{
		Enable:       b.enable[group],
		Mode:         b.mode[group],
		AnyEdge:      b.anyEdge[group],
		EdgePolarity: b.edgePolarity[group],
		InputEnable:  b.inputEnable[group],
		Pending:      b.pending[group],
		Status:       b.status[group],
	}
}

// latchTransitionLocked applies the detection rules for one input
// transition. high is the new level.
func (a *Array) latchTransitionLocked(co miwu.Coord, bit uint8, high bool) {
	b := a.banks[co.Controller]
	g := co.Group
	if b.mode[g]&bit != 0 {
		// Level detection: latch on entering the selected level.
		wantLow := b.edgePolarity[g]&bit != 0
		if wantLow != high {
			b.pending[g] |= bit
		}
		return
	}
	if b.anyEdge[g]&bit != 0 {
		b.pending[g] |= bit
		return
	}
	wantFalling := b.edgePolarity[g]&bit != 0
	if wantFalling != high {
		b.pending[g] |= bit
	}
}

// latchArmedLevelsLocked samples level-detecting lines whose enable
// bit just armed; a matching level latches immediately.
func (a *Array) latchArmedLevelsLocked(c, g uint8, armed uint8) {
	b := a.banks[c]
	eligible := armed & b.inputEnable[g] & b.mode[g]
	if eligible == 0 {
		return
	}
	// Polarity bit set selects low level, so a line matches when its
	// polarity and status bits differ.
	b.pending[g] |= eligible & (b.edgePolarity[g] ^ b.status[g])
}

// evaluateLocked tracks each group's interrupt line and queues a
// delivery when it newly asserts.
func (a *Array) evaluateLocked(c, g uint8) {
	b := a.banks[c]
	now := b.pending[g]&b.enable[g] != 0
	if now && !a.asserted[c][g] {
		a.queued = append(a.queued, [2]uint8{c, g})
	}
	a.asserted[c][g] = now
}

// deliver drains queued group interrupts through the sink. The lock
// is dropped around each sink call: the sink is the driver's
// dispatcher and takes its own critical section plus register locks.
func (a *Array) deliver() {
	for {
		a.mu.Lock()
		if len(a.queued) == 0 || a.sink == nil {
			a.mu.Unlock()
			return
		}
		next := a.queued[0]
		a.queued = a.queued[1:]
		sink := a.sink
		a.mu.Unlock()

		sink(next[0], next[1])
	}
}

type regKind uint8

const (
	regEnable regKind = iota
	regMode
	regAnyEdge
	regEdgePolarity
	regInputEnable
	regPendingClear
	regPending
	regStatus
)

// reg is one register view handed to the driver.
type reg struct {
	a          *Array
	controller uint8
	group      uint8
	kind       regKind
}

func (r reg) Get() uint8 {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	b := r.a.banks[r.controller]
	switch r.kind {
	case regEnable:
		return b.enable[r.group]
	case regMode:
		return b.mode[r.group]
	case regAnyEdge:
		return b.anyEdge[r.group]
	case regEdgePolarity:
		return b.edgePolarity[r.group]
	case regInputEnable:
		return b.inputEnable[r.group]
	case regPending:
		return b.pending[r.group]
	case regStatus:
		return b.status[r.group]
	default:
		// Pending-clear reads as zero.
		return 0
	}
}

func (r reg) Set(v uint8) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	b := r.a.banks[r.controller]
	switch r.kind {
	case regEnable:
		prev := b.enable[r.group]
		b.enable[r.group] = v
		if armed := v &^ prev; armed != 0 {
			r.a.latchArmedLevelsLocked(r.controller, r.group, armed)
		}
	case regMode:
		b.mode[r.group] = v
	case regAnyEdge:
		b.anyEdge[r.group] = v
	case regEdgePolarity:
		b.edgePolarity[r.group] = v
	case regInputEnable:
		b.inputEnable[r.group] = v
	case regPendingClear:
		b.pending[r.group] &^= v
	case regPending, regStatus:
		// Read-only; hardware ignores the write.
	}
	r.a.evaluateLocked(r.controller, r.group)
}
