package miwu

import "math/bits"

// ServiceGroup is the interrupt entry for one (controller, group)
// vector. Board support binds each of the 24 vectors to it; the
// simulator delivers through it directly.
//
// The group's pending register is read once. Every line set in that
// snapshot is woken and then masked in a single enable-register
// modify; pending bits are left for the consumer to clear after it
// has observed the event. A line latching after the snapshot read
// re-asserts the vector and is handled on the next entry.
func ServiceGroup(controller, group uint8) {
	bank := mustBank(controller)
	base := Coord{Controller: controller, Group: group}.Index()

	snapshot := bank.Pending[group].Get()
	if snapshot == 0 {
		return
	}

	for rest := snapshot; rest != 0; rest &= rest - 1 {
		line := base + Line(bits.TrailingZeros8(rest))
		recordWakeEvent(line)
		wakeLine(line)
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	clearBits(bank.Enable[group], snapshot)
}

// VectorName returns the vendor name of a group's interrupt vector:
// VectorName(1, 6) is "WKINTG_1". Diagnostics only.
func VectorName(controller, group uint8) string {
	if controller >= ControllerCount || group >= GroupCount {
		panic("miwu: vector out of range")
	}
	return string([]byte{'W', 'K', 'I', 'N', 'T', 'A' + group, '_', '0' + controller})
}
