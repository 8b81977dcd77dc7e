//go:build !tinygo

package miwu

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMu stands in for interrupt masking on regular Go, where group
// handlers run on goroutines instead of interrupt vectors. It gives
// register read-modify-write sequences the same exclusion against the
// dispatcher that disabling interrupts gives on hardware.
var irqMu sync.Mutex

// disableInterrupts enters a critical section on regular Go
func disableInterrupts() State {
	irqMu.Lock()
	return 0
}

// restoreInterrupts leaves the critical section on regular Go
func restoreInterrupts(state State) {
	irqMu.Unlock()
}
