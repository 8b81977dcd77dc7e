//go:build tinygo

package miwu

import "runtime/volatile"

// MMIORegs collects the memory-mapped registers of one controller.
// Board support fills the pointers from the part's datasheet
// addresses; this package does not hard-code a memory map.
type MMIORegs struct {
	Enable       [GroupCount]*volatile.Register8
	Mode         [GroupCount]*volatile.Register8
	AnyEdge      [GroupCount]*volatile.Register8
	EdgePolarity [GroupCount]*volatile.Register8
	InputEnable  [GroupCount]*volatile.Register8
	PendingClear [GroupCount]*volatile.Register8
	Pending      [GroupCount]*volatile.Register8
	Status       [GroupCount]*volatile.Register8
}

type mmioReg struct {
	r *volatile.Register8
}

func (m mmioReg) Get() uint8  { return m.r.Get() }
func (m mmioReg) Set(v uint8) { m.r.Set(v) }

// NewMMIOBank wraps a controller's memory-mapped registers as a
// RegisterBank for SetRegisterBanks.
func NewMMIOBank(regs *MMIORegs) *RegisterBank {
	b := &RegisterBank{}
	for g := 0; g < GroupCount; g++ {
		b.Enable[g] = mmioReg{regs.Enable[g]}
		b.Mode[g] = mmioReg{regs.Mode[g]}
		b.AnyEdge[g] = mmioReg{regs.AnyEdge[g]}
		b.EdgePolarity[g] = mmioReg{regs.EdgePolarity[g]}
		b.InputEnable[g] = mmioReg{regs.InputEnable[g]}
		b.PendingClear[g] = mmioReg{regs.PendingClear[g]}
		b.Pending[g] = mmioReg{regs.Pending[g]}
		b.Status[g] = mmioReg{regs.Status[g]}
	}
	return b
}
