package miwu

// Reg8 is one 8-bit hardware register with one bit per line of a
// group. Implementations are memory-mapped registers on hardware and
// the simulator's register model everywhere else.
type Reg8 interface {
	Get() uint8
	Set(uint8)
}

// RegisterBank is the register file of one wake-up controller: eight
// registers of each kind, indexed by group. Pending and Status are
// read-only, PendingClear is write-1-to-clear, the rest are plain
// read/write. Bit conventions: Mode set selects level detection,
// EdgePolarity set selects low level or falling edge, AnyEdge set
// selects both edges.
type RegisterBank struct {
	Enable       [GroupCount]Reg8 // WKEN: latched pending raises the group interrupt
	Mode         [GroupCount]Reg8 // WKMOD
	AnyEdge      [GroupCount]Reg8 // WKAEDG
	EdgePolarity [GroupCount]Reg8 // WKEDG
	InputEnable  [GroupCount]Reg8 // WKINEN: input buffer feeds the detector
	PendingClear [GroupCount]Reg8 // WKPCL
	Pending      [GroupCount]Reg8 // WKPND
	Status       [GroupCount]Reg8 // WKST: live input level
}

var banks [ControllerCount]*RegisterBank

// SetRegisterBanks installs the register banks of the three
// controllers. Board support, or the simulator, calls this once
// before any line is touched.
func SetRegisterBanks(b [ControllerCount]*RegisterBank) {
	banks = b
}

func mustBank(controller uint8) *RegisterBank {
	b := banks[controller]
	if b == nil {
		panic("miwu: register banks not configured")
	}
	return b
}

func setBits(r Reg8, mask uint8)   { r.Set(r.Get() | mask) }
func clearBits(r Reg8, mask uint8) { r.Set(r.Get() &^ mask) }
