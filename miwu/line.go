package miwu

import "fmt"

// Layout of the wake-up array: three controllers, eight groups per
// controller, eight lines per group.
const (
	ControllerCount = 3
	GroupCount      = 8
	SubgroupCount   = 8
	LineCount       = ControllerCount * GroupCount * SubgroupCount

	linesPerController = GroupCount * SubgroupCount
)

// Line identifies one wake-up input by its compact index, 0 through
// LineCount-1. The named constants (MIWU0_10 and friends) cover all
// 192 of them.
type Line uint8

// Coord is the expanded register address of a line: which controller,
// which group within it, and which bit within the group's registers.
type Coord struct {
	Controller uint8 // 0..2
	Group      uint8 // 0..7
	Subgroup   uint8 // 0..7
}

// Index converts a coordinate to its compact line index. An
// out-of-range field is a programming error and panics.
func (c Coord) Index() Line {
	if c.Controller >= ControllerCount || c.Group >= GroupCount || c.Subgroup >= SubgroupCount {
		panic("miwu: coordinate out of range")
	}
	return Line(c.Controller*linesPerController + c.Group*SubgroupCount + c.Subgroup)
}

// Coord expands a line index into its controller, group and subgroup.
// Panics if the index is out of range.
func (l Line) Coord() Coord {
	if l >= LineCount {
		panic("miwu: line index out of range")
	}
	return Coord{
		Controller: uint8(l) / linesPerController,
		Group:      uint8(l) % linesPerController / SubgroupCount,
		Subgroup:   uint8(l) % SubgroupCount,
	}
}

// String returns the vendor name of the line. The group digit is
// 1-based: line 115 is "MIWU1_73", controller 1, group 7, subgroup 3.
func (l Line) String() string {
	c := l.Coord()
	return string([]byte{'M', 'I', 'W', 'U', '0' + c.Controller, '_', '1' + c.Group, '0' + c.Subgroup})
}

// ParseLine resolves a vendor line name such as "MIWU1_73" back to a
// Line. Board description files use these names.
func ParseLine(s string) (Line, error) {
	if len(s) != 8 || s[:4] != "MIWU" || s[5] != '_' {
		return 0, fmt.Errorf("malformed line name %q", s)
	}
	c := s[4] - '0'
	g := s[6] - '1'
	sub := s[7] - '0'
	if c >= ControllerCount || g >= GroupCount || sub >= SubgroupCount {
		return 0, fmt.Errorf("line name %q out of range", s)
	}
	return Coord{Controller: c, Group: g, Subgroup: sub}.Index(), nil
}
