package miwu

// Condition selects what input behavior latches a line's pending bit:
// a level or an edge. Its register encoding is private to the driver.
type Condition interface {
	condition()
}

// Level detection: the input sits at the selected level.
type Level uint8

const (
	Low Level = iota
	High
)

// Edge detection: the input transitions in the selected direction.
type Edge uint8

const (
	AnyEdge Edge = iota
	FallingEdge
	RisingEdge
)

func (Level) condition() {}
func (Edge) condition()  {}

func (l Level) String() string {
	if l == Low {
		return "low"
	}
	return "high"
}

func (e Edge) String() string {
	switch e {
	case FallingEdge:
		return "falling-edge"
	case RisingEdge:
		return "rising-edge"
	default:
		return "any-edge"
	}
}
