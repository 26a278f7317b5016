package tsch

import "fmt"

// CellOption is a bitset of the roles a Cell plays in its slotframe.
type CellOption uint8

// Cell option bits (spec §3).
const (
	// OptionTx marks a cell as a transmit opportunity.
	OptionTx CellOption = 1 << iota
	// OptionRx marks a cell as a receive opportunity.
	OptionRx
	// OptionShared marks a cell as contended (CSMA-style backoff on Tx)
	// rather than dedicated.
	OptionShared
)

// Has reports whether all bits in other are set in o.
func (o CellOption) Has(other CellOption) bool { return o&other == other }

func (o CellOption) String() string {
	if o == 0 {
		return "none"
	}
	s := ""
	if o.Has(OptionTx) {
		s += "Tx"
	}
	if o.Has(OptionRx) {
		s += "Rx"
	}
	if o.Has(OptionShared) {
		s += "Shared"
	}
	return s
}

// CellType distinguishes ordinary data cells from the beacon cells used
// during network formation.
type CellType uint8

const (
	// CellNormal is an ordinary unicast or broadcast data cell.
	CellNormal CellType = iota
	// CellAdvertising is a data cell that also carries enhanced beacons.
	CellAdvertising
	// CellAdvertisingOnly carries enhanced beacons exclusively.
	CellAdvertisingOnly
)

func (t CellType) String() string {
	switch t {
	case CellNormal:
		return "normal"
	case CellAdvertising:
		return "advertising"
	case CellAdvertisingOnly:
		return "advertising-only"
	default:
		return fmt.Sprintf("unknown cell type (%d)", uint8(t))
	}
}

// Reserved neighbor ids a Cell's NeighborID may carry instead of a real
// 16-bit node id.
const (
	// NeighborBroadcast marks a cell with no specific destination.
	NeighborBroadcast int32 = -1
	// NeighborEB marks a cell reserved for enhanced-beacon transmission.
	NeighborEB int32 = -2
)

// Cell is a single scheduled link: a (timeslot, channel offset) pair
// within one slotframe, tagged with its options, type, and the neighbor it
// is dedicated to (or NeighborBroadcast if it isn't dedicated to anyone).
//
// A Cell belongs to exactly one Slotframe for its lifetime; callers never
// move a Cell between slotframes, they remove it from one and add a new
// one to the other.
type Cell struct {
	Timeslot        uint16
	ChannelOffset   uint16
	SlotframeHandle uint16
	Options         CellOption
	Type            CellType
	NeighborID      int32
}

// Dedicated reports whether the cell's NeighborID is anything other than
// NeighborBroadcast. A cell addressed to NeighborEB counts as dedicated.
func (c Cell) Dedicated() bool {
	return c.NeighborID != NeighborBroadcast
}
