package tsch

// Slotframe is an ordered collection of cells sharing one period. Multiple
// cells may share a timeslot; cells that share both timeslot and channel
// offset are conceptually the same link, so AddCell (unless asked to keep
// the old one) removes any existing cell at that coordinate before
// appending the new one.
//
// A node's Schedule holds its slotframes ordered by Handle; within one
// slotframe, cell order is insertion order, and GetCell returns the first
// match — this is what makes "first match wins" well defined.
type Slotframe struct {
	Handle   uint16
	RuleName string
	Size     uint16
	cells    []Cell
}

// NewSlotframe constructs an empty slotframe of the given size, owned by
// the named rule.
func NewSlotframe(handle uint16, ruleName string, size uint16) *Slotframe {
	return &Slotframe{Handle: handle, RuleName: ruleName, Size: size}
}

// Cells returns the slotframe's cells in insertion order. The returned
// slice is owned by the caller; mutating it does not affect the
// slotframe.
func (sf *Slotframe) Cells() []Cell {
	out := make([]Cell, len(sf.cells))
	copy(out, sf.cells)
	return out
}

// AddCell installs a new cell at (timeslot, channelOffset). If timeslot is
// out of range for this slotframe, it returns an *Error of kind
// KindInvalidTimeslot and installs nothing. Unless keepOld is true, any
// cell already occupying (timeslot, channelOffset) is removed first.
func (sf *Slotframe) AddCell(options CellOption, typ CellType, neighborID int32, timeslot, channelOffset uint16, keepOld bool) (Cell, error) {
	if timeslot >= sf.Size {
		return Cell{}, newError("Slotframe.AddCell", KindInvalidTimeslot)
	}

	if !keepOld {
		sf.removeAt(timeslot, channelOffset, nil)
	}

	c := Cell{
		Timeslot:        timeslot,
		ChannelOffset:   channelOffset,
		SlotframeHandle: sf.Handle,
		Options:         options,
		Type:            typ,
		NeighborID:      neighborID,
	}
	sf.cells = append(sf.cells, c)
	return c, nil
}

// GetCell returns the first cell at (timeslot, channelOffset), if any.
func (sf *Slotframe) GetCell(timeslot, channelOffset uint16) (Cell, bool) {
	for _, c := range sf.cells {
		if c.Timeslot == timeslot && c.ChannelOffset == channelOffset {
			return c, true
		}
	}
	return Cell{}, false
}

// CellsAtTimeslot returns every cell at the given timeslot, across all
// channel offsets, in insertion order.
func (sf *Slotframe) CellsAtTimeslot(timeslot uint16) []Cell {
	var out []Cell
	for _, c := range sf.cells {
		if c.Timeslot == timeslot {
			out = append(out, c)
		}
	}
	return out
}

// RemoveCellByTimeslot removes every cell at the given timeslot,
// regardless of channel offset. It reports whether anything was removed.
func (sf *Slotframe) RemoveCellByTimeslot(timeslot uint16) bool {
	return sf.removeWhere(func(c Cell) bool { return c.Timeslot == timeslot })
}

// RemoveCellByTimeslotAndCO removes the cell at (timeslot, channelOffset),
// if one exists. It reports whether anything was removed.
func (sf *Slotframe) RemoveCellByTimeslotAndCO(timeslot, channelOffset uint16) bool {
	var removed bool
	sf.removeAt(timeslot, channelOffset, &removed)
	return removed
}

// RemoveCellByTimeslotCOAndOptions removes the cell at (timeslot,
// channelOffset) only if its options match exactly. It reports whether
// anything was removed.
func (sf *Slotframe) RemoveCellByTimeslotCOAndOptions(timeslot, channelOffset uint16, options CellOption) bool {
	return sf.removeWhere(func(c Cell) bool {
		return c.Timeslot == timeslot && c.ChannelOffset == channelOffset && c.Options == options
	})
}

func (sf *Slotframe) removeAt(timeslot, channelOffset uint16, removed *bool) {
	did := sf.removeWhere(func(c Cell) bool {
		return c.Timeslot == timeslot && c.ChannelOffset == channelOffset
	})
	if removed != nil {
		*removed = did
	}
}

func (sf *Slotframe) removeWhere(match func(Cell) bool) bool {
	removed := false
	kept := sf.cells[:0]
	for _, c := range sf.cells {
		if match(c) {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	sf.cells = kept
	return removed
}
