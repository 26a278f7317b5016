package tsch

import "golang.org/x/exp/slices"

// NeighborQueue is the subset of the node's neighbor table Orchestra's
// select-best tie-break needs: the number of packets currently queued for
// a neighbor. The MAC/link layer owns the real neighbor table; this
// module only ever reads it.
type NeighborQueue interface {
	QueueSize(neighborID int32) int
}

// Schedule is a node's set of slotframes, ordered by handle. Lower handle
// is higher priority: at any ASN the schedule picks, among all candidate
// cells across all slotframes active at that ASN, the one belonging to the
// lowest-handle slotframe (spec §4.2).
type Schedule struct {
	frames  map[uint16]*Slotframe
	handles []uint16 // kept sorted ascending
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{frames: make(map[uint16]*Slotframe)}
}

// AddSlotframe creates and installs a new slotframe at the given handle.
// Handles must be unique within a schedule; installing at an already-used
// handle replaces the previous slotframe (the caller, typically a rule's
// init, is expected not to do this).
func (s *Schedule) AddSlotframe(handle uint16, ruleName string, size uint16) *Slotframe {
	sf := NewSlotframe(handle, ruleName, size)
	if _, exists := s.frames[handle]; !exists {
		idx, _ := slices.BinarySearch(s.handles, handle)
		s.handles = slices.Insert(s.handles, idx, handle)
	}
	s.frames[handle] = sf
	return sf
}

// Slotframe returns the slotframe at handle, if one has been installed.
func (s *Schedule) Slotframe(handle uint16) (*Slotframe, bool) {
	sf, ok := s.frames[handle]
	return sf, ok
}

// Slotframes returns every installed slotframe, ordered by ascending
// handle.
func (s *Schedule) Slotframes() []*Slotframe {
	out := make([]*Slotframe, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, s.frames[h])
	}
	return out
}

// Select returns the active cell at the given absolute slot number,
// applying the three-step selection rule from spec §4.2: lowest
// slotframe handle wins; within one slotframe, when neither of two
// candidates is Tx the earlier-seen one is kept; otherwise the candidate
// whose neighbor has the larger queue wins, ties going to the earlier-seen
// candidate. Select is
// pure with respect to ASN and the schedule's own state: calling it twice
// for the same ASN with no intervening mutation returns the same cell.
func (s *Schedule) Select(asn uint64, neighbors NeighborQueue) (Cell, bool) {
	for _, h := range s.handles {
		sf := s.frames[h]
		if sf.Size == 0 {
			continue
		}
		timeslot := uint16(asn % uint64(sf.Size))
		candidates := sf.CellsAtTimeslot(timeslot)
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			best = selectBest(best, c, neighbors)
		}
		return best, true
	}
	return Cell{}, false
}

// selectBest picks between two candidate cells within the same slotframe
// and timeslot, per spec §4.2 step 2-3 and §9's tie-break note: when
// neither is Tx, a wins (either will do); otherwise the neighbor with the
// larger queue wins, and a wins ties.
func selectBest(a, b Cell, neighbors NeighborQueue) Cell {
	aTx := a.Options.Has(OptionTx)
	bTx := b.Options.Has(OptionTx)
	if !aTx && !bTx {
		return a
	}

	var qa, qb int
	if neighbors != nil {
		qa = neighbors.QueueSize(a.NeighborID)
		qb = neighbors.QueueSize(b.NeighborID)
	}
	if qb > qa {
		return b
	}
	return a
}
