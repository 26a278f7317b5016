package orchestra

import "github.com/edi-riga/tsch-core"

// unicastStoring implements the storing-mode unicast rule (spec §4.4 rule
// 4): one cell per neighbor that currently needs one — the routing
// parent (once it can hear our DAO, or unconditionally if sender-based)
// and every direct child — plus a permanent cell on this node's own
// hashed timeslot so that neighbors addressing us can always find us.
// Receiver-based (the default) installs a Tx cell toward a neighbor at
// that neighbor's own hashed timeslot, since the neighbor is expected to
// be listening there on its own self cell; sender-based installs an Rx
// cell instead, at the same timeslot, and transmits on its own.
type unicastStoring struct {
	sf *tsch.Slotframe
}

func newUnicastStoring() *unicastStoring { return &unicastStoring{} }

func (r *unicastStoring) Name() string { return "unicast_storing" }

func (r *unicastStoring) Init(n *tsch.NodeScheduler, handle uint16) {
	cfg := n.Config
	sf := n.AddSlotframe(handle, r.Name(), cfg.UnicastPeriod)
	r.sf = sf
	n.SFUnicast = sf

	selfSlot := uint16(cfg.H1(n.Addr) % uint32(cfg.UnicastPeriod))
	n.InstallCell(sf, r.selfCellOptions(cfg), tsch.CellNormal, tsch.NeighborBroadcast,
		selfSlot, cfg.Co(n.Addr), false)
}

func (r *unicastStoring) SelectPacket(n *tsch.NodeScheduler, pkt tsch.Packet) (tsch.PacketAttrs, bool) {
	if pkt.Type != tsch.FrameData || !pkt.HasNextHop {
		return tsch.PacketAttrs{}, false
	}
	if len(n.KnownRoots()) > 0 {
		return tsch.PacketAttrs{}, false
	}
	if !r.hasUCCell(n, pkt.NextHopID) {
		return tsch.PacketAttrs{}, false
	}

	cfg := n.Config
	hashAddr := tsch.IDToAddr(pkt.NextHopID)
	if cfg.UnicastSenderBased {
		hashAddr = n.Addr
	}
	return tsch.PacketAttrs{
		SlotframeHandle: uint32(r.sf.Handle),
		Timeslot:        cfg.H1(hashAddr) % uint32(cfg.UnicastPeriod),
		ChannelOffset:   uint32(cfg.Co(tsch.IDToAddr(pkt.NextHopID))),
	}, true
}

// hasUCCell reports whether neighborID is the current parent that can
// hear us (or any parent, if sender-based) or a direct child — the
// condition spec §4.4 rule 4 calls "has_uc_cell".
func (r *unicastStoring) hasUCCell(n *tsch.NodeScheduler, neighborID uint16) bool {
	if parent, ok := n.Parent(); ok && tsch.AddrToID(parent) == neighborID {
		return n.Config.UnicastSenderBased || n.ParentKnowsUs()
	}
	return n.RoutingTable.HasDirectRoute(neighborID)
}

// NewTimeSource implements tsch.TimeSourceObserver.
func (r *unicastStoring) NewTimeSource(n *tsch.NodeScheduler, old, new_ *tsch.Addr) {
	if old != nil {
		r.removeUCCell(n, *old)
	}
	if new_ != nil {
		r.addUCCell(n, *new_)
	}
}

// ChildAdded implements tsch.ChildObserver.
func (r *unicastStoring) ChildAdded(n *tsch.NodeScheduler, addr tsch.Addr) {
	r.addUCCell(n, addr)
}

// ChildRemoved implements tsch.ChildObserver.
func (r *unicastStoring) ChildRemoved(n *tsch.NodeScheduler, addr tsch.Addr) {
	r.removeUCCell(n, addr)
}

// selfCellOptions are the options this node installs on its own hashed
// timeslot: the role it always plays there, regardless of which (if any)
// neighbor's hashed slot happens to land on the same timeslot.
func (r *unicastStoring) selfCellOptions(cfg *tsch.Config) tsch.CellOption {
	if cfg.UnicastSenderBased {
		return tsch.OptionTx | cfg.UnicastSlotSharedFlag()
	}
	return tsch.OptionRx
}

// neighborCellOptions are the options this node installs toward a given
// neighbor, on that neighbor's own hashed timeslot.
func (r *unicastStoring) neighborCellOptions(cfg *tsch.Config) tsch.CellOption {
	if cfg.UnicastSenderBased {
		return tsch.OptionRx
	}
	return tsch.OptionTx | cfg.UnicastSlotSharedFlag()
}

// addUCCell installs (or extends) the cell serving addr (spec §4.4 rule
// 4's add_uc_cell). When addr's hashed timeslot collides with this
// node's own, the two roles are merged onto the one cell instead of
// installing a second.
func (r *unicastStoring) addUCCell(n *tsch.NodeScheduler, addr tsch.Addr) {
	cfg := n.Config
	t := uint16(cfg.H1(addr) % uint32(cfg.UnicastPeriod))
	selfSlot := uint16(cfg.H1(n.Addr) % uint32(cfg.UnicastPeriod))

	options := r.neighborCellOptions(cfg)
	if t == selfSlot {
		options |= r.selfCellOptions(cfg)
	}

	n.InstallCell(r.sf, options, tsch.CellNormal, tsch.NeighborBroadcast, t, cfg.Co(n.Addr), false)
}

// removeUCCell removes the cell serving addr, unless another current
// neighbor (parent or direct child) still needs that timeslot, or the
// timeslot is this node's own hashed slot — in which case it is
// re-installed in its self-only form instead of deleted (spec §4.4 rule
// 4's remove_uc_cell).
func (r *unicastStoring) removeUCCell(n *tsch.NodeScheduler, addr tsch.Addr) {
	cfg := n.Config
	t := uint16(cfg.H1(addr) % uint32(cfg.UnicastPeriod))
	co := cfg.Co(n.Addr)

	if _, exists := r.sf.GetCell(t, co); !exists {
		return
	}
	if r.slotStillRequired(n, t) {
		return
	}

	selfSlot := uint16(cfg.H1(n.Addr) % uint32(cfg.UnicastPeriod))
	if t == selfSlot {
		n.InstallCell(r.sf, r.selfCellOptions(cfg), tsch.CellNormal, tsch.NeighborBroadcast, t, co, false)
		return
	}

	r.sf.RemoveCellByTimeslotAndCO(t, co)
}

// slotStillRequired reports whether timeslot t is still the hashed slot
// of the current parent (qualifying per hasUCCell) or of any direct
// child.
func (r *unicastStoring) slotStillRequired(n *tsch.NodeScheduler, t uint16) bool {
	cfg := n.Config
	slotOf := func(addr tsch.Addr) uint16 { return uint16(cfg.H1(addr) % uint32(cfg.UnicastPeriod)) }

	if parent, ok := n.Parent(); ok && slotOf(parent) == t {
		if cfg.UnicastSenderBased || n.ParentKnowsUs() {
			return true
		}
	}
	for _, id := range n.RoutingTable.DirectChildren() {
		if slotOf(tsch.IDToAddr(id)) == t {
			return true
		}
	}
	return false
}
