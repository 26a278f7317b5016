package orchestra

import "github.com/edi-riga/tsch-core"

// linkBased implements the link-based unicast rule (spec §4.4 rule 6):
// like unicast_storing, but each neighbor relationship gets a pair of
// directional cells derived from H2(src, dst) rather than a single
// cell derived from H1, so the two directions usually land on different
// timeslots (with the default H2 they coincide when the two addresses'
// last octets are congruent mod UnicastPeriod). Both cells always coexist
// with whatever else already occupies their timeslot (keep_old = true).
type linkBased struct {
	sf *tsch.Slotframe
}

func newLinkBased() *linkBased { return &linkBased{} }

func (r *linkBased) Name() string { return "link_based" }

func (r *linkBased) Init(n *tsch.NodeScheduler, handle uint16) {
	sf := n.AddSlotframe(handle, r.Name(), n.Config.UnicastPeriod)
	r.sf = sf
	n.SFUnicast = sf
}

func (r *linkBased) SelectPacket(n *tsch.NodeScheduler, pkt tsch.Packet) (tsch.PacketAttrs, bool) {
	if pkt.Type != tsch.FrameData || !pkt.HasNextHop {
		return tsch.PacketAttrs{}, false
	}
	if len(n.KnownRoots()) > 0 {
		return tsch.PacketAttrs{}, false
	}

	cfg := n.Config
	other := tsch.IDToAddr(pkt.NextHopID)
	tTx := cfg.H2(n.Addr, other) % uint32(cfg.UnicastPeriod)
	return tsch.PacketAttrs{
		SlotframeHandle: uint32(r.sf.Handle),
		Timeslot:        tTx,
		ChannelOffset:   uint32(cfg.Co(n.Addr)),
	}, true
}

// NewTimeSource implements tsch.TimeSourceObserver.
func (r *linkBased) NewTimeSource(n *tsch.NodeScheduler, old, new_ *tsch.Addr) {
	if old != nil {
		r.removeLinkCells(n, *old)
	}
	if new_ != nil {
		r.addLinkCells(n, *new_)
	}
}

// ChildAdded implements tsch.ChildObserver.
func (r *linkBased) ChildAdded(n *tsch.NodeScheduler, addr tsch.Addr) {
	r.addLinkCells(n, addr)
}

// ChildRemoved implements tsch.ChildObserver.
func (r *linkBased) ChildRemoved(n *tsch.NodeScheduler, addr tsch.Addr) {
	r.removeLinkCells(n, addr)
}

// addLinkCells installs the Tx/Rx cell pair for other (spec §4.4 rule
// 6).
func (r *linkBased) addLinkCells(n *tsch.NodeScheduler, other tsch.Addr) {
	cfg := n.Config
	co := cfg.Co(n.Addr)

	tTx := uint16(cfg.H2(n.Addr, other) % uint32(cfg.UnicastPeriod))
	n.InstallCell(r.sf, tsch.OptionTx|tsch.OptionShared, tsch.CellNormal, tsch.NeighborBroadcast, tTx, co, true)

	tRx := uint16(cfg.H2(other, n.Addr) % uint32(cfg.UnicastPeriod))
	n.InstallCell(r.sf, tsch.OptionRx, tsch.CellNormal, tsch.NeighborBroadcast, tRx, co, true)
}

// removeLinkCells removes the Tx/Rx cell pair for other, matching
// exactly on (timeslot, channel offset, options).
func (r *linkBased) removeLinkCells(n *tsch.NodeScheduler, other tsch.Addr) {
	cfg := n.Config
	co := cfg.Co(n.Addr)

	tTx := uint16(cfg.H2(n.Addr, other) % uint32(cfg.UnicastPeriod))
	r.sf.RemoveCellByTimeslotCOAndOptions(tTx, co, tsch.OptionTx|tsch.OptionShared)

	tRx := uint16(cfg.H2(other, n.Addr) % uint32(cfg.UnicastPeriod))
	r.sf.RemoveCellByTimeslotCOAndOptions(tRx, co, tsch.OptionRx)
}
