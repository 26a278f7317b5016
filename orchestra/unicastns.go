package orchestra

import "github.com/edi-riga/tsch-core"

// unicastNS implements the non-storing-mode unicast rule (spec §4.4 rule
// 3): every node installs one cell per timeslot in a shared slotframe,
// listening on its own hashed timeslot and transmitting to any neighbor
// on that neighbor's hashed timeslot. Used with RPL non-storing mode,
// where only the root maintains a full routing table, so packets travel
// hop-by-hop toward the root regardless of any other node's children.
type unicastNS struct {
	sf *tsch.Slotframe
}

func newUnicastNS() *unicastNS { return &unicastNS{} }

func (r *unicastNS) Name() string { return "unicast_ns" }

func (r *unicastNS) Init(n *tsch.NodeScheduler, handle uint16) {
	cfg := n.Config
	sf := n.AddSlotframe(handle, r.Name(), cfg.UnicastPeriod)
	r.sf = sf
	n.SFUnicast = sf

	selfSlot := cfg.H1(n.Addr) % uint32(cfg.UnicastPeriod)
	co := cfg.Co(n.Addr)
	for i := uint32(0); i < uint32(cfg.UnicastPeriod); i++ {
		options := tsch.OptionShared | tsch.OptionTx
		if i == selfSlot {
			options |= tsch.OptionRx
		}
		n.InstallCell(sf, options, tsch.CellNormal, tsch.NeighborBroadcast, uint16(i), co, true)
	}
}

func (r *unicastNS) SelectPacket(n *tsch.NodeScheduler, pkt tsch.Packet) (tsch.PacketAttrs, bool) {
	if pkt.Type != tsch.FrameData || !pkt.HasNextHop {
		return tsch.PacketAttrs{}, false
	}
	if len(n.KnownRoots()) > 0 {
		// A root schedule is active; the root rule owns this packet.
		return tsch.PacketAttrs{}, false
	}

	cfg := n.Config
	nextHopAddr := tsch.IDToAddr(pkt.NextHopID)
	return tsch.PacketAttrs{
		SlotframeHandle: uint32(r.sf.Handle),
		Timeslot:        cfg.H1(nextHopAddr) % uint32(cfg.UnicastPeriod),
		ChannelOffset:   uint32(cfg.Co(nextHopAddr)),
	}, true
}
