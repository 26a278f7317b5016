package orchestra

import "github.com/edi-riga/tsch-core"

// specialForRoot implements the root rule (spec §4.4 rule 5): every node
// keeps a to-root slotframe sized for a single DAG root, and a
// coordinator additionally keeps a dedicated always-listening receive
// slotframe so that any node's first beacon-period transmission toward
// it always lands on an active cell.
type specialForRoot struct {
	sfToRoot *tsch.Slotframe
}

func newSpecialForRoot() *specialForRoot { return &specialForRoot{} }

func (r *specialForRoot) Name() string { return "special_for_root" }

func (r *specialForRoot) Init(n *tsch.NodeScheduler, handle uint16) {
	cfg := n.Config
	sf := n.AddSlotframe(handle, r.Name(), cfg.RootPeriod)
	r.sfToRoot = sf
	n.SFToRoot = sf

	if n.IsCoordinator {
		coordHandle := handle | 0x8000
		coordSF := n.AddSlotframe(coordHandle, r.Name()+"_coordinator", 1)
		n.InstallCell(coordSF, tsch.OptionRx, tsch.CellNormal, tsch.NeighborBroadcast,
			0, cfg.Co(n.Addr), false)
	}
}

// RootUpdated implements tsch.RootObserver. Root removal is explicitly
// unsupported (spec §9 open question (a)), so added=false is ignored.
func (r *specialForRoot) RootUpdated(n *tsch.NodeScheduler, rootID uint16, added bool) {
	if !added {
		return
	}
	cfg := n.Config
	t := uint16(cfg.H1(n.Addr) % uint32(cfg.RootPeriod))
	n.InstallCell(r.sfToRoot, tsch.OptionTx|tsch.OptionShared, tsch.CellNormal,
		tsch.NeighborBroadcast, t, cfg.Co(tsch.IDToAddr(rootID)), false)
}

func (r *specialForRoot) SelectPacket(n *tsch.NodeScheduler, pkt tsch.Packet) (tsch.PacketAttrs, bool) {
	if n.IsCoordinator || pkt.Type != tsch.FrameData || !pkt.HasNextHop {
		return tsch.PacketAttrs{}, false
	}
	roots := n.KnownRoots()
	if !roots[pkt.NextHopID] {
		return tsch.PacketAttrs{}, false
	}

	cfg := n.Config
	return tsch.PacketAttrs{
		SlotframeHandle: uint32(r.sfToRoot.Handle),
		Timeslot:        cfg.H1(n.Addr) % uint32(cfg.RootPeriod),
		ChannelOffset:   uint32(cfg.Co(tsch.IDToAddr(pkt.NextHopID))),
	}, true
}
