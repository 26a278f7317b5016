package orchestra

import (
	"github.com/edi-riga/tsch-core"
	"github.com/edi-riga/tsch-core/internal/tschconst"
)

// ebPerTimeSource implements the EB-per-time-source rule (spec §4.4 rule
// 2): each node owns a distinct beacon timeslot derived from its own
// address, and additionally listens for its routing parent's beacon in
// the parent's own timeslot.
type ebPerTimeSource struct {
	sf     *tsch.Slotframe
	tSelf  uint32 // sentinel if EBPeriod == 0 (spec §8 boundary behaviour)
}

func newEBPerTimeSource() *ebPerTimeSource { return &ebPerTimeSource{} }

func (r *ebPerTimeSource) Name() string { return "eb_per_time_source" }

// timeslotFor returns a node's own EB timeslot, or tschconst.Sentinel if
// EBPeriod is zero.
func timeslotFor(cfg *tsch.Config, addr tsch.Addr) uint32 {
	if cfg.EBPeriod == 0 {
		return tschconst.Sentinel
	}
	return cfg.H1(addr) % uint32(cfg.EBPeriod)
}

func (r *ebPerTimeSource) Init(n *tsch.NodeScheduler, handle uint16) {
	cfg := n.Config
	sf := n.AddSlotframe(handle, r.Name(), cfg.EBPeriod)
	r.sf = sf
	n.SFEB = sf

	r.tSelf = timeslotFor(cfg, n.Addr)
	if r.tSelf == tschconst.Sentinel {
		return
	}

	n.InstallCell(sf, tsch.OptionTx, tsch.CellAdvertisingOnly, tsch.NeighborBroadcast,
		uint16(r.tSelf), cfg.EBChannelOffset, false)
}

func (r *ebPerTimeSource) SelectPacket(n *tsch.NodeScheduler, pkt tsch.Packet) (tsch.PacketAttrs, bool) {
	if pkt.Type != tsch.FrameBeacon || r.tSelf == tschconst.Sentinel {
		return tsch.PacketAttrs{}, false
	}
	return tsch.PacketAttrs{
		SlotframeHandle: uint32(r.sf.Handle),
		Timeslot:        r.tSelf,
		ChannelOffset:   uint32(n.Config.EBChannelOffset),
	}, true
}

// NewTimeSource implements tsch.TimeSourceObserver.
func (r *ebPerTimeSource) NewTimeSource(n *tsch.NodeScheduler, old, new_ *tsch.Addr) {
	if r.tSelf == tschconst.Sentinel {
		return
	}
	cfg := n.Config

	if old != nil {
		tOld := timeslotFor(cfg, *old)
		if tOld != tschconst.Sentinel {
			if uint32(tOld) == r.tSelf {
				n.InstallCell(r.sf, tsch.OptionTx, tsch.CellAdvertisingOnly, tsch.NeighborBroadcast,
					uint16(tOld), cfg.EBChannelOffset, false)
			} else {
				r.sf.RemoveCellByTimeslot(uint16(tOld))
			}
		}
	}

	if new_ != nil {
		tNew := timeslotFor(cfg, *new_)
		if tNew != tschconst.Sentinel {
			options := tsch.OptionRx
			if tNew == r.tSelf {
				options |= tsch.OptionTx
			}
			n.InstallCell(r.sf, options, tsch.CellAdvertisingOnly, tsch.NeighborBroadcast,
				uint16(tNew), cfg.EBChannelOffset, false)
		}
	}
}
