package orchestra

import "github.com/edi-riga/tsch-core"

// defaultCommon implements the default-common rule (spec §4.4 rule 1):
// a single shared cell every node installs, used as the last-resort
// fallback when no more specific rule matches a packet. It should be
// placed last in Config.OrchestraRules.
type defaultCommon struct {
	sf *tsch.Slotframe
}

func newDefaultCommon() *defaultCommon { return &defaultCommon{} }

func (r *defaultCommon) Name() string { return "default_common" }

func (r *defaultCommon) Init(n *tsch.NodeScheduler, handle uint16) {
	cfg := n.Config
	sf := n.AddSlotframe(handle, r.Name(), cfg.CommonSharedPeriod)
	r.sf = sf
	n.SFCommon = sf

	n.InstallCell(sf, tsch.OptionTx|tsch.OptionRx|tsch.OptionShared, cfg.CommonSharedType(),
		tsch.NeighborBroadcast, 0, cfg.DefaultCommonChannelOffset, false)
}

func (r *defaultCommon) SelectPacket(n *tsch.NodeScheduler, pkt tsch.Packet) (tsch.PacketAttrs, bool) {
	return tsch.PacketAttrs{
		SlotframeHandle: uint32(r.sf.Handle),
		Timeslot:        0,
		ChannelOffset:   uint32(n.Config.DefaultCommonChannelOffset),
	}, true
}
