package tsch

import (
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv6"

	"github.com/edi-riga/tsch-core/internal/tschconst"
)

// FrameType distinguishes the two frame classes Orchestra's rules care
// about: enhanced beacons, which only the EB-per-time-source rule
// matches, and everything else ("data"), which the unicast/root rules
// match.
type FrameType uint8

const (
	// FrameBeacon is an enhanced beacon frame.
	FrameBeacon FrameType = iota
	// FrameData is any non-beacon frame, including RPL control traffic.
	FrameData
)

// rplDAOType and rplDAOCode identify a DAO message within an ICMPv6
// envelope, per RFC 6550 §6 (type 155, code 2 "DAO").
const (
	rplDAOType = 155
	rplDAOCode = 2
)

// Packet is the minimal egress/ingress packet shape Orchestra's dispatch
// needs: enough to pick a slot, and (for DAO traffic) enough to recognize
// the ACK that flips a node's "parent knows us" bit.
type Packet struct {
	Type        FrameType
	Dst         uint16
	NextHopID   uint16
	HasNextHop  bool

	// ICMP, when non-nil, is the packet's ICMPv6 envelope. A DAO is
	// represented as a real RPL control message rather than a bare
	// boolean, so IsDAO can be reused anywhere an ICMPv6 message is
	// already in hand.
	ICMP *icmp.Message

	// Attrs carries the slotframe/timeslot/channel-offset a rule selected
	// for this packet, or the all-sentinel value if no rule matched.
	Attrs PacketAttrs
}

// PacketAttrs are the scheduling attributes Orchestra's dispatch assigns
// to a packet (spec §4.4). OnPacketReady sets all three fields to Sentinel
// when no rule matches.
type PacketAttrs struct {
	SlotframeHandle uint32
	Timeslot        uint32
	ChannelOffset   uint32
}

// UnsetPacketAttrs is the "no rule matched" value: any slotframe, any
// timeslot, any channel offset.
var UnsetPacketAttrs = PacketAttrs{
	SlotframeHandle: tschconst.Sentinel,
	Timeslot:        tschconst.Sentinel,
	ChannelOffset:   tschconst.Sentinel,
}

// NewDAO builds the ICMPv6 envelope for a Destination Advertisement
// Option message, for use in Packet.ICMP. The next hop is carried by
// Packet.NextHopID, not by the envelope.
func NewDAO() *icmp.Message {
	return &icmp.Message{
		Type: ipv6.ICMPType(rplDAOType),
		Code: rplDAOCode,
		Body: &icmp.RawBody{},
	}
}

// IsDAO reports whether pkt carries a DAO message.
func (p Packet) IsDAO() bool {
	return p.ICMP != nil && p.ICMP.Type == ipv6.ICMPType(rplDAOType) && p.ICMP.Code == rplDAOCode
}
