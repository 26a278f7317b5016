package tsch

import (
	"testing"

	"github.com/edi-riga/tsch-core/internal/tschconst"
)

func TestNewDAOIsRecognizedByIsDAO(t *testing.T) {
	pkt := Packet{ICMP: NewDAO()}
	if !pkt.IsDAO() {
		t.Errorf("IsDAO() = false for a packet built from NewDAO()")
	}
}

func TestIsDAOFalseWithoutICMP(t *testing.T) {
	pkt := Packet{}
	if pkt.IsDAO() {
		t.Errorf("IsDAO() = true for a packet with no ICMP envelope")
	}
}

func TestUnsetPacketAttrsIsAllSentinel(t *testing.T) {
	want := PacketAttrs{SlotframeHandle: tschconst.Sentinel, Timeslot: tschconst.Sentinel, ChannelOffset: tschconst.Sentinel}
	if UnsetPacketAttrs != want {
		t.Errorf("UnsetPacketAttrs = %+v, want %+v", UnsetPacketAttrs, want)
	}
}
