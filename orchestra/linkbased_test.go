package orchestra

import (
	"testing"

	"github.com/edi-riga/tsch-core"
	"github.com/edi-riga/tsch-core/internal/tschconst"
)

func TestLinkBasedChildAddedInstallsDirectionalPair(t *testing.T) {
	cfg := testConfig(tschconst.RuleLinkBased)
	self := addrWithID(2)
	child := addrWithID(9)
	n := newTestNode(self, cfg)
	n.NodeInit()
	sf, _ := n.Schedule.Slotframe(0)

	n.OnChildAdded(child)

	tTx := uint16(cfg.H2(self, child) % uint32(cfg.UnicastPeriod))
	tRx := uint16(cfg.H2(child, self) % uint32(cfg.UnicastPeriod))
	co := cfg.Co(self)

	tx, ok := sf.GetCell(tTx, co)
	if !ok || tx.Options != (tsch.OptionTx|tsch.OptionShared) {
		t.Errorf("tx cell = %+v ok=%v, want Tx|Shared at (%d,%d)", tx, ok, tTx, co)
	}
	rx, ok := sf.GetCell(tRx, co)
	if !ok || rx.Options != tsch.OptionRx {
		t.Errorf("rx cell = %+v ok=%v, want Rx-only at (%d,%d)", rx, ok, tRx, co)
	}
}

func TestLinkBasedChildRemovedDeletesExactMatch(t *testing.T) {
	cfg := testConfig(tschconst.RuleLinkBased)
	self := addrWithID(2)
	child := addrWithID(9)
	n := newTestNode(self, cfg)
	n.NodeInit()
	sf, _ := n.Schedule.Slotframe(0)

	n.OnChildAdded(child)
	n.OnChildRemoved(child)

	tTx := uint16(cfg.H2(self, child) % uint32(cfg.UnicastPeriod))
	tRx := uint16(cfg.H2(child, self) % uint32(cfg.UnicastPeriod))
	co := cfg.Co(self)

	if _, ok := sf.GetCell(tTx, co); ok {
		t.Errorf("tx cell still present after child removed")
	}
	if _, ok := sf.GetCell(tRx, co); ok {
		t.Errorf("rx cell still present after child removed")
	}
}

func TestLinkBasedSelectPacketUsesSrcDstOrderedHash(t *testing.T) {
	cfg := testConfig(tschconst.RuleLinkBased)
	self := addrWithID(2)
	other := addrWithID(9)
	n := newTestNode(self, cfg)
	n.NodeInit()

	pkt := tsch.Packet{Type: tsch.FrameData, HasNextHop: true, NextHopID: tsch.AddrToID(other)}
	if ok := n.OnPacketReady(&pkt); !ok {
		t.Fatalf("OnPacketReady reported no match")
	}
	want := cfg.H2(self, other) % uint32(cfg.UnicastPeriod)
	if pkt.Attrs.Timeslot != want {
		t.Errorf("timeslot = %d, want %d", pkt.Attrs.Timeslot, want)
	}
}
