package orchestra

import (
	"testing"

	"github.com/edi-riga/tsch-core"
	"github.com/edi-riga/tsch-core/internal/tschconst"
)

func TestUnicastNSInitInstallsOnePerTimeslot(t *testing.T) {
	cfg := testConfig(tschconst.RuleUnicastNS)
	self := addrWithID(3)
	n := newTestNode(self, cfg)
	n.NodeInit()

	sf, ok := n.Schedule.Slotframe(0)
	if !ok {
		t.Fatalf("unicast slotframe not installed")
	}
	if got := len(sf.Cells()); got != int(cfg.UnicastPeriod) {
		t.Fatalf("cell count = %d, want %d", got, cfg.UnicastPeriod)
	}

	selfCo := cfg.Co(self)
	c, ok := sf.GetCell(3, selfCo)
	if !ok {
		t.Fatalf("no cell at self timeslot 3")
	}
	if !c.Options.Has(tsch.OptionRx) || !c.Options.Has(tsch.OptionTx) {
		t.Errorf("self timeslot options = %s, want Tx and Rx both set", c.Options)
	}

	c2, ok := sf.GetCell(4, selfCo)
	if !ok {
		t.Fatalf("no cell at timeslot 4")
	}
	if c2.Options.Has(tsch.OptionRx) {
		t.Errorf("non-self timeslot has Rx set: %s", c2.Options)
	}
}

// TestUnicastNSSelectPacket matches spec scenario 3: with UnicastPeriod=17,
// MinCO=2, MaxCO=255, selecting a data packet to a next hop whose last
// octet is 10 returns timeslot 10, channel offset 10 mod 254 + 2 = 12.
func TestUnicastNSSelectPacket(t *testing.T) {
	cfg := testConfig(tschconst.RuleUnicastNS)
	n := newTestNode(addrWithID(3), cfg)
	n.NodeInit()

	pkt := tsch.Packet{Type: tsch.FrameData, HasNextHop: true, NextHopID: tsch.AddrToID(addrWithID(10))}
	if ok := n.OnPacketReady(&pkt); !ok {
		t.Fatalf("OnPacketReady reported no match")
	}
	if pkt.Attrs.Timeslot != 10 {
		t.Errorf("timeslot = %d, want 10", pkt.Attrs.Timeslot)
	}
	if pkt.Attrs.ChannelOffset != 12 {
		t.Errorf("channel offset = %d, want 12", pkt.Attrs.ChannelOffset)
	}
}

func TestUnicastNSSelectPacketYieldsToRootRule(t *testing.T) {
	cfg := testConfig(tschconst.RuleUnicastNS)
	n := newTestNode(addrWithID(3), cfg)
	n.NodeInit()
	n.AddRoot(1)

	pkt := tsch.Packet{Type: tsch.FrameData, HasNextHop: true, NextHopID: 1}
	if ok := n.OnPacketReady(&pkt); ok {
		t.Errorf("OnPacketReady matched once a root is known")
	}
}
