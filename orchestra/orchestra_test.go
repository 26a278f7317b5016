package orchestra

import "github.com/edi-riga/tsch-core"

// testConfig returns a Config carrying every rule this package registers,
// in spec-default order, but restricted to a single named rule so each
// rule's tests exercise only their own rule's Init/SelectPacket.
func testConfig(ruleName string) *tsch.Config {
	cfg := tsch.DefaultConfig()
	cfg.OrchestraRules = []string{ruleName}
	return cfg
}

// newTestNode builds a NodeScheduler for addr under cfg, with no neighbor
// queue (none of these rules consult queue sizes).
func newTestNode(addr tsch.Addr, cfg *tsch.Config) *tsch.NodeScheduler {
	return tsch.NewNodeScheduler(addr, cfg, nil)
}

// addrWithID returns an Addr whose last octet (and hence AddrToID/H1
// input) is id.
func addrWithID(id byte) tsch.Addr {
	return tsch.Addr{0, 0, 0, 0, 0, 0, 0, id}
}
