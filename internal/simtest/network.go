// Package simtest provides the concurrent test-harness helpers used by
// this module's own test suites: building a small multi-node network and
// bringing every node up in parallel.
package simtest

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"

	tsch "github.com/edi-riga/tsch-core"
	"github.com/edi-riga/tsch-core/simnode"
)

// NewNetwork builds count nodes, addressed sequentially starting at 1,
// sharing one Config, and brings every node up concurrently with
// NodeInit. Each node gets its own Config clone so that rule
// implementations never observe another node's slotframes through a
// shared pointer.
//
// Bringing nodes up concurrently mirrors how a real deployment's nodes
// initialize independently of one another; running node_init serially in
// a test would hide any rule implementation that secretly depended on
// package-level state instead of the Config/NodeScheduler it was given.
func NewNetwork(tb testing.TB, count int, cfgTemplate *tsch.Config) []*tsch.NodeScheduler {
	tb.Helper()

	nodes := make([]*tsch.NodeScheduler, count)
	var eg errgroup.Group
	for i := 0; i < count; i++ {
		i := i
		eg.Go(func() error {
			id := uint16(i + 1)
			addr := tsch.IDToAddr(id)
			cfg := cloneConfig(cfgTemplate)
			n := tsch.NewNodeScheduler(addr, cfg, simnode.NewNeighbors())
			n.NodeInit()
			nodes[i] = n
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		tb.Fatalf("bringing up test network: %v", err)
	}
	return nodes
}

// cloneConfig returns a shallow copy of tmpl. When tmpl has not been
// initialized yet, each node's Initialize call derives its own fields
// independently; an already-initialized tmpl is copied as it is.
func cloneConfig(tmpl *tsch.Config) *tsch.Config {
	c := *tmpl
	return &c
}

// Link installs parent as child's routing parent and child as one of
// parent's direct children, driving both nodes' observer callbacks the
// way a real RPL parent-selection exchange would.
func Link(parent, child *tsch.NodeScheduler) {
	_ = simnode.ParentReplace(child, parent)
}

// AckDAO simulates a successful DAO transmission from child to parent,
// flipping child's parentState to StateParentKnowsUs.
func AckDAO(child *tsch.NodeScheduler, parent *tsch.NodeScheduler) {
	simnode.AckDAO(child, parent)
}

// String renders nodes' addresses for test failure messages.
func String(nodes []*tsch.NodeScheduler) string {
	s := ""
	for i, n := range nodes {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", n.ID)
	}
	return s
}
