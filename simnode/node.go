// Package simnode provides a convenience API on top of the tsch package
// for bringing up a single node, analogous to how rtnl wraps rtnetlink:
// a small functional-options constructor plus helpers for the
// operations a caller reaches for most often.
package simnode

import (
	tsch "github.com/edi-riga/tsch-core"
)

// build accumulates the Config and NeighborQueue a New/NewRoot call
// assembles before constructing the node.
type build struct {
	cfg       *tsch.Config
	neighbors tsch.NeighborQueue
}

// Option tunes the node a New or NewRoot call brings up, before NodeInit
// runs.
type Option func(*build)

// WithOrchestraRules overrides the default rule chain and its priority
// order.
func WithOrchestraRules(names ...string) Option {
	return func(b *build) { b.cfg.OrchestraRules = names }
}

// WithSenderBasedUnicast selects the sender-based variant of the storing
// mode unicast rule (spec rule 4's alternate base-options direction).
func WithSenderBasedUnicast() Option {
	return func(b *build) { b.cfg.UnicastSenderBased = true }
}

// WithCollisionFreeHash asserts H1 is injective over the active node set,
// letting a sufficiently long sender-based unicast period skip the Shared
// option entirely.
func WithCollisionFreeHash() Option {
	return func(b *build) { b.cfg.CollisionFreeHash = true }
}

// WithHashFuncs overrides the pluggable H1/H2 hash functions.
func WithHashFuncs(h1 tsch.HashFunc, h2 tsch.Hash2Func) Option {
	return func(b *build) { b.cfg.H1 = h1; b.cfg.H2 = h2 }
}

// WithNeighbors supplies the NeighborQueue stored in the node's Neighbors
// field, for callers to pass to Schedule.Select's select-best tie-break.
// Without this option the node gets an empty Neighbors table (every
// neighbor reports queue size 0).
func WithNeighbors(neighbors tsch.NeighborQueue) Option {
	return func(b *build) { b.neighbors = neighbors }
}

// New builds a Config from tsch.DefaultConfig, applies opts, and returns a
// NodeScheduler for addr with its rule chain already installed.
//
// The typical use is:
//
//	n := simnode.New(addr, simnode.WithNeighbors(q))
//	// n is ready to receive OnNewTimeSource/OnChildAdded/OnPacketReady calls
func New(addr tsch.Addr, opts ...Option) *tsch.NodeScheduler {
	return newNode(addr, opts, false)
}

// NewRoot is New, additionally marking the node as the DAG root/coordinator
// (spec rule 5's always-listening slotframe) before NodeInit installs any
// cells that branch on it.
func NewRoot(addr tsch.Addr, opts ...Option) *tsch.NodeScheduler {
	return newNode(addr, opts, true)
}

func newNode(addr tsch.Addr, opts []Option, root bool) *tsch.NodeScheduler {
	b := &build{cfg: tsch.DefaultConfig(), neighbors: NewNeighbors()}
	for _, opt := range opts {
		opt(b)
	}

	n := tsch.NewNodeScheduler(addr, b.cfg, b.neighbors)
	if root {
		n.OnNodeBecomesRoot()
	}
	n.NodeInit()
	return n
}
