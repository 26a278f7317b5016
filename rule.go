package tsch

import "sync"

// Rule is the contract an Orchestra scheduling rule implements (spec
// §4.4). Every rule provides Name, Init and SelectPacket; the rest are
// optional hook interfaces (TimeSourceObserver, ChildObserver,
// RootObserver) a rule implements only if it needs them, the same way
// the teacher's LinkDriver implementations only implement the callbacks
// their link type actually needs.
type Rule interface {
	// Name returns the rule's registered name.
	Name() string

	// Init installs the rule's slotframe(s) and any cells it needs at
	// node start. handle is the slotframe handle this rule's primary
	// slotframe should use.
	Init(n *NodeScheduler, handle uint16)

	// SelectPacket returns the (slotframe, timeslot, channel offset) this
	// rule assigns pkt, if it matches, or ok=false if it doesn't. Dispatch
	// tries rules in configured order and stops at the first match.
	SelectPacket(n *NodeScheduler, pkt Packet) (attrs PacketAttrs, ok bool)
}

// TimeSourceObserver is implemented by rules that react to the node's
// time source (routing parent) changing.
type TimeSourceObserver interface {
	NewTimeSource(n *NodeScheduler, old, new_ *Addr)
}

// ChildObserver is implemented by rules that react to children being
// added to or removed from the routing table.
type ChildObserver interface {
	ChildAdded(n *NodeScheduler, addr Addr)
	ChildRemoved(n *NodeScheduler, addr Addr)
}

// RootObserver is implemented by rules that react to root discovery.
type RootObserver interface {
	RootUpdated(n *NodeScheduler, rootID uint16, added bool)
}

// RuleBase can be embedded by a Rule implementation to supply Name from
// RuleName; Init and SelectPacket still must be provided by the embedder.
type RuleBase struct{ RuleName string }

// Name returns the embedding rule's registered name.
func (b RuleBase) Name() string { return b.RuleName }

// RuleFactory constructs a fresh Rule instance. Registered factories are
// called once per node per configured rule name, since a Rule instance
// carries per-node slotframe handles.
type RuleFactory func() Rule

var (
	registryMu sync.RWMutex
	registry   = make(map[string]RuleFactory)
)

// RegisterRule registers a rule factory under name, the same way the
// teacher's driver package registers a LinkDriver with
// rtnetlink.RegisterDriver from an init() func. Registering two factories
// under the same name is a programming error and panics, matching the
// teacher's "registering conflicting implementations isn't supported".
func RegisterRule(name string, factory RuleFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic("tsch: rule already registered: " + name)
	}
	registry[name] = factory
}

// lookupRule returns a fresh Rule instance for name, or ok=false if no
// factory is registered under that name.
func lookupRule(name string) (Rule, bool) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}
