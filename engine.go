package tsch

import "github.com/charmbracelet/log"

// NodeScheduler is the production implementation of the downward
// interface spec §6 describes: it owns one node's schedule, routing
// table, and configured rule chain, and is the thing the surrounding
// simulator drives on every routing or MAC event. Rule implementations
// consume it as a RoutingPolicy, and as a slotframe factory via its
// Schedule.
type NodeScheduler struct {
	Addr   Addr
	ID     uint16
	Config *Config

	Schedule      *Schedule
	RoutingTable  *RoutingTable
	Neighbors     NeighborQueue

	// IsCoordinator marks the DAG root. Rule 5 (special-for-root)
	// branches on it.
	IsCoordinator bool

	rules []Rule

	// Named slotframe handles, bound by whichever rule's Init creates
	// them (spec §3's "per-rule references"). Nil until the owning rule
	// runs.
	SFCommon  *Slotframe
	SFEB      *Slotframe
	SFUnicast *Slotframe
	SFToRoot  *Slotframe

	parent      *Addr
	parentState ParentState
	knownRoots  map[uint16]bool

	log *log.Logger
}

// NewNodeScheduler constructs a NodeScheduler for addr, using cfg (which
// must not be mutated further by the caller — Init derives fields from
// it) and neighbors for queue-size lookups.
func NewNodeScheduler(addr Addr, cfg *Config, neighbors NeighborQueue) *NodeScheduler {
	return &NodeScheduler{
		Addr:         addr,
		ID:           AddrToID(addr),
		Config:       cfg,
		Schedule:     NewSchedule(),
		RoutingTable: NewRoutingTable(AddrToID(addr)),
		Neighbors:    neighbors,
		knownRoots:   make(map[uint16]bool),
		log:          log.Default().With("node", AddrToID(addr)),
	}
}

// NodeInit installs every configured rule's slotframes and cells (spec §6
// node_init). Rules run in configured order, each at the handle matching
// its position — lower handle, higher priority — so placing
// default_common last in Config.OrchestraRules gives it the lowest
// priority, as spec §4.4 requires of the fallback rule. A rule name with
// no registered implementation is logged and skipped (KindUnknownRule);
// the remaining rules still run.
func (n *NodeScheduler) NodeInit() {
	n.Config.Initialize()

	for i, name := range n.Config.OrchestraRules {
		rule, ok := lookupRule(name)
		if !ok {
			n.log.Warn("unknown orchestra rule, skipping", "rule", name,
				"err", newError("NodeScheduler.NodeInit", KindUnknownRule))
			continue
		}
		rule.Init(n, uint16(i))
		n.rules = append(n.rules, rule)
	}
}

// AddSlotframe is the upward interface a Rule's Init uses to create its
// slotframe(s) (spec §6).
func (n *NodeScheduler) AddSlotframe(handle uint16, ruleName string, size uint16) *Slotframe {
	return n.Schedule.AddSlotframe(handle, ruleName, size)
}

// InstallCell installs a cell into sf, logging and skipping the mutation
// (rather than returning an error up through the rule callback) if the
// timeslot is out of range — matching spec §4.5's failure semantics for
// a rule that mis-schedules a cell.
func (n *NodeScheduler) InstallCell(sf *Slotframe, options CellOption, typ CellType, neighborID int32, timeslot, channelOffset uint16, keepOld bool) (Cell, bool) {
	c, err := sf.AddCell(options, typ, neighborID, timeslot, channelOffset, keepOld)
	if err != nil {
		n.log.Error("failed to install cell", "slotframe", sf.Handle, "timeslot", timeslot, "err", err)
		return Cell{}, false
	}
	return c, true
}

// OnNewTimeSource notifies every rule that implements TimeSourceObserver
// that the node's routing parent changed from old to new_ (either may be
// nil, meaning "no parent"). It updates the parent-tracking state machine
// first: a new non-nil parent starts in StateParentDoesNotKnowUs; losing
// the parent entirely returns to StateNoParent.
func (n *NodeScheduler) OnNewTimeSource(old, new_ *Addr) {
	n.parent = new_
	if new_ == nil {
		n.parentState = StateNoParent
	} else {
		n.parentState = StateParentDoesNotKnowUs
	}

	for _, r := range n.rules {
		if obs, ok := r.(TimeSourceObserver); ok {
			obs.NewTimeSource(n, old, new_)
		}
	}
}

// OnChildAdded installs a direct route to addr and notifies every rule
// implementing ChildObserver.
func (n *NodeScheduler) OnChildAdded(addr Addr) {
	id := AddrToID(addr)
	if !n.RoutingTable.HasDirectRoute(id) {
		if _, err := n.RoutingTable.AddRoute(id, id, InfiniteLifetime); err != nil {
			n.log.Error("child route already present", "child", id, "err", err)
		}
	}
	for _, r := range n.rules {
		if obs, ok := r.(ChildObserver); ok {
			obs.ChildAdded(n, addr)
		}
	}
}

// OnChildRemoved removes the direct route to addr and notifies every rule
// implementing ChildObserver.
func (n *NodeScheduler) OnChildRemoved(addr Addr) {
	id := AddrToID(addr)
	n.RoutingTable.RemoveRoute(id)
	for _, r := range n.rules {
		if obs, ok := r.(ChildObserver); ok {
			obs.ChildRemoved(n, addr)
		}
	}
}

// OnTX handles the MAC's report of a transmission attempt. Only the
// DAO-ACK case is handled (spec §4.4, §6): a successful transmission of a
// DAO to the current parent flips parentState to StateParentKnowsUs.
func (n *NodeScheduler) OnTX(pkt Packet, success bool) {
	if !success || !pkt.IsDAO() {
		return
	}
	if n.parent == nil || pkt.NextHopID != AddrToID(*n.parent) {
		return
	}
	n.parentState = StateParentKnowsUs
}

// OnPacketReady assigns pkt's scheduling attributes by trying each
// configured rule in order and stopping at the first match (spec §4.4,
// §6). It reports whether any rule matched; when none does, pkt carries
// UnsetPacketAttrs.
func (n *NodeScheduler) OnPacketReady(pkt *Packet) bool {
	for _, r := range n.rules {
		if attrs, ok := r.SelectPacket(n, *pkt); ok {
			pkt.Attrs = attrs
			return true
		}
	}
	pkt.Attrs = UnsetPacketAttrs
	return false
}

// AddRoot records rootID as a known DAG root and notifies every rule
// implementing RootObserver. Root removal is not supported (spec §9 open
// question (a)): there is no RemoveRoot.
func (n *NodeScheduler) AddRoot(rootID uint16) {
	if n.knownRoots[rootID] {
		return
	}
	n.knownRoots[rootID] = true
	for _, r := range n.rules {
		if obs, ok := r.(RootObserver); ok {
			obs.RootUpdated(n, rootID, true)
		}
	}
}

// KnownRoots returns the set of root ids recorded by AddRoot. An empty
// map means no root has been discovered; indexing it by id reports whether
// that root is known.
func (n *NodeScheduler) KnownRoots() map[uint16]bool { return n.knownRoots }

// OnNodeBecomesRoot marks this node as the DAG root/coordinator.
func (n *NodeScheduler) OnNodeBecomesRoot() {
	n.IsCoordinator = true
}

// ResolveNextHop looks up the next hop for dst through the routing table,
// logging (but not otherwise acting on) a KindMissingParent condition.
func (n *NodeScheduler) ResolveNextHop(dst uint16) (uint16, bool) {
	id, err := n.RoutingTable.GetNexthop(dst)
	if err != nil {
		n.log.Warn("no route and no default route", "dst", dst, "err", err)
		return 0, false
	}
	return id, true
}

// Parent implements RoutingPolicy.
func (n *NodeScheduler) Parent() (Addr, bool) {
	if n.parent == nil {
		return Addr{}, false
	}
	return *n.parent, true
}

// Children implements RoutingPolicy by reading direct routes out of the
// routing table.
func (n *NodeScheduler) Children() []Addr {
	ids := n.RoutingTable.DirectChildren()
	out := make([]Addr, 0, len(ids))
	for _, id := range ids {
		out = append(out, IDToAddr(id))
	}
	return out
}

// ParentKnowsUs implements RoutingPolicy.
func (n *NodeScheduler) ParentKnowsUs() bool {
	return n.parentState == StateParentKnowsUs
}

// ParentState returns the node's current parent-tracking state.
func (n *NodeScheduler) ParentState() ParentState { return n.parentState }
