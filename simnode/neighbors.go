package simnode

import tsch "github.com/edi-riga/tsch-core"

// Neighbors is the reference tsch.NeighborQueue implementation: spec.md's
// upward interface requires a "neighbors map with queue-size query" but
// gives no concrete implementation, so this is the one production callers
// get for free. An unseen neighbor reports queue size 0.
type Neighbors struct {
	sizes map[int32]int
}

// NewNeighbors returns an empty Neighbors table.
func NewNeighbors() *Neighbors {
	return &Neighbors{sizes: make(map[int32]int)}
}

// SetQueueSize records that neighborID currently has n packets queued.
func (nb *Neighbors) SetQueueSize(neighborID int32, n int) {
	nb.sizes[neighborID] = n
}

// QueueSize implements tsch.NeighborQueue.
func (nb *Neighbors) QueueSize(neighborID int32) int {
	return nb.sizes[neighborID]
}

// ParentAdd sets parent as child's routing parent, failing if child
// already has one. Both sides are driven through their normal observer
// callbacks, exactly as a real RPL parent-selection exchange would.
func ParentAdd(child, parent *tsch.NodeScheduler) error {
	if _, ok := child.Parent(); ok {
		return &tsch.Error{Op: "simnode.ParentAdd", Kind: tsch.KindDuplicateRoute}
	}
	return parentReplace(child, parent)
}

// ParentReplace sets parent as child's routing parent unconditionally,
// whether or not child had one already. The child's rules see the switch
// through a single OnNewTimeSource(old, new) call; the old parent's
// NodeScheduler is not reached, so its direct route to child is not
// removed.
func ParentReplace(child, parent *tsch.NodeScheduler) error {
	return parentReplace(child, parent)
}

func parentReplace(child, parent *tsch.NodeScheduler) error {
	var old *tsch.Addr
	if o, ok := child.Parent(); ok {
		old = &o
	}
	addr := parent.Addr
	child.OnNewTimeSource(old, &addr)
	parent.OnChildAdded(child.Addr)
	return nil
}

// ParentDel clears child's routing parent, notifying both sides.
func ParentDel(child, parent *tsch.NodeScheduler) {
	addr := parent.Addr
	child.OnNewTimeSource(&addr, nil)
	parent.OnChildRemoved(child.Addr)
}

// AckDAO reports a successful DAO transmission from child to parent,
// advancing child past StateParentDoesNotKnowUs.
func AckDAO(child, parent *tsch.NodeScheduler) {
	child.OnTX(tsch.Packet{ICMP: tsch.NewDAO(), NextHopID: parent.ID}, true)
}
