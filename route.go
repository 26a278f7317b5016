package tsch

import "golang.org/x/exp/maps"

// InfiniteLifetime is the sentinel lifetime meaning a route never expires
// on its own (spec §3).
const InfiniteLifetime uint32 = 0xFFFFFFFF

// Route is a single routing table entry: reach Prefix via NextHopID, valid
// for Lifetime seconds (InfiniteLifetime if it never expires on its own).
type Route struct {
	Prefix     uint16
	NextHopID  uint16
	Lifetime   uint32
}

// IsDirect reports whether the route's next hop is the destination
// itself, i.e. the destination is a direct neighbor rather than reached
// through an intermediate router.
func (r Route) IsDirect() bool { return r.NextHopID == r.Prefix }

// RoutingTable is a node's destination -> route map, plus an optional
// default route used when a destination has no specific entry. No two
// routes may share a Prefix; the default route always has Prefix 0.
type RoutingTable struct {
	selfID  uint16
	routes  map[uint16]Route
	def     *Route
}

// NewRoutingTable returns an empty routing table for the node identified
// by selfID. selfID is needed by GetNexthop's self-destination special
// case (spec §4.3).
func NewRoutingTable(selfID uint16) *RoutingTable {
	return &RoutingTable{selfID: selfID, routes: make(map[uint16]Route)}
}

// AddRoute installs a route for prefix via nextHopID. It fails with
// KindDuplicateRoute if a route for prefix already exists; callers must
// remove the old route first.
func (rt *RoutingTable) AddRoute(prefix, nextHopID uint16, lifetime uint32) (Route, error) {
	if _, exists := rt.routes[prefix]; exists {
		return Route{}, newError("RoutingTable.AddRoute", KindDuplicateRoute)
	}
	r := Route{Prefix: prefix, NextHopID: nextHopID, Lifetime: lifetime}
	rt.routes[prefix] = r
	return r, nil
}

// RemoveRoute deletes the route for prefix, if any. It reports whether a
// route was removed.
func (rt *RoutingTable) RemoveRoute(prefix uint16) bool {
	if _, exists := rt.routes[prefix]; !exists {
		return false
	}
	delete(rt.routes, prefix)
	return true
}

// AddDefaultRoute installs nextHopID as the default route, updating the
// existing default route in place if one exists, or creating one with
// Prefix 0 otherwise.
func (rt *RoutingTable) AddDefaultRoute(nextHopID uint16, lifetime uint32) Route {
	if rt.def != nil {
		rt.def.NextHopID = nextHopID
		rt.def.Lifetime = lifetime
		return *rt.def
	}
	r := Route{Prefix: 0, NextHopID: nextHopID, Lifetime: lifetime}
	rt.def = &r
	return r
}

// RemoveDefaultRoute removes the default route, if any.
func (rt *RoutingTable) RemoveDefaultRoute() bool {
	if rt.def == nil {
		return false
	}
	rt.def = nil
	return true
}

// LookupRoute returns the route for dst: a specific route if one exists,
// else the default route, else nothing.
func (rt *RoutingTable) LookupRoute(dst uint16) (Route, bool) {
	if r, ok := rt.routes[dst]; ok {
		return r, true
	}
	if rt.def != nil {
		return *rt.def, true
	}
	return Route{}, false
}

// GetNexthop resolves the next hop id for dst, per spec §4.3's three
// special cases: dst is self resolves to self; dst is the broadcast or EB
// address resolves to broadcast; otherwise the looked-up route's next hop
// is used, or KindMissingParent if there is none.
func (rt *RoutingTable) GetNexthop(dst uint16) (uint16, error) {
	if dst == rt.selfID {
		return rt.selfID, nil
	}
	if dst == BroadcastID || dst == EBID {
		return BroadcastID, nil
	}
	r, ok := rt.LookupRoute(dst)
	if !ok {
		return 0, newError("RoutingTable.GetNexthop", KindMissingParent)
	}
	return r.NextHopID, nil
}

// DirectChildren returns the ids of every destination reachable through a
// direct route (IsDirect), i.e. every node that treats this node as its
// parent in a storing-mode topology.
func (rt *RoutingTable) DirectChildren() []uint16 {
	var out []uint16
	for _, prefix := range maps.Keys(rt.routes) {
		r := rt.routes[prefix]
		if r.IsDirect() {
			out = append(out, prefix)
		}
	}
	return out
}

// HasDirectRoute reports whether id is reachable through a direct route.
func (rt *RoutingTable) HasDirectRoute(id uint16) bool {
	r, ok := rt.routes[id]
	return ok && r.IsDirect()
}

// Expire decreases the lifetime of every finite-lifetime route by delta
// seconds and removes any route whose lifetime has reached zero or below.
// Per spec §4.3 this never mutates the table while iterating it: victims
// are collected first, then removed.
func (rt *RoutingTable) Expire(delta uint32) {
	var victims []uint16
	for prefix, r := range rt.routes {
		if r.Lifetime == InfiniteLifetime {
			continue
		}
		if r.Lifetime <= delta {
			victims = append(victims, prefix)
			continue
		}
	}
	for prefix, r := range rt.routes {
		if r.Lifetime != InfiniteLifetime && r.Lifetime > delta {
			r.Lifetime -= delta
			rt.routes[prefix] = r
		}
	}
	for _, prefix := range victims {
		delete(rt.routes, prefix)
	}

	if rt.def != nil && rt.def.Lifetime != InfiniteLifetime {
		if rt.def.Lifetime <= delta {
			rt.def = nil
		} else {
			rt.def.Lifetime -= delta
		}
	}
}
