package tsch

import "testing"

func TestRoutingTableAddDuplicateRoute(t *testing.T) {
	rt := NewRoutingTable(1)
	if _, err := rt.AddRoute(5, 6, InfiniteLifetime); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}
	if _, err := rt.AddRoute(5, 7, InfiniteLifetime); !IsKind(err, KindDuplicateRoute) {
		t.Fatalf("err = %v, want KindDuplicateRoute", err)
	}
}

func TestRoutingTableGetNexthopSpecialCases(t *testing.T) {
	rt := NewRoutingTable(1)

	if got, err := rt.GetNexthop(1); err != nil || got != 1 {
		t.Errorf("GetNexthop(self) = %d, %v, want 1, nil", got, err)
	}
	if got, err := rt.GetNexthop(BroadcastID); err != nil || got != BroadcastID {
		t.Errorf("GetNexthop(broadcast) = %d, %v, want %d, nil", got, err, BroadcastID)
	}
	if got, err := rt.GetNexthop(EBID); err != nil || got != BroadcastID {
		t.Errorf("GetNexthop(EB) = %d, %v, want %d, nil", got, err, BroadcastID)
	}
	if _, err := rt.GetNexthop(99); !IsKind(err, KindMissingParent) {
		t.Errorf("err = %v, want KindMissingParent", err)
	}
}

func TestRoutingTableGetNexthopFallsBackToDefault(t *testing.T) {
	rt := NewRoutingTable(1)
	rt.AddDefaultRoute(42, InfiniteLifetime)

	got, err := rt.GetNexthop(99)
	if err != nil || got != 42 {
		t.Errorf("GetNexthop(99) = %d, %v, want 42, nil", got, err)
	}
}

func TestRoutingTableAddDefaultRouteUpdatesInPlace(t *testing.T) {
	rt := NewRoutingTable(1)
	rt.AddDefaultRoute(42, 10)
	rt.AddDefaultRoute(43, 20)

	got, err := rt.GetNexthop(99)
	if err != nil || got != 43 {
		t.Errorf("GetNexthop(99) = %d, %v, want 43, nil", got, err)
	}
}

func TestRoutingTableDirectChildren(t *testing.T) {
	rt := NewRoutingTable(1)
	rt.AddRoute(2, 2, InfiniteLifetime)  // direct
	rt.AddRoute(3, 2, InfiniteLifetime)  // indirect, via 2
	rt.AddRoute(4, 4, InfiniteLifetime)  // direct

	children := rt.DirectChildren()
	if len(children) != 2 {
		t.Fatalf("DirectChildren() = %v, want 2 entries", children)
	}
	if !rt.HasDirectRoute(2) || !rt.HasDirectRoute(4) {
		t.Errorf("expected 2 and 4 to be direct routes")
	}
	if rt.HasDirectRoute(3) {
		t.Errorf("3 should not be a direct route")
	}
}

// TestRoutingTableExpiry matches spec scenario 5: a route with lifetime
// 10, swept by delta 4 at t=4 and t=8, has lifetime 2 remaining; a third
// sweep at t=12 removes it.
func TestRoutingTableExpiry(t *testing.T) {
	rt := NewRoutingTable(1)
	rt.AddRoute(5, 6, 10)

	rt.Expire(4)
	r, ok := rt.LookupRoute(5)
	if !ok || r.Lifetime != 6 {
		t.Fatalf("after first sweep: lifetime = %v ok=%v, want 6", r, ok)
	}

	rt.Expire(4)
	r, ok = rt.LookupRoute(5)
	if !ok || r.Lifetime != 2 {
		t.Fatalf("after second sweep: lifetime = %v ok=%v, want 2", r, ok)
	}

	rt.Expire(4)
	if _, ok := rt.LookupRoute(5); ok {
		t.Errorf("route still present after third sweep, want it removed")
	}
}

func TestRoutingTableExpiryIgnoresInfiniteLifetime(t *testing.T) {
	rt := NewRoutingTable(1)
	rt.AddRoute(5, 6, InfiniteLifetime)
	rt.Expire(1_000_000)

	if _, ok := rt.LookupRoute(5); !ok {
		t.Errorf("infinite-lifetime route was removed by Expire")
	}
}

func TestRoutingTableExpiryDoesNotMutateWhileIterating(t *testing.T) {
	rt := NewRoutingTable(1)
	for i := uint16(0); i < 50; i++ {
		rt.AddRoute(i, i, 1)
	}
	rt.Expire(1)
	for i := uint16(0); i < 50; i++ {
		if _, ok := rt.LookupRoute(i); ok {
			t.Fatalf("route %d survived a sweep that should have expired all of them", i)
		}
	}
}
