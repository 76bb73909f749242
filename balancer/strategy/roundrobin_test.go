package strategy

import (
	"testing"

	"github.com/rpcmesh/loadbalance/balancer"
)

func nodesOf(ids ...uint64) []*balancer.Node {
	nodes := make([]*balancer.Node, len(ids))
	for i, id := range ids {
		nodes[i] = balancer.NewNode(balancer.Endpoint{ID: id, Address: "addr"}, 1)
	}
	return nodes
}

// TestRoundRobin_DeterministicOrdering verifies P2: the first k*n picks
// over n nodes cycle in snapshot order, each node exactly k times.
func TestRoundRobin_DeterministicOrdering(t *testing.T) {
	// GIVEN a three-node snapshot
	snapshot := nodesOf(1, 2, 3)
	picker := RoundRobin{}.BuildPicker(snapshot)

	// WHEN six picks are made
	var got []uint64
	for i := 0; i < 6; i++ {
		n, err := picker.Pick(balancer.RequestMetadata{})
		if err != nil {
			t.Fatalf("Pick returned error: %v", err)
		}
		got = append(got, n.ID())
	}

	// THEN the sequence cycles 1, 2, 3, 1, 2, 3
	want := []uint64{1, 2, 3, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pick %d: want %d, got %d", i, want[i], got[i])
		}
	}
}

// TestRoundRobin_EmptySnapshot_Error verifies the empty-snapshot edge case.
func TestRoundRobin_EmptySnapshot_Error(t *testing.T) {
	picker := RoundRobin{}.BuildPicker(nil)
	if _, err := picker.Pick(balancer.RequestMetadata{}); err != balancer.ErrNoAvailableNodes {
		t.Errorf("want ErrNoAvailableNodes, got %v", err)
	}
}
