package strategy

import (
	"testing"

	"github.com/rpcmesh/loadbalance/balancer"
)

// TestConsistentHash_SameKeySameNode verifies repeated picks with the
// same hash key land on the same node (affinity).
func TestConsistentHash_SameKeySameNode(t *testing.T) {
	snapshot := nodesOf(1, 2, 3, 4, 5)
	picker := ConsistentHash{}.BuildPicker(snapshot)

	req := balancer.WithHashKey(0xdeadbeef)
	first, err := picker.Pick(req)
	if err != nil {
		t.Fatalf("Pick returned error: %v", err)
	}
	for i := 0; i < 20; i++ {
		n, err := picker.Pick(req)
		if err != nil {
			t.Fatalf("Pick returned error: %v", err)
		}
		if n.ID() != first.ID() {
			t.Errorf("pick %d: want node %d, got %d", i, first.ID(), n.ID())
		}
	}
}

// TestConsistentHash_MissingHashKey_Error verifies the required-metadata
// edge case.
func TestConsistentHash_MissingHashKey_Error(t *testing.T) {
	picker := ConsistentHash{}.BuildPicker(nodesOf(1, 2))
	if _, err := picker.Pick(balancer.RequestMetadata{}); err != balancer.ErrMissingHashKey {
		t.Errorf("want ErrMissingHashKey, got %v", err)
	}
}

// TestConsistentHash_MinimalDisruption verifies P5: removing one node
// from a snapshot of n remaps approximately 1/n of keys, at
// virtual_factor >= 100 and >= 10,000 sampled keys, within +/-5
// percentage points. Keys are raw sequential integers, not pre-mixed —
// Pick itself is responsible for spreading them over the ring.
func TestConsistentHash_MinimalDisruption(t *testing.T) {
	const n = 5
	full := nodesOf(1, 2, 3, 4, 5)
	cfg := Config{VirtualFactor: 100}
	before := ConsistentHash{Config: cfg}.BuildPicker(full)

	var reduced []*balancer.Node
	for _, node := range full {
		if node.ID() != 3 {
			reduced = append(reduced, node)
		}
	}
	after := ConsistentHash{Config: cfg}.BuildPicker(reduced)

	const sampleSize = 10000
	moved := 0
	for key := uint64(0); key < sampleSize; key++ {
		req := balancer.WithHashKey(key)
		beforeNode, _ := before.Pick(req)
		afterNode, _ := after.Pick(req)
		if beforeNode.ID() != afterNode.ID() {
			moved++
		}
	}

	// THEN the moved fraction is close to 1/n, within a 5-percentage-point
	// tolerance band.
	frac := float64(moved) / float64(sampleSize)
	want := 1.0 / float64(n)
	if diff := frac - want; diff < -0.05 || diff > 0.05 {
		t.Errorf("disruption fraction = %.3f, want ~%.3f (+/-0.05)", frac, want)
	}
}

func TestConsistentHash_EmptySnapshot_Error(t *testing.T) {
	picker := ConsistentHash{}.BuildPicker(nil)
	if _, err := picker.Pick(balancer.WithHashKey(1)); err != balancer.ErrNoAvailableNodes {
		t.Errorf("want ErrNoAvailableNodes, got %v", err)
	}
}
