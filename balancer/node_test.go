package balancer

import "testing"

// TestNode_CountersIndependent verifies Node's atomic counters move
// independently and CloneWithMetadata carries them forward bit-exact
// (spec P7).
func TestNode_CountersIndependent(t *testing.T) {
	// GIVEN a node with some counter activity
	n := NewNode(Endpoint{ID: 1, Address: "10.0.0.1:9000"}, 5)
	n.AddInFlight(3)
	n.AddSuccess(10)
	n.AddFail(2)
	n.StoreLastRTT(1500)

	// WHEN it is cloned with new metadata
	clone := n.CloneWithMetadata(Endpoint{ID: 1, Address: "10.0.0.2:9000"}, 7)

	// THEN identity-independent fields update, counters carry over exactly
	if clone.Weight() != 7 {
		t.Errorf("Weight() = %d, want 7", clone.Weight())
	}
	if clone.Endpoint().Address != "10.0.0.2:9000" {
		t.Errorf("Address = %q, want 10.0.0.2:9000", clone.Endpoint().Address)
	}
	if clone.InFlight() != 3 {
		t.Errorf("InFlight() = %d, want 3", clone.InFlight())
	}
	if clone.Success() != 10 {
		t.Errorf("Success() = %d, want 10", clone.Success())
	}
	if clone.Fail() != 2 {
		t.Errorf("Fail() = %d, want 2", clone.Fail())
	}
	if clone.LastRTT() != 1500 {
		t.Errorf("LastRTT() = %d, want 1500", clone.LastRTT())
	}

	// THEN the original node is untouched by the clone
	n.AddInFlight(1)
	if clone.InFlight() != 3 {
		t.Errorf("clone.InFlight() changed after mutating original: got %d", clone.InFlight())
	}
}

func TestNode_ZeroWeightAllowed(t *testing.T) {
	n := NewNode(Endpoint{ID: 1, Address: "a"}, 0)
	if n.Weight() != 0 {
		t.Errorf("Weight() = %d, want 0", n.Weight())
	}
}

type stubStrategy struct {
	built chan []*Node
}

func (s *stubStrategy) BuildPicker(snapshot []*Node) Picker {
	if s.built != nil {
		s.built <- snapshot
	}
	return stubPicker{snapshot: snapshot}
}

type stubPicker struct{ snapshot []*Node }

func (p stubPicker) Pick(RequestMetadata) (*Node, error) {
	if len(p.snapshot) == 0 {
		return nil, ErrNoAvailableNodes
	}
	return p.snapshot[0], nil
}

// TestBalancer_SnapshotIsolation verifies a Picker handed out before an
// UpdateNodes call keeps observing its original snapshot (spec I1, §5
// "Ordering guarantees").
func TestBalancer_SnapshotIsolation(t *testing.T) {
	// GIVEN a balancer with one node
	b := NewBalancer(&stubStrategy{})
	nodeA := NewNode(Endpoint{ID: 1, Address: "a"}, 1)
	b.UpdateNodes([]*Node{nodeA})

	picker := b.Picker()

	// WHEN the balancer's node set changes after the picker was built
	nodeB := NewNode(Endpoint{ID: 2, Address: "b"}, 1)
	b.UpdateNodes([]*Node{nodeB})

	// THEN the already-built picker still returns the old node
	got, err := picker.Pick(RequestMetadata{})
	if err != nil {
		t.Fatalf("Pick() error = %v", err)
	}
	if got.ID() != nodeA.ID() {
		t.Errorf("Pick() = node %d, want node %d (snapshot isolation violated)", got.ID(), nodeA.ID())
	}

	// THEN a freshly-built picker sees the new node
	if got, _ := b.Picker().Pick(RequestMetadata{}); got.ID() != nodeB.ID() {
		t.Errorf("fresh Pick() = node %d, want node %d", got.ID(), nodeB.ID())
	}
}

func TestBalancer_EmptySnapshot(t *testing.T) {
	b := NewBalancer(&stubStrategy{})
	_, err := b.Picker().Pick(RequestMetadata{})
	if err != ErrNoAvailableNodes {
		t.Errorf("err = %v, want ErrNoAvailableNodes", err)
	}
}
