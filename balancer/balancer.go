package balancer

import "sync"

// Balancer holds the current node set for one logical backend and vends an
// up-to-date Picker on demand. It is the direct-use entry point described
// in spec.md §4.C; the discovery adapter (balancer/discovery) is the
// discovery-backed entry point and wraps a Strategy the same way.
//
// Thread-safety: safe for concurrent use. UpdateNodes may run concurrently
// with any number of Picker calls; readers always see either the old or
// the new snapshot, never a partial one.
type Balancer struct {
	strategy BalanceStrategy

	mu       sync.RWMutex
	snapshot []*Node
}

// NewBalancer creates a Balancer with an empty node set.
func NewBalancer(strategy BalanceStrategy) *Balancer {
	return &Balancer{strategy: strategy}
}

// UpdateNodes atomically replaces the current snapshot. Pickers already
// handed out by Picker() keep observing the snapshot they were built from
// (snapshot isolation, spec §5 "Ordering guarantees").
func (b *Balancer) UpdateNodes(nodes []*Node) {
	b.mu.Lock()
	b.snapshot = nodes
	b.mu.Unlock()
}

// Picker clones the current snapshot reference under the read lock,
// releases the lock, and builds a fresh Picker from it. No lock is held
// across BuildPicker, so a slow strategy build never blocks writers.
func (b *Balancer) Picker() Picker {
	b.mu.RLock()
	snapshot := b.snapshot
	b.mu.RUnlock()
	return b.strategy.BuildPicker(snapshot)
}

// Nodes returns the current snapshot reference. Intended for inspection
// (metrics, tests) — callers must not mutate the returned slice.
func (b *Balancer) Nodes() []*Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshot
}
