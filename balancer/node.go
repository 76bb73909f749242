package balancer

import (
	"fmt"
	"sync/atomic"
)

// Endpoint identifies one backend instance. Address is opaque to the core;
// equality and hashing of the address are the caller's concern (the
// discovery adapter only ever compares addresses it received verbatim from
// a Discoverer).
type Endpoint struct {
	ID      uint64
	Address string
}

// Node is a per-backend record: a stable identity plus the live counters a
// strategy may read. All four counters are safe for concurrent use from
// many goroutines without external locking — writers use Add/Store,
// pickers use Load, and none of it is a linearization point. Two Node
// values observed with the same Endpoint.ID refer to the same backend and
// must be the same *Node. The discovery adapter ensures this within one
// cache entry (see discovery.Adapter.syncInstances); distinct cache
// entries hold distinct *Node values for the same ID.
//
// Thread-safety: safe for concurrent use. Endpoint and Weight are set at
// construction and never mutated in place — CloneWithMetadata produces a
// new Node when they change.
type Node struct {
	endpoint Endpoint
	weight   uint32

	inFlight  atomic.Int64
	success   atomic.Uint64
	fail      atomic.Uint64
	lastRTTNs atomic.Uint64
}

// NewNode creates a Node with zeroed counters.
func NewNode(endpoint Endpoint, weight uint32) *Node {
	return &Node{endpoint: endpoint, weight: weight}
}

// Endpoint returns the node's identity and address.
func (n *Node) Endpoint() Endpoint { return n.endpoint }

// ID is shorthand for Endpoint().ID.
func (n *Node) ID() uint64 { return n.endpoint.ID }

// Weight returns the node's static weight. 0 means "present but not
// preferred"; callers must never divide by it directly (use max(weight, 1)
// the way strategy.ConsistentHash does; strategy.WeightedRoundRobin only
// compares weights and takes the gcd of the positive ones).
func (n *Node) Weight() uint32 { return n.weight }

// AddInFlight adjusts the in-flight counter by delta (positive on dispatch,
// negative on completion) and returns the new value.
func (n *Node) AddInFlight(delta int64) int64 { return n.inFlight.Add(delta) }

// InFlight returns the current in-flight count. A hint, not a
// linearization point: concurrent pickers may observe a stale value.
func (n *Node) InFlight() int64 { return n.inFlight.Load() }

// AddSuccess increments the cumulative success counter.
func (n *Node) AddSuccess(delta uint64) uint64 { return n.success.Add(delta) }

// Success returns the cumulative success count. Reserved for future
// policies; no strategy in this kernel reads it.
func (n *Node) Success() uint64 { return n.success.Load() }

// AddFail increments the cumulative failure counter.
func (n *Node) AddFail(delta uint64) uint64 { return n.fail.Add(delta) }

// Fail returns the cumulative failure count. Reserved for future policies.
func (n *Node) Fail() uint64 { return n.fail.Load() }

// StoreLastRTT records the most recently observed round-trip time in
// nanoseconds. 0 means "no sample yet".
func (n *Node) StoreLastRTT(ns uint64) { n.lastRTTNs.Store(ns) }

// LastRTT returns the last observed round-trip time in nanoseconds.
func (n *Node) LastRTT() uint64 { return n.lastRTTNs.Load() }

// CloneWithMetadata returns a new Node with the given endpoint and weight
// but the current values of this Node's counters. Used by the discovery
// adapter when a backend's id is retained across a rebuild but its address
// or weight changed — counters must not reset in that case (spec I4).
func (n *Node) CloneWithMetadata(endpoint Endpoint, weight uint32) *Node {
	clone := &Node{endpoint: endpoint, weight: weight}
	clone.inFlight.Store(n.inFlight.Load())
	clone.success.Store(n.success.Load())
	clone.fail.Store(n.fail.Load())
	clone.lastRTTNs.Store(n.lastRTTNs.Load())
	return clone
}

// String renders the node for log lines: "<id>@<address> w=<weight>".
func (n *Node) String() string {
	return fmt.Sprintf("%d@%s w=%d", n.endpoint.ID, n.endpoint.Address, n.weight)
}
