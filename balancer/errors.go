package balancer

import "errors"

// ErrNoAvailableNodes is returned when a Picker's snapshot is empty, or
// when a discovery call returns zero instances. It carries no payload
// beyond its identity — callers distinguish it with errors.Is.
var ErrNoAvailableNodes = errors.New("loadbalance: no available nodes")

// ErrMissingHashKey is returned by a hash-requiring strategy (currently
// only ConsistentHash) when RequestMetadata has no HashKey.
var ErrMissingHashKey = errors.New("loadbalance: missing hash key")
