package discovery

import "github.com/rpcmesh/loadbalance/balancer"

// InstanceIterator advances a Picker one address at a time, for hosts
// that draw repeated candidates (e.g. connection retries) without
// exposing balancer.Node. Each Next performs one Pick with empty request
// metadata; a failed pick ends iteration.
type InstanceIterator struct {
	picker balancer.Picker
}

// NewInstanceIterator wraps an already-resolved Picker for iteration.
func NewInstanceIterator(picker balancer.Picker) *InstanceIterator {
	return &InstanceIterator{picker: picker}
}

// Next returns the next address, or ok=false once the underlying picker
// can no longer produce one.
func (it *InstanceIterator) Next() (address string, ok bool) {
	n, err := it.picker.Pick(balancer.RequestMetadata{})
	if err != nil {
		return "", false
	}
	return n.Endpoint().Address, true
}
