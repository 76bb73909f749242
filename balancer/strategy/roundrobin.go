package strategy

import (
	"sync/atomic"

	"github.com/rpcmesh/loadbalance/balancer"
)

// RoundRobin cycles through the snapshot in order, wrapping back to index
// 0 after the last node. Not weight-aware.
type RoundRobin struct{}

// BuildPicker implements balancer.BalanceStrategy.
func (RoundRobin) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	return &roundRobinPicker{nodes: snapshot}
}

type roundRobinPicker struct {
	nodes []*balancer.Node
	idx   uint64
}

// Pick implements balancer.Picker. The cursor is a single atomic counter;
// wrapping at the maximum representable index is handled by modulo
// arithmetic so it never needs an explicit reset.
func (p *roundRobinPicker) Pick(balancer.RequestMetadata) (*balancer.Node, error) {
	n := len(p.nodes)
	if n == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}
	i := atomic.AddUint64(&p.idx, 1) - 1
	return p.nodes[i%uint64(n)], nil
}
