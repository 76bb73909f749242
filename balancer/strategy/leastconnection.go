package strategy

import "github.com/rpcmesh/loadbalance/balancer"

// LeastConnection scans the snapshot for the node with the fewest
// in-flight requests. Ties favor the earliest index in the snapshot, so
// selection stays deterministic under equal load.
type LeastConnection struct{}

// BuildPicker implements balancer.BalanceStrategy.
func (LeastConnection) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	return &leastConnectionPicker{nodes: snapshot}
}

type leastConnectionPicker struct {
	nodes []*balancer.Node
}

// Pick implements balancer.Picker.
func (p *leastConnectionPicker) Pick(balancer.RequestMetadata) (*balancer.Node, error) {
	if len(p.nodes) == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}

	best := p.nodes[0]
	bestLoad := best.InFlight()
	for _, n := range p.nodes[1:] {
		if load := n.InFlight(); load < bestLoad {
			best, bestLoad = n, load
		}
	}
	return best, nil
}
