package strategy

import "github.com/rpcmesh/loadbalance/balancer"

// ResponseTimeWeighted scores each node as 1e9/max(rtt_ns,1)/(1+in_flight)
// and picks the highest score: low recent latency and low current load
// both push a node up. Ties favor the earliest index.
type ResponseTimeWeighted struct{}

// BuildPicker implements balancer.BalanceStrategy.
func (ResponseTimeWeighted) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	return &responseTimeWeightedPicker{nodes: snapshot}
}

type responseTimeWeightedPicker struct {
	nodes []*balancer.Node
}

// Pick implements balancer.Picker.
func (p *responseTimeWeightedPicker) Pick(balancer.RequestMetadata) (*balancer.Node, error) {
	if len(p.nodes) == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}

	best := p.nodes[0]
	bestScore := score(best)
	for _, n := range p.nodes[1:] {
		if s := score(n); s > bestScore {
			best, bestScore = n, s
		}
	}
	return best, nil
}

func score(n *balancer.Node) float64 {
	rtt := n.LastRTT()
	if rtt == 0 {
		rtt = 1
	}
	inFlight := n.InFlight()
	if inFlight < 0 {
		inFlight = 0
	}
	return 1e9 / float64(rtt) / (1 + float64(inFlight))
}
