package strategy

import (
	"sync"

	"github.com/rpcmesh/loadbalance/balancer"
)

// WeightedRoundRobin is threshold-stepped (interleaved) weighted
// round-robin: a weight threshold starts at the largest weight and drops
// by the gcd of the weights on every pass over the snapshot, and each pass
// selects every node whose weight is at or above the threshold. Over one
// full period of sum(weights)/gcd picks, node i is selected exactly
// weights[i]/gcd times. Selections interleave only once the threshold
// reaches the lighter nodes' weights, so a node much heavier than the rest
// is picked in a run: weights 5:1:1 yield a, a, a, a, a, b, c.
type WeightedRoundRobin struct{}

// BuildPicker implements balancer.BalanceStrategy.
func (WeightedRoundRobin) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	p := &weightedRoundRobinPicker{nodes: snapshot, idx: -1}
	if len(snapshot) == 0 {
		return p
	}

	weights := make([]int64, len(snapshot))
	var maxW, gcdW int64
	for i, n := range snapshot {
		w := int64(n.Weight())
		weights[i] = w
		if w > 0 {
			if w > maxW {
				maxW = w
			}
			if gcdW == 0 {
				gcdW = w
			} else {
				gcdW = gcd(gcdW, w)
			}
		}
	}
	if gcdW == 0 {
		gcdW = 1
	}
	p.weights = weights
	p.maxW = maxW
	p.gcdW = gcdW
	return p
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

type weightedRoundRobinPicker struct {
	nodes   []*balancer.Node
	weights []int64
	maxW    int64
	gcdW    int64

	mu  sync.Mutex
	idx int64 // "before zero": first pick yields index 0
	cw  int64
}

// Pick implements balancer.Picker. i and cw advance together under a
// single mutex. A snapshot with no positive weight is served as plain
// round-robin up front; otherwise the scan is bounded by a 2*len liveness
// guard so it can never loop forever (spec.md §4.B "Liveness guard").
func (p *weightedRoundRobinPicker) Pick(balancer.RequestMetadata) (*balancer.Node, error) {
	n := int64(len(p.nodes))
	if n == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maxW <= 0 {
		p.idx = (p.idx + 1) % n
		return p.nodes[p.idx], nil
	}

	maxAttempts := n * 2
	for attempts := int64(0); ; attempts++ {
		p.idx = (p.idx + 1) % n
		if p.idx == 0 {
			p.cw -= p.gcdW
			if p.cw < 0 {
				p.cw = 0
			}
			if p.cw == 0 {
				p.cw = p.maxW
			}
		}
		if p.weights[p.idx] >= p.cw || attempts >= maxAttempts {
			return p.nodes[p.idx], nil
		}
	}
}
