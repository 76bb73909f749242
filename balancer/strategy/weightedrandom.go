package strategy

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rpcmesh/loadbalance/balancer"
)

// WeightedRandom draws one node per pick from a discrete distribution
// built from the snapshot's weights at build time. Negative weights are
// treated as 0 (the type system already rules this out since Node.Weight
// is unsigned, but a zero-everything snapshot degrades to uniform).
type WeightedRandom struct {
	Config Config
}

// BuildPicker implements balancer.BalanceStrategy.
func (s WeightedRandom) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	seed := s.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cumulative := make([]float64, len(snapshot))
	var total float64
	allZero := true
	for _, n := range snapshot {
		if n.Weight() != 0 {
			allZero = false
			break
		}
	}
	for i, n := range snapshot {
		w := float64(n.Weight())
		if allZero {
			w = 1
		}
		total += w
		cumulative[i] = total
	}

	return &weightedRandomPicker{
		nodes:      snapshot,
		cumulative: cumulative,
		total:      total,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

type weightedRandomPicker struct {
	nodes      []*balancer.Node
	cumulative []float64
	total      float64

	mu  sync.Mutex
	rng *rand.Rand
}

// Pick implements balancer.Picker.
func (p *weightedRandomPicker) Pick(balancer.RequestMetadata) (*balancer.Node, error) {
	n := len(p.nodes)
	if n == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}
	if n == 1 {
		return p.nodes[0], nil
	}

	p.mu.Lock()
	r := p.rng.Float64() * p.total
	p.mu.Unlock()

	// First cumulative boundary strictly greater than r, found by a
	// linear scan: each pick costs O(len(snapshot)).
	for i, c := range p.cumulative {
		if r < c {
			return p.nodes[i], nil
		}
	}
	return p.nodes[n-1], nil
}
