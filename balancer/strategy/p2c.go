package strategy

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rpcmesh/loadbalance/balancer"
)

// PowerOfTwoChoices draws two distinct uniform indices and returns the
// node with the smaller in-flight count, ties favoring the first draw.
// This bounds expected maximum load to O(log log n) relative to the mean,
// without the coordination cost of a global least-connection scan.
type PowerOfTwoChoices struct {
	Config Config
}

// BuildPicker implements balancer.BalanceStrategy.
func (s PowerOfTwoChoices) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	seed := s.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &p2cPicker{nodes: snapshot, rng: rand.New(rand.NewSource(seed))}
}

type p2cPicker struct {
	nodes []*balancer.Node

	mu  sync.Mutex
	rng *rand.Rand
}

// Pick implements balancer.Picker. in_flight reads are hints — a
// concurrent pick may land on the same "lower" node, which is expected
// and harmless under the strategy's probabilistic guarantees. The draw
// itself is serialized: *rand.Rand is not safe for concurrent use, and
// the critical section is two Intn calls — constant-time, same tradeoff
// the kernel makes for the weighted round-robin cursor.
func (p *p2cPicker) Pick(balancer.RequestMetadata) (*balancer.Node, error) {
	n := len(p.nodes)
	switch n {
	case 0:
		return nil, balancer.ErrNoAvailableNodes
	case 1:
		return p.nodes[0], nil
	}

	p.mu.Lock()
	a := p.rng.Intn(n)
	b := p.rng.Intn(n - 1)
	p.mu.Unlock()
	if b >= a {
		b++
	}

	na := p.nodes[a].InFlight()
	nb := p.nodes[b].InFlight()
	if na <= nb {
		return p.nodes[a], nil
	}
	return p.nodes[b], nil
}
