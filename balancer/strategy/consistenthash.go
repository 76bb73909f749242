package strategy

import (
	"encoding/binary"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/rpcmesh/loadbalance/balancer"
)

// ConsistentHash places VirtualFactor*max(weight,1) points per node on a 64-bit
// ring and picks the node owning the first point at or after the
// request's hash key, wrapping to the ring's first point past the
// maximum. Ring keys are derived from the node's stable endpoint ID and a
// virtual-index counter, not from the node's pointer: pointer-derived
// keys would change every time a node is rebuilt with new metadata,
// defeating the whole point of a stable ring.
type ConsistentHash struct {
	Config Config
}

type ringPoint struct {
	hash uint64
	node *balancer.Node
}

// BuildPicker implements balancer.BalanceStrategy.
func (s ConsistentHash) BuildPicker(snapshot []*balancer.Node) balancer.Picker {
	factor := s.Config.virtualFactor()

	var points []ringPoint
	for _, n := range snapshot {
		count := factor
		if w := int(n.Weight()); w > 0 {
			count = factor * w
		}
		for vi := 0; vi < count; vi++ {
			points = append(points, ringPoint{hash: ringKey(n.ID(), vi), node: n})
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].hash < points[j].hash })

	return &consistentHashPicker{nodes: snapshot, ring: points}
}

func ringKey(nodeID uint64, virtualIndex int) uint64 {
	buf := strconv.FormatUint(nodeID, 10) + "#" + strconv.Itoa(virtualIndex)
	return xxhash.Sum64String(buf)
}

// hashRequestKey mixes a raw request hash key through xxhash before it's
// used as a ring position. Request keys (session ids, sequential
// counters, small integers) are rarely well-distributed over the full
// 64-bit space on their own; using one directly as a ring position would
// cluster picks instead of spreading them, defeating minimal disruption.
func hashRequestKey(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return xxhash.Sum64(buf[:])
}

type consistentHashPicker struct {
	nodes []*balancer.Node
	ring  []ringPoint
}

// Pick implements balancer.Picker. req.HashKey selects the ring position;
// callers that have no natural hash key must supply one via
// balancer.WithHashKey, or Pick returns ErrMissingHashKey.
func (p *consistentHashPicker) Pick(req balancer.RequestMetadata) (*balancer.Node, error) {
	if len(p.nodes) == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}
	if !req.HasHashKey {
		return nil, balancer.ErrMissingHashKey
	}
	if len(p.ring) == 0 {
		// Every node had zero virtual points (factor and weight both
		// resolved to 0, which virtualFactor's default prevents in
		// practice). Fall back to the first node rather than erroring.
		return p.nodes[0], nil
	}

	key := hashRequestKey(req.HashKey)
	i := sort.Search(len(p.ring), func(i int) bool { return p.ring[i].hash >= key })
	if i == len(p.ring) {
		i = 0
	}
	return p.ring[i].node, nil
}
