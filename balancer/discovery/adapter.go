package discovery

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/rpcmesh/loadbalance/balancer"
)

// DiscoverError wraps an error returned by a Discoverer's Discover call,
// preserving it for errors.Is/errors.As while adding the endpoint that
// failed to resolve.
type DiscoverError struct {
	Endpoint Endpoint
	Err      error
}

func (e *DiscoverError) Error() string {
	return fmt.Sprintf("discover %s: %v", e.Endpoint.ServiceName, e.Err)
}

func (e *DiscoverError) Unwrap() error { return e.Err }

type pickerCacheEntry struct {
	picker balancer.Picker
}

// Adapter bridges a Discoverer into the balancer package's Picker
// lifecycle. It caches one picker per cache key (service name + address
// + discovery key + sorted endpoint tags), reconciles instance sets into
// stable Node identities across rebuilds, and drops cached pickers when
// a discovery change touches their cache key.
type Adapter struct {
	strategy balancer.BalanceStrategy

	// Logger narrates discovery failures and rebalance events. NewAdapter
	// sets it to logrus.StandardLogger(); setting it to nil disables
	// logging.
	Logger *logrus.Logger

	mu          sync.RWMutex
	pickerCache map[string]pickerCacheEntry
	nodeCache   map[string]map[uint64]*balancer.Node
	keyIndex    map[string]map[string]struct{}
}

// NewAdapter builds an Adapter around the given strategy.
func NewAdapter(strategy balancer.BalanceStrategy) *Adapter {
	return &Adapter{
		strategy:    strategy,
		Logger:      logrus.StandardLogger(),
		pickerCache: make(map[string]pickerCacheEntry),
		nodeCache:   make(map[string]map[uint64]*balancer.Node),
		keyIndex:    make(map[string]map[string]struct{}),
	}
}

// GetPicker resolves a Picker for endpoint, consulting the cache first
// and falling back to discover.Discover on a miss. Returns
// balancer.ErrNoAvailableNodes if discovery succeeds but reports zero
// instances.
func (a *Adapter) GetPicker(ctx context.Context, endpoint Endpoint, discover Discoverer) (balancer.Picker, error) {
	discoverKey := discover.Key(endpoint)
	cacheKey := a.cacheKey(endpoint, discoverKey)

	a.mu.RLock()
	entry, hit := a.pickerCache[cacheKey]
	a.mu.RUnlock()
	if hit {
		return entry.picker, nil
	}

	instances, err := discover.Discover(ctx, endpoint)
	if err != nil {
		if a.Logger != nil {
			a.Logger.WithField("service", endpoint.ServiceName).
				WithError(err).
				Warn("discovery failed")
		}
		return nil, &DiscoverError{Endpoint: endpoint, Err: err}
	}
	if len(instances) == 0 {
		return nil, balancer.ErrNoAvailableNodes
	}

	nodes := a.syncInstances(cacheKey, instances)
	picker := a.strategy.BuildPicker(nodes)

	a.mu.Lock()
	a.pickerCache[cacheKey] = pickerCacheEntry{picker: picker}
	a.indexKeyLocked(discoverKey, cacheKey)
	a.mu.Unlock()

	return picker, nil
}

// Rebalance applies a discovery change: every cache key registered under
// change.Key is rebuilt from change.All and evicted from the picker
// cache, so the next GetPicker call rebuilds a fresh picker over the new
// instance set. Node identity and counters for instances that persist
// across the change are preserved by syncInstances.
func (a *Adapter) Rebalance(change Change) {
	a.mu.RLock()
	cacheKeys := make([]string, 0, len(a.keyIndex[change.Key]))
	for k := range a.keyIndex[change.Key] {
		cacheKeys = append(cacheKeys, k)
	}
	a.mu.RUnlock()

	if len(cacheKeys) == 0 {
		return
	}

	for _, cacheKey := range cacheKeys {
		a.syncInstances(cacheKey, change.All)
	}

	a.mu.Lock()
	for _, cacheKey := range cacheKeys {
		delete(a.pickerCache, cacheKey)
	}
	if set := a.keyIndex[change.Key]; set != nil {
		for _, cacheKey := range cacheKeys {
			delete(set, cacheKey)
		}
		if len(set) == 0 {
			delete(a.keyIndex, change.Key)
		}
	}
	a.mu.Unlock()

	if a.Logger != nil {
		a.Logger.WithField("discover_key", change.Key).
			WithField("cache_keys", len(cacheKeys)).
			Info("rebalanced cached pickers")
	}
}

// GetInstanceIterator resolves a Picker via GetPicker and wraps it as an
// InstanceIterator, for hosts that want addresses rather than Nodes.
func (a *Adapter) GetInstanceIterator(ctx context.Context, endpoint Endpoint, discover Discoverer) (*InstanceIterator, error) {
	picker, err := a.GetPicker(ctx, endpoint, discover)
	if err != nil {
		return nil, err
	}
	return NewInstanceIterator(picker), nil
}

// syncInstances reconciles instances into the node cache entry for
// cacheKey: existing nodes whose address and weight are unchanged are
// reused verbatim (same *Node, same counters); nodes whose metadata
// changed are rebuilt via CloneWithMetadata so counters carry over;
// nodes no longer present are dropped. It returns the ordered node slice
// matching instances.
func (a *Adapter) syncInstances(cacheKey string, instances []Instance) []*balancer.Node {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing := a.nodeCache[cacheKey]
	if existing == nil {
		existing = make(map[uint64]*balancer.Node, len(instances))
	}

	seen := make(map[uint64]struct{}, len(instances))
	nodes := make([]*balancer.Node, 0, len(instances))

	for _, inst := range instances {
		id := computeInstanceID(inst)
		endpoint := balancer.Endpoint{ID: id, Address: inst.Address}

		node, ok := existing[id]
		switch {
		case ok && node.Endpoint().Address == endpoint.Address && node.Weight() == inst.Weight:
			// unchanged identity: reuse in place
		case ok:
			node = node.CloneWithMetadata(endpoint, inst.Weight)
		default:
			node = balancer.NewNode(endpoint, inst.Weight)
		}
		existing[id] = node
		nodes = append(nodes, node)
		seen[id] = struct{}{}
	}

	for id := range existing {
		if _, ok := seen[id]; !ok {
			delete(existing, id)
		}
	}

	if len(existing) == 0 {
		delete(a.nodeCache, cacheKey)
	} else {
		a.nodeCache[cacheKey] = existing
	}

	return nodes
}

func (a *Adapter) indexKeyLocked(discoverKey, cacheKey string) {
	set := a.keyIndex[discoverKey]
	if set == nil {
		set = make(map[string]struct{})
		a.keyIndex[discoverKey] = set
	}
	set[cacheKey] = struct{}{}
}

// cacheKey hashes the endpoint's service name, address, sorted tags, and
// the discoverer's key into a single stable string, folding xxhash over
// the same fields the original adapter folds its hasher over.
func (a *Adapter) cacheKey(endpoint Endpoint, discoverKey string) string {
	h := xxhash.New()
	_, _ = h.WriteString(endpoint.ServiceName)
	_, _ = h.WriteString(endpoint.Address)
	writeSortedTags(h, endpoint.Tags)
	_, _ = h.WriteString(discoverKey)
	return fmt.Sprintf("%s:%016x", endpoint.ServiceName, h.Sum64())
}

// computeInstanceID derives a stable node identity from an instance's
// address and sorted tags, independent of weight (weight changes alone
// must not change identity, or syncInstances would treat a reweight as a
// node replacement).
func computeInstanceID(inst Instance) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(inst.Address)
	writeSortedTags(h, inst.Tags)
	return h.Sum64()
}

func writeSortedTags(h *xxhash.Digest, tags map[string]string) {
	if len(tags) == 0 {
		return
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = h.WriteString(k)
		_, _ = h.WriteString(tags[k])
	}
}
