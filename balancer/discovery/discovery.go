package discovery

import "context"

// Instance is one backend as reported by a discovery source: an address,
// a routing weight, and an optional set of tags that participate in the
// adapter's node-identity computation (two instances with the same
// address but different tags are distinct nodes).
type Instance struct {
	Address string
	Weight  uint32
	Tags    map[string]string
}

// Endpoint identifies the logical target a caller is asking to reach,
// e.g. a service name plus an optional fixed address. It is opaque to
// the adapter beyond cache-key construction. Tags participate in the
// cache key so that two calls for the same service name but different
// routing tags (canary vs. stable, a region selector, and so on) get
// independent picker caches.
type Endpoint struct {
	ServiceName string
	Address     string
	Tags        map[string]string
}

// Change describes a push notification from a Discoverer: Key identifies
// which discovery subscription changed, and All is the complete, current
// instance set for that subscription (not a delta).
type Change struct {
	Key string
	All []Instance
}

// Discoverer resolves an Endpoint to its current instance set. Key
// derives the cache partition a given endpoint falls into; two endpoints
// with the same Key share rebalance notifications. Node identity is kept
// per adapter cache key, so endpoints that differ in service name,
// address or tags hold separate Nodes even under the same Key.
type Discoverer interface {
	Key(endpoint Endpoint) string
	Discover(ctx context.Context, endpoint Endpoint) ([]Instance, error)
}

// ChangeNotifier is an optional capability a Discoverer may also
// implement: Subscribe registers a callback invoked whenever the
// discovery source observes a change, and returns an unsubscribe
// function. Hosts that only need pull-based discovery can skip it
// entirely.
type ChangeNotifier interface {
	Subscribe(func(Change)) (unsubscribe func())
}
