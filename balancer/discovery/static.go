package discovery

import "context"

// StaticDiscoverer is a Discoverer over a fixed instance list, useful for
// tests and for demos that don't have a real discovery source wired up.
// It never changes, so it does not implement ChangeNotifier.
type StaticDiscoverer struct {
	key       string
	instances []Instance
}

// NewStaticDiscoverer builds a StaticDiscoverer that always returns
// instances for any endpoint, keyed under a single fixed key.
func NewStaticDiscoverer(key string, instances []Instance) *StaticDiscoverer {
	return &StaticDiscoverer{key: key, instances: instances}
}

// Key implements Discoverer.
func (d *StaticDiscoverer) Key(Endpoint) string { return d.key }

// Discover implements Discoverer.
func (d *StaticDiscoverer) Discover(context.Context, Endpoint) ([]Instance, error) {
	return d.instances, nil
}
