package balancer

// RequestMetadata is the opaque per-request input a Picker consumes. The
// caller derives HashKey from whatever business-level session or tenant
// identifier it wants affinity on; the core re-hashes it internally
// (strategy.ConsistentHash) rather than trusting it as a ring position
// directly.
type RequestMetadata struct {
	HashKey    uint64
	HasHashKey bool
}

// WithHashKey returns RequestMetadata carrying the given hash key.
func WithHashKey(key uint64) RequestMetadata {
	return RequestMetadata{HashKey: key, HasHashKey: true}
}
