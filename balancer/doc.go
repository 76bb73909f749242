// Package balancer implements the client-side load-balancing core: the
// Node record, the request metadata a picker consumes, the two error
// values a pick can return, and the Balancer that hands out pickers built
// from the current node set.
//
// The pluggable selection algorithms live in balancer/strategy. The
// discovery-backed cache sits in balancer/discovery. This package has no
// dependency on either — it only defines the interfaces they implement.
package balancer
