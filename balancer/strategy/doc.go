// Package strategy implements the seven pluggable selection algorithms of
// the load-balancing core: RoundRobin, WeightedRoundRobin,
// PowerOfTwoChoices, WeightedRandom, LeastConnection,
// ResponseTimeWeighted, and ConsistentHash. Each is a balancer.BalanceStrategy
// that builds a balancer.Picker from one node snapshot.
//
// Construct a strategy by name with New, the way
// policy.NewAdmissionPolicy builds an admission policy from a name string.
package strategy
