package strategy

import (
	"fmt"

	"github.com/rpcmesh/loadbalance/balancer"
)

// Name constants for the seven built-in strategies, used by New and by
// balancer/config for YAML-driven selection.
const (
	NameRoundRobin           = "round-robin"
	NameWeightedRoundRobin   = "weighted-round-robin"
	NamePowerOfTwoChoices    = "p2c"
	NameWeightedRandom       = "weighted-random"
	NameLeastConnection      = "least-connection"
	NameResponseTimeWeighted = "response-time-weighted"
	NameConsistentHash       = "consistent-hash"
)

// Names lists every built-in strategy name, in the order they appear in
// spec.md's selection table.
var Names = []string{
	NameRoundRobin,
	NameWeightedRoundRobin,
	NamePowerOfTwoChoices,
	NameWeightedRandom,
	NameLeastConnection,
	NameResponseTimeWeighted,
	NameConsistentHash,
}

// New constructs the named strategy, applying cfg where the strategy
// uses it (ConsistentHash reads VirtualFactor; PowerOfTwoChoices and
// WeightedRandom read Seed).
func New(name string, cfg Config) (balancer.BalanceStrategy, error) {
	switch name {
	case NameRoundRobin:
		return RoundRobin{}, nil
	case NameWeightedRoundRobin:
		return WeightedRoundRobin{}, nil
	case NamePowerOfTwoChoices:
		return PowerOfTwoChoices{Config: cfg}, nil
	case NameWeightedRandom:
		return WeightedRandom{Config: cfg}, nil
	case NameLeastConnection:
		return LeastConnection{}, nil
	case NameResponseTimeWeighted:
		return ResponseTimeWeighted{}, nil
	case NameConsistentHash:
		return ConsistentHash{Config: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q; valid options: %s", name, Names)
	}
}
