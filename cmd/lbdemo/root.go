// cmd/lbdemo/root.go
package lbdemo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpcmesh/loadbalance/balancer"
	lbconfig "github.com/rpcmesh/loadbalance/balancer/config"
	"github.com/rpcmesh/loadbalance/balancer/strategy"
)

var (
	strategyName  string
	nodesFlag     string
	picks         int
	hashKey       uint64
	virtualFactor int
	seed          int64
	logLevel      string
	configPath    string
)

var rootCmd = &cobra.Command{
	Use:   "lbdemo",
	Short: "Drive a client-side load balancer against a static node set",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a balancer and print the sequence of picks it produces",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)

		name := strategyName
		vf := virtualFactor
		sd := seed
		if configPath != "" {
			cfg, err := lbconfig.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			name, vf, sd = cfg.Strategy, cfg.VirtualFactor, cfg.Seed
		}

		nodes, err := parseNodes(nodesFlag)
		if err != nil {
			return err
		}

		strat, err := strategy.New(name, strategy.Config{VirtualFactor: vf, Seed: sd})
		if err != nil {
			return err
		}

		b := balancer.NewBalancer(strat)
		b.UpdateNodes(nodes)

		logrus.Infof("strategy=%s nodes=%d picks=%d", name, len(nodes), picks)

		req := balancer.RequestMetadata{}
		if cmd.Flags().Changed("hash-key") {
			req = balancer.WithHashKey(hashKey)
		}

		picker := b.Picker()
		for i := 0; i < picks; i++ {
			n, err := picker.Pick(req)
			if err != nil {
				logrus.Warnf("pick %d: %v", i, err)
				continue
			}
			fmt.Println(n.String())
		}
		return nil
	},
}

func parseNodes(spec string) ([]*balancer.Node, error) {
	parts := strings.Split(spec, ",")
	nodes := make([]*balancer.Node, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid node spec %q; want id:address:weight", part)
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid node id in %q: %w", part, err)
		}
		weight, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", part, err)
		}
		nodes = append(nodes, balancer.NewNode(balancer.Endpoint{ID: id, Address: fields[1]}, uint32(weight)))
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no nodes given; use --nodes id:address:weight,...")
	}
	return nodes, nil
}

// Execute runs the lbdemo root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&strategyName, "strategy", strategy.NameRoundRobin, "Strategy name")
	runCmd.Flags().StringVar(&nodesFlag, "nodes", "", "Comma-separated id:address:weight list")
	runCmd.Flags().IntVar(&picks, "picks", 10, "Number of picks to perform")
	runCmd.Flags().Uint64Var(&hashKey, "hash-key", 0, "Hash key for consistent-hash picks")
	runCmd.Flags().IntVar(&virtualFactor, "virtual-factor", 10, "Virtual ring points per unit weight (consistent-hash only)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed (p2c, weighted-random); 0 seeds from entropy")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML strategy config, overrides --strategy/--virtual-factor/--seed")

	rootCmd.AddCommand(runCmd)
}
