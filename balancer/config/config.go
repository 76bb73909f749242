package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rpcmesh/loadbalance/balancer"
	"github.com/rpcmesh/loadbalance/balancer/strategy"
)

// Config holds a balancer's strategy selection and construction
// parameters, loadable from a YAML file. Zero-valued fields mean "use
// the strategy's built-in default" — see strategy.Config.
type Config struct {
	Strategy      string `yaml:"strategy"`
	VirtualFactor int    `yaml:"virtual_factor"`
	Seed          int64  `yaml:"seed"`
}

// Load reads and parses a YAML strategy configuration file. Uses strict
// parsing: unrecognized keys are rejected rather than silently ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy config: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing strategy config: %w", err)
	}
	return &cfg, nil
}

var validStrategies = func() map[string]bool {
	m := make(map[string]bool, len(strategy.Names))
	for _, name := range strategy.Names {
		m[name] = true
	}
	return m
}()

// Validate checks that Strategy names a known strategy and that
// VirtualFactor is not negative. Seed is not checked: every value is
// accepted, and 0 means "seed from process entropy".
func (c *Config) Validate() error {
	if !validStrategies[c.Strategy] {
		return fmt.Errorf("unknown strategy %q; valid options: %s", c.Strategy, validStrategyNames())
	}
	if c.VirtualFactor < 0 {
		return fmt.Errorf("virtual_factor must be >= 0, got %d", c.VirtualFactor)
	}
	return nil
}

func validStrategyNames() string {
	names := make([]string, 0, len(strategy.Names))
	names = append(names, strategy.Names...)
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Build constructs the strategy named by this config.
func (c *Config) Build() (balancer.BalanceStrategy, error) {
	return strategy.New(c.Strategy, strategy.Config{
		VirtualFactor: c.VirtualFactor,
		Seed:          c.Seed,
	})
}
