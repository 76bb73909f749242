package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rpcmesh/loadbalance/balancer"
)

// Registry bundles the counters and gauges a Wrapped picker records
// into, plus the *prometheus.Registry they're registered against.
type Registry struct {
	reg *prometheus.Registry

	picks    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	inFlight *prometheus.GaugeVec
}

// NewRegistry builds a fresh Registry with its own prometheus.Registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loadbalance_picks_total",
			Help: "Number of successful picks, by strategy and node address.",
		}, []string{"strategy", "node"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loadbalance_pick_errors_total",
			Help: "Number of failed picks, by strategy and error.",
		}, []string{"strategy", "error"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "loadbalance_node_in_flight",
			Help: "Current in-flight request count, by node address.",
		}, []string{"node"}),
	}
	reg.MustRegister(r.picks, r.errors, r.inFlight)
	return r
}

// Registry returns the underlying *prometheus.Registry for exposition
// (e.g. via promhttp.HandlerFor).
func (r *Registry) Registry() *prometheus.Registry { return r.reg }

// Wrap decorates picker so every Pick call records outcome metrics under
// strategyName, without altering the pick result.
func (r *Registry) Wrap(picker balancer.Picker, strategyName string) balancer.Picker {
	return &instrumentedPicker{inner: picker, reg: r, strategy: strategyName}
}

type instrumentedPicker struct {
	inner    balancer.Picker
	reg      *Registry
	strategy string
}

// Pick implements balancer.Picker.
func (p *instrumentedPicker) Pick(req balancer.RequestMetadata) (*balancer.Node, error) {
	n, err := p.inner.Pick(req)
	if err != nil {
		p.reg.errors.WithLabelValues(p.strategy, err.Error()).Inc()
		return nil, err
	}
	address := n.Endpoint().Address
	p.reg.picks.WithLabelValues(p.strategy, address).Inc()
	p.reg.inFlight.WithLabelValues(address).Set(float64(n.InFlight()))
	return n, nil
}
