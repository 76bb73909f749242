// Package metrics optionally instruments a balancer.Picker with
// Prometheus counters and gauges, without the core balancer package
// depending on Prometheus at all.
package metrics
