// Package discovery adapts a pull- or push-based discovery source into
// the balancer package's Picker lifecycle: it caches built pickers per
// service/discovery key, preserves Node identity and counters across
// instance-set rebuilds, and invalidates cached pickers when the
// discovery source reports a change.
package discovery
