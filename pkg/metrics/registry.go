// Package metrics provides the shared Prometheus registry and the metric
// interfaces consumed by the HTTP and blob layers.
//
// Collection is opt-in: until InitRegistry is called, every constructor in
// pkg/metrics/prometheus returns nil and consumers skip recording with zero
// overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// InitRegistry creates the process-wide Prometheus registry with the
// standard Go runtime and process collectors. Safe to call multiple times;
// only the first call has effect.
func InitRegistry() {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// GetRegistry returns the shared registry, or nil if InitRegistry has not
// been called.
func GetRegistry() *prometheus.Registry {
	return registry
}

// IsEnabled reports whether metrics collection is active.
func IsEnabled() bool {
	return registry != nil
}
