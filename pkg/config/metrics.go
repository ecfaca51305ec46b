package config

import (
	"github.com/cubbyhole/cubby/internal/logger"
	s3blob "github.com/cubbyhole/cubby/pkg/blob/s3"
	"github.com/cubbyhole/cubby/pkg/metrics"
	"github.com/cubbyhole/cubby/pkg/metrics/prometheus"
)

// MetricsResult holds the metrics components built from configuration.
// All fields are nil when metrics are disabled.
type MetricsResult struct {
	// Server serves the /metrics endpoint. The caller owns its lifecycle.
	Server *metrics.Server

	// HTTPMetrics records API request metrics.
	HTTPMetrics metrics.HTTPMetrics

	// BlobMetrics records blob store operation metrics.
	BlobMetrics s3blob.Metrics
}

// InitializeMetrics sets up the Prometheus registry, collectors and
// metrics server when metrics are enabled. Must be called before any
// metric-emitting component is constructed.
func InitializeMetrics(cfg *Config) MetricsResult {
	if !cfg.Metrics.Enabled {
		return MetricsResult{}
	}

	metrics.InitRegistry()

	server, err := metrics.NewServer(cfg.Metrics.Port)
	if err != nil {
		logger.Warn("Failed to create metrics server, metrics disabled", "error", err)
		return MetricsResult{}
	}

	return MetricsResult{
		Server:      server,
		HTTPMetrics: prometheus.NewHTTPMetrics(),
		BlobMetrics: prometheus.NewBlobMetrics(),
	}
}
