// Package prometheus contains the Prometheus-backed implementations of the
// metric interfaces in pkg/metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	s3blob "github.com/cubbyhole/cubby/pkg/blob/s3"
	"github.com/cubbyhole/cubby/pkg/metrics"
)

// blobMetrics is the Prometheus implementation of the blob store Metrics
// interface.
type blobMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewBlobMetrics creates a new Prometheus-backed blob metrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewBlobMetrics() s3blob.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &blobMetrics{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cubby_blob_operations_total",
				Help: "Total number of blob store operations by operation type and status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "cubby_blob_operation_duration_milliseconds",
				Help: "Duration of blob store operations in milliseconds",
				Buckets: []float64{
					10,    // 10ms - fast metadata operations
					50,    // 50ms - small object operations
					100,   // 100ms
					500,   // 500ms
					1000,  // 1s - medium objects
					5000,  // 5s - large objects
					10000, // 10s - very large operations
				},
			},
			[]string{"operation"},
		),
	}
}

func (m *blobMetrics) ObserveOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(float64(duration.Milliseconds()))
}
