// Package metrics records Prometheus metrics for encode and decode
// operations. Metrics are opt-in: until InitRegistry is called, NewRecorder
// returns nil and every helper is a no-op.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
)

// InitRegistry enables metrics collection with a fresh registry that also
// carries the Go runtime and process collectors.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()

	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registry != nil
}

// GetRegistry returns the active registry, or nil.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// Reset disables metrics. Used by tests.
func Reset() {
	mu.Lock()
	registry = nil
	mu.Unlock()
}

// Recorder holds the operation metrics.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

// NewRecorder registers the operation metrics on the active registry.
// It returns nil when metrics are disabled.
func NewRecorder() *Recorder {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}

	return &Recorder{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "binimg_operations_total",
				Help: "Total number of stego operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "binimg_operation_duration_milliseconds",
				Help: "Duration of stego operations in milliseconds, including carrier decoding and encoding",
				Buckets: []float64{
					1, 5, 10, 50, 100, 500, 1000, 5000,
				},
			},
			[]string{"operation"},
		),
		bytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "binimg_payload_bytes_total",
				Help: "Total payload bytes embedded or extracted",
			},
			[]string{"operation"},
		),
	}
}

// ObserveOperation records one operation and its outcome. Safe on a nil
// recorder.
func (r *Recorder) ObserveOperation(operation string, d time.Duration, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.operations.WithLabelValues(operation, status).Inc()
	r.duration.WithLabelValues(operation).Observe(float64(d.Microseconds()) / 1000.0)
}

// RecordBytes adds n payload bytes to the operation's total. Safe on a nil
// recorder.
func (r *Recorder) RecordBytes(operation string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.bytes.WithLabelValues(operation).Add(float64(n))
}
