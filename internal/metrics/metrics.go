package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesTotal        *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpus_operations_total",
				Help: "Total number of corpus store operations",
			},
			[]string{"op", "status"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corpus_operation_duration_seconds",
				Help:    "Corpus store operation duration in seconds",
				Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 15, 60},
			},
			[]string{"op"},
		),

		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corpus_bytes_total",
				Help: "Bytes written or read by the corpus store",
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(r.operationsTotal)
	reg.MustRegister(r.operationDuration)
	reg.MustRegister(r.bytesTotal)

	return r
}

// RecordOperation records one store operation.
func (r *Registry) RecordOperation(op, status string, bytes int64, duration time.Duration) {
	r.operationsTotal.WithLabelValues(op, status).Inc()
	r.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
	if bytes > 0 {
		r.bytesTotal.WithLabelValues(op).Add(float64(bytes))
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// for node_exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
