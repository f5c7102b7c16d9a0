package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics, plus the instruments the synchronization
// pipeline records into.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	syncOpsTotal       *prometheus.CounterVec
	compensationsTotal *prometheus.CounterVec
	embeddingCalls     *prometheus.CounterVec
	embeddingLatency   *prometheus.HistogramVec
	storeErrorsTotal   *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system
// collectors, wraps all metrics with a constant `service` label, and creates
// an HTTP server exposing the /metrics endpoint.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically include the label
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.syncOpsTotal = createCounterVec("sync_operations_total",
		"Total synchronization operations by kind and outcome", []string{"op", "status"})
	m.compensationsTotal = createCounterVec("sync_compensations_total",
		"Total compensating deletes triggered by failed creates", []string{"status"})
	m.embeddingCalls = createCounterVec("embedding_calls_total",
		"Total embedding provider calls", []string{"status"})
	m.embeddingLatency = createHistogramVec("embedding_call_duration_seconds",
		"Duration of embedding provider calls in seconds", nil, prometheus.DefBuckets)
	m.storeErrorsTotal = createCounterVec("store_errors_total",
		"Total document store errors by kind", []string{"kind"})

	wrappedRegistry.MustRegister(
		m.syncOpsTotal,
		m.compensationsTotal,
		m.embeddingCalls,
		m.embeddingLatency,
		m.storeErrorsTotal,
	)

	// Standard collectors provide essential runtime metrics for Go processes:
	//   - GoCollector: Memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: Binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}

// ObserveSyncOp records one synchronization operation outcome.
// op is one of "create", "update", "delete", "patch", "search", "reconcile";
// status is "ok", "partial", or "failed".
func (m *Metrics) ObserveSyncOp(op, status string) {
	m.syncOpsTotal.WithLabelValues(op, status).Inc()
}

// ObserveCompensation records a compensating delete attempt outcome.
func (m *Metrics) ObserveCompensation(status string) {
	m.compensationsTotal.WithLabelValues(status).Inc()
}

// ObserveEmbeddingCall records one provider call with its duration.
func (m *Metrics) ObserveEmbeddingCall(status string, seconds float64) {
	m.embeddingCalls.WithLabelValues(status).Inc()
	m.embeddingLatency.WithLabelValues().Observe(seconds)
}

// ObserveStoreError records a classified document store error.
func (m *Metrics) ObserveStoreError(kind string) {
	m.storeErrorsTotal.WithLabelValues(kind).Inc()
}
