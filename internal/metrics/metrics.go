// Package metrics exposes Prometheus instrumentation for generation runs.
//
// Every Metrics value owns its own registry, so several runs (or tests) in one
// process never collide on the global default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "causalfaker"

// Metrics holds the collectors of one run.
type Metrics struct {
	registry *prometheus.Registry

	// SamplesTotal counts generated samples.
	SamplesTotal prometheus.Counter
	// BatchesTotal counts written batches by outcome (ok, error).
	BatchesTotal *prometheus.CounterVec
	// BatchDuration measures draw+write time per batch.
	BatchDuration prometheus.Histogram
	// GraphNodes is the node count of the loaded model.
	GraphNodes prometheus.Gauge
	// GraphEdges is the edge count of the loaded model.
	GraphEdges prometheus.Gauge
	// GraphDepth is the number of topological levels.
	GraphDepth prometheus.Gauge
	// EmitErrorsTotal counts failed socket.io emissions.
	EmitErrorsTotal prometheus.Counter
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SamplesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Total number of samples generated.",
		}),
		BatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total number of batches by outcome.",
		}, []string{"status"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Time spent drawing and writing one batch.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		GraphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes in the loaded model.",
		}),
		GraphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges in the loaded model.",
		}),
		GraphDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_depth",
			Help:      "Number of topological levels in the loaded model.",
		}),
		EmitErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emit_errors_total",
			Help:      "Total number of batches that could not be emitted.",
		}),
	}
}

// ObserveGraph records the shape of the loaded model.
func (m *Metrics) ObserveGraph(nodes, edges, depth int) {
	m.GraphNodes.Set(float64(nodes))
	m.GraphEdges.Set(float64(edges))
	m.GraphDepth.Set(float64(depth))
}

// ObserveBatch records one finished batch.
func (m *Metrics) ObserveBatch(samples int, took time.Duration, err error) {
	if err != nil {
		m.BatchesTotal.WithLabelValues("error").Inc()
		return
	}
	m.BatchesTotal.WithLabelValues("ok").Inc()
	m.SamplesTotal.Add(float64(samples))
	m.BatchDuration.Observe(took.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
