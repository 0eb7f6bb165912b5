// Package metrics exposes Prometheus collectors for route queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "airnet"

// Metrics groups the collectors recorded by the network service.
type Metrics struct {
	// queries counts path queries by kind and outcome.
	// Labels: query (shortest_path, alternatives, efficiency), outcome (found, no_path, unknown_vertex)
	queries *prometheus.CounterVec

	// queryDuration measures time spent answering a query.
	// Labels: query
	queryDuration *prometheus.HistogramVec

	graphNodes prometheus.Gauge
	graphEdges prometheus.Gauge
}

// New registers the collectors with reg. Passing prometheus.DefaultRegisterer
// exposes them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "total",
			Help:      "Route queries answered, by query kind and outcome",
		}, []string{"query", "outcome"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Time spent answering route queries",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"query"}),
		graphNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "nodes",
			Help:      "Airports in the loaded route graph",
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "edges",
			Help:      "Undirected routes in the loaded route graph",
		}),
	}
}

// ObserveQuery records one answered query. A nil receiver is a no-op.
func (m *Metrics) ObserveQuery(query, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(query, outcome).Inc()
	m.queryDuration.WithLabelValues(query).Observe(took.Seconds())
}

// SetGraphSize records the size of the loaded graph. A nil receiver is a no-op.
func (m *Metrics) SetGraphSize(nodes, edges int) {
	if m == nil {
		return
	}
	m.graphNodes.Set(float64(nodes))
	m.graphEdges.Set(float64(edges))
}
