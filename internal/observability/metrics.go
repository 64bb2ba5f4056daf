package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the agro services.
type Metrics struct {
	SourceRequests *prometheus.CounterVec   // labels: source, outcome={success,error}
	SourceDuration *prometheus.HistogramVec // labels: source

	// Persistence metrics.
	StoreWrites *prometheus.CounterVec // labels: table, outcome={success,error}

	AggregateRequests      prometheus.Counter
	RecommendationsServed  prometheus.Counter
	BatchLocationsAnalyzed prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Name:      "source_requests_total",
			Help:      "Upstream data source requests by source and outcome.",
		}, []string{"source", "outcome"}),
		SourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrigrow",
			Name:      "source_fetch_duration_seconds",
			Help:      "Upstream data source request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		StoreWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Name:      "store_writes_total",
			Help:      "Best-effort SQLite writes by table and outcome.",
		}, []string{"table", "outcome"}),
		AggregateRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Name:      "aggregate_requests_total",
			Help:      "Total multi-source aggregation runs.",
		}),
		RecommendationsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Name:      "recommendations_served_total",
			Help:      "Total crop recommendation lists computed.",
		}),
		BatchLocationsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Name:      "batch_locations_analyzed_total",
			Help:      "Locations successfully analyzed through the batch endpoint.",
		}),
	}

	prometheus.MustRegister(
		m.SourceRequests,
		m.SourceDuration,
		m.StoreWrites,
		m.AggregateRequests,
		m.RecommendationsServed,
		m.BatchLocationsAnalyzed,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		SourceRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agrigrow", Name: "source_requests_total"}, []string{"source", "outcome"}),
		SourceDuration:         prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "agrigrow", Name: "source_fetch_duration_seconds"}, []string{"source"}),
		StoreWrites:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agrigrow", Name: "store_writes_total"}, []string{"table", "outcome"}),
		AggregateRequests:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agrigrow", Name: "aggregate_requests_total"}),
		RecommendationsServed:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agrigrow", Name: "recommendations_served_total"}),
		BatchLocationsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agrigrow", Name: "batch_locations_analyzed_total"}),
	}
}
