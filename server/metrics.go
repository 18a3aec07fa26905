package server

import (
	"net/http"

	"github.com/meikuraledutech/procgraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the server's Prometheus collectors, on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	resolutions prometheus.Counter
	skipped     *prometheus.CounterVec
	edits       *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "procgraph_resolutions_total",
			Help: "Resolution passes run.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procgraph_skipped_links_total",
			Help: "Links dropped by resolution, by reason.",
		}, []string{"reason"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procgraph_edits_total",
			Help: "Graph edits applied, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "procgraph_resolution_seconds",
			Help:    "Time spent resolving a document into a graph.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	m.registry.MustRegister(m.resolutions, m.skipped, m.edits, m.duration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeResolution(seconds float64, res *procgraph.Resolution) {
	m.resolutions.Inc()
	m.duration.Observe(seconds)
	for _, s := range res.Skipped {
		m.skipped.WithLabelValues(string(s.Reason)).Inc()
	}
}

func (m *Metrics) observeEdit(kind string) {
	m.edits.WithLabelValues(kind).Inc()
}
