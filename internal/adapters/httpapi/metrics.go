package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's Prometheus instruments on a private registry so
// two handlers in one process never collide on registration.
type metrics struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
	costs     prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	return &metrics{
		registry: reg,
		decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "decisions_total",
			Help:      "Operator selections served, labeled by chosen operator or error.",
		}, []string{"operator", "outcome"}),
		costs: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "espalier",
			Name:      "decision_cost",
			Help:      "Cost of the selected operator.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}

func (m *metrics) observe(decision string, cost float64) {
	m.decisions.WithLabelValues(decision, "selected").Inc()
	m.costs.Observe(cost)
}

func (m *metrics) rejected() {
	m.decisions.WithLabelValues("none", "rejected").Inc()
}
