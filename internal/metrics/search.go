package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of entity searches",
		},
		[]string{"entity", "outcome"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Entity search duration in seconds, count and fetch included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"entity"},
	)

	SearchDroppedSegmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_dropped_segments_total",
			Help:      "Term segments without '=' that were ignored",
		},
		[]string{"entity"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchDroppedSegmentsTotal)
	searchMetricsRegistered = true
}

// SearchRecorder records search metrics into the package collectors.
type SearchRecorder struct{}

// ObserveSearch records one finished search.
func (SearchRecorder) ObserveSearch(entity, outcome string, d time.Duration) {
	SearchRequestsTotal.WithLabelValues(entity, outcome).Inc()
	SearchDuration.WithLabelValues(entity).Observe(d.Seconds())
}

// DroppedSegment records one ignored malformed segment.
func (SearchRecorder) DroppedSegment(entity string) {
	SearchDroppedSegmentsTotal.WithLabelValues(entity).Inc()
}
