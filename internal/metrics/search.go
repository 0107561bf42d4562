package metrics

import "github.com/prometheus/client_golang/prometheus"

// namespace prefixes every collector of this service.
const namespace = "unisearch"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of searches by resolved sort mode and status",
		},
		[]string{"sort", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search orchestration duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"sort"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		},
	)

	ClassifierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_requests_total",
			Help:      "Total number of intent classifier calls",
		},
		[]string{"provider", "model", "status"},
	)

	ClassifierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_request_duration_seconds",
			Help:      "Intent classifier call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
		[]string{"provider", "model"},
	)

	IntentFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_fallback_total",
			Help:      "Searches that used the GENERAL fallback intent",
		},
		[]string{"reason"}, // "timeout" / "error" / "panic" / "disabled" / "no_classifier"
	)

	IntentCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_cache_total",
			Help:      "Intent cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ExpansionDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expansion_degraded_total",
			Help:      "Keyword expansions that fell back to raw query terms",
		},
	)

	QueryLogEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_log_events_total",
			Help:      "Query log events by outcome",
		},
		[]string{"outcome"}, // "written" / "dropped" / "failed"
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
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ClassifierRequestsTotal)
	prometheus.MustRegister(ClassifierRequestDuration)
	prometheus.MustRegister(IntentFallbackTotal)
	prometheus.MustRegister(IntentCacheTotal)
	prometheus.MustRegister(ExpansionDegradedTotal)
	prometheus.MustRegister(QueryLogEventsTotal)
	searchMetricsRegistered = true
}
