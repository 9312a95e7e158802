package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizfaq",
			Name:      "queries_total",
			Help:      "Total number of queries by outcome",
		},
		[]string{"outcome"}, // "hit" / "miss"
	)

	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bizfaq",
			Name:      "query_duration_seconds",
			Help:      "Query ranking duration in seconds",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)

	QueryHits = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bizfaq",
			Name:      "query_hits",
			Help:      "Number of hits returned per query",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	IndexDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bizfaq",
			Name:      "index_documents",
			Help:      "Documents in the active index",
		},
		[]string{"kind"},
	)

	IndexTerms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bizfaq",
			Name:      "index_terms",
			Help:      "Distinct terms in the active index",
		},
	)

	IndexBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizfaq",
			Name:      "index_builds_total",
			Help:      "Index builds by status",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)

	IndexBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "bizfaq",
			Name:      "index_build_duration_seconds",
			Help:      "Time to fetch, parse and index all tables",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	SourceFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bizfaq",
			Name:      "source_fetch_total",
			Help:      "Table source fetches by table and status",
		},
		[]string{"table", "status"},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers the retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryHits)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(IndexTerms)
	prometheus.MustRegister(IndexBuildsTotal)
	prometheus.MustRegister(IndexBuildDuration)
	prometheus.MustRegister(SourceFetchTotal)
	retrievalMetricsRegistered = true
}
