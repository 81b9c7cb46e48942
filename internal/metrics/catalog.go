package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics.
var (
	CatalogQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_queries_total",
			Help:      "Total number of catalog query evaluations",
		},
		[]string{"sort"},
	)

	CatalogQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "catalog_query_duration_seconds",
			Help:      "Catalog query evaluation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	CatalogResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "catalog_results",
			Help:      "Number of products matched per catalog query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "catalog_products",
			Help:      "Number of products in the loaded snapshot",
		},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog snapshot loads by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers Prometheus catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogQueriesTotal)
	prometheus.MustRegister(CatalogQueryDuration)
	prometheus.MustRegister(CatalogResults)
	prometheus.MustRegister(CatalogProducts)
	prometheus.MustRegister(CatalogReloadsTotal)
	catalogMetricsRegistered = true
}
