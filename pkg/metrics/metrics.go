package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry 进程内独立注册表，避免与默认注册表中的第三方指标冲突
var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursegraph_http_requests_total",
			Help: "Number of HTTP requests by route, method and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coursegraph_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// GraphBuildDuration kind = course | chain
	GraphBuildDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coursegraph_graph_build_duration_seconds",
			Help:    "Time taken to resolve a graph from the record store.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	GraphNodes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coursegraph_graph_nodes",
			Help:    "Number of nodes in resolved graphs.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"kind"},
	)

	ChainLookups = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coursegraph_chain_store_lookups",
			Help:    "Store lookups performed per prerequisite chain resolution.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	// GraphCacheTotal result = hit | miss | error
	GraphCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursegraph_graph_cache_total",
			Help: "Graph cache lookups by kind and result.",
		},
		[]string{"kind", "result"},
	)

	CatalogImportedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursegraph_catalog_imported_total",
			Help: "Records upserted by catalog imports.",
		},
		[]string{"entity"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		GraphBuildDuration,
		GraphNodes,
		ChainLookups,
		GraphCacheTotal,
		CatalogImportedTotal,
	)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
