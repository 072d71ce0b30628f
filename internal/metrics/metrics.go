package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PowerAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloomwatch_power_api_calls_total",
			Help: "Total NASA POWER API calls by outcome",
		},
		[]string{"outcome"},
	)

	PowerAPILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bloomwatch_power_api_latency_seconds",
			Help:    "NASA POWER API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	FallbackSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloomwatch_fallback_samples_total",
			Help: "Total synthetic samples served because the provider was unavailable",
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloomwatch_api_requests_total",
			Help: "Total API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	GlobalMapRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloomwatch_global_map_refreshes_total",
			Help: "Total scheduled refreshes of the global bloom map cache",
		},
	)
)
