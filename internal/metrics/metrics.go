package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// DataServiceRequests counts round trips to the hosted data service.
	// outcome is one of ok, not_found, error, inert.
	DataServiceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "data_service_requests_total",
			Help: "Requests sent to the hosted data service.",
		},
		[]string{"table", "outcome"},
	)
)
