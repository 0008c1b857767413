package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydrointel_backend_calls_total",
			Help: "Total prediction backend calls",
		},
		[]string{"endpoint", "status"},
	)

	BackendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hydrointel_backend_latency_seconds",
			Help:    "Prediction backend call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	PanelEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydrointel_panel_events_total",
			Help: "Panel result events by outcome (applied, or discarded as stale)",
		},
		[]string{"panel", "outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydrointel_http_requests_total",
			Help: "Dashboard HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
)
