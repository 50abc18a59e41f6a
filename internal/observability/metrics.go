// Package observability exposes the service's Prometheus collectors.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RoutingDegradations counts routing requests whose semantic channel
	// was zeroed because the embedding provider failed. Degradation is
	// absorbed, never surfaced as an error, so this counter is the only
	// way to see it from the outside.
	RoutingDegradations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zena",
		Subsystem: "routing",
		Name:      "provider_degradations_total",
		Help:      "Routing requests served with a degraded (zeroed) semantic channel.",
	})

	// RequestDuration observes HTTP handler latency per route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zena",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})

	// ScoresComputed counts persisted scores by time window.
	ScoresComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zena",
		Subsystem: "score",
		Name:      "computed_total",
		Help:      "Scores computed and persisted, by time window.",
	}, []string{"window"})

	// AlertsCreated counts created alerts by risk level.
	AlertsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zena",
		Subsystem: "alerts",
		Name:      "created_total",
		Help:      "Alerts created, by risk level.",
	}, []string{"risk_level"})
)
