package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecodeli_client"

// RequestsTotal counts facade requests by method and outcome
// (success, transport, auth, validation, server).
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of outbound API requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestDuration measures end-to-end request latency.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of outbound API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionExpirationsTotal counts forced logouts triggered by a 401/403.
var SessionExpirationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expirations_total",
		Help:      "Total number of sessions invalidated by an authorization rejection.",
	},
)
