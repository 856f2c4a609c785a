// Copyright 2025 Certen Protocol
//
// Prometheus metrics for the verification engine and asset router, grounded
// on amppackager/packager/signer's promauto.NewCounterVec/NewSummaryVec
// package-level-var pattern: counters and summaries registered once at
// package init, labeled and observed from call sites.
package certmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var verificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "certen_verifications_total",
		Help: "Total number of HTTP response verification attempts, by protocol version and outcome.",
	},
	[]string{"version", "outcome"},
)

var verificationLatency = promauto.NewSummaryVec(
	prometheus.SummaryOpts{
		Name:       "certen_verification_latency_seconds",
		Help:       "Latency of verification attempts, in seconds, by protocol version.",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	},
	[]string{"version"},
)

var routeResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "certen_route_resolutions_total",
		Help: "Total number of asset router resolutions, by decision kind.",
	},
	[]string{"decision"},
)

// ObserveVerification records the outcome and latency of a single
// verification attempt.
func ObserveVerification(version uint16, outcome string, duration time.Duration) {
	label := prometheus.Labels{"version": versionLabel(version), "outcome": outcome}
	verificationsTotal.With(label).Inc()
	verificationLatency.With(prometheus.Labels{"version": versionLabel(version)}).Observe(duration.Seconds())
}

// ObserveRouteResolution records the outcome of a single router resolution.
func ObserveRouteResolution(decision string) {
	routeResolutionsTotal.With(prometheus.Labels{"decision": decision}).Inc()
}

func versionLabel(v uint16) string {
	switch v {
	case 1:
		return "v1"
	case 2:
		return "v2"
	default:
		return "unknown"
	}
}
