// Package metrics holds Prometheus instruments that are used across the
// front end.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values shared by the counters below.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeMissing = "missing"
)

// Result label values for universe_cache_total.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_api_requests_total",
			Help: "Calls made to the remote game API, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"})

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "game_api_request_duration_seconds",
			Help:    "Latency of remote game API calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"})

	SessionRedirectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_redirects_total",
			Help: "Redirects to the login page, by reason.",
		}, []string{"reason"})

	BuildingActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "building_actions_total",
			Help: "Building action form submissions, by action and outcome.",
		}, []string{"action", "outcome"})

	UniverseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "universe_cache_total",
			Help: "Universe lookups served from cache (hit) or upstream (miss).",
		}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		APIRequestsTotal,
		APIRequestDuration,
		SessionRedirectsTotal,
		BuildingActionsTotal,
		UniverseCacheTotal,
	)
}
