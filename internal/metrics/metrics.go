package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "holocron_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	},
	[]string{"method", "route", "status"},
)

var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "holocron_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// SeedRuns counts /get/initial seeding outcomes: seeded, skipped, failed, busy.
var SeedRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "holocron_seed_runs_total",
		Help: "Seed-on-read outcomes",
	},
	[]string{"result"},
)

var Favorites = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "holocron_favorites_total",
		Help: "Favorites added and removed by target kind",
	},
	[]string{"kind", "op"},
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration)
	prometheus.MustRegister(SeedRuns, Favorites)
}
