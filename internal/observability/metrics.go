package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsTotal counts successfully dispatched bookings.
	BookingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dispatch", Name: "bookings_total", Help: "Total bookings created",
	})

	// DispatchConflictsTotal counts rider claims lost to a concurrent booking.
	DispatchConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "dispatch", Name: "rider_claim_conflicts_total", Help: "Rider claims lost to concurrent bookings",
	})

	// BookingsCompletedTotal counts terminal transitions by final status.
	BookingsCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "bookings_terminal_total", Help: "Bookings moved to a terminal status"},
		[]string{"status"},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dispatch", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dispatch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
