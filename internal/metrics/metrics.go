package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts completed HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_http_requests_total",
		Help: "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_http_request_duration_seconds",
		Help:    "Histogram of HTTP request latency in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route"})

	// SignupsTotal counts created accounts (password and OAuth)
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_signups_total",
		Help: "Total accounts created.",
	})

	// LoginsTotal counts login attempts by outcome
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_logins_total",
		Help: "Total login attempts by result.",
	}, []string{"result"})

	// PostsCreatedTotal counts created posts
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_posts_created_total",
		Help: "Total posts created.",
	})

	// CommentsCreatedTotal counts created comments
	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_comments_created_total",
		Help: "Total comments created.",
	})

	// AuthSubscribers tracks connected auth-event websocket clients
	AuthSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blog_auth_event_subscribers",
		Help: "Currently connected auth-state-change subscribers.",
	})

	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "blog_table_row_count",
		Help: "Row count per table, refreshed periodically.",
	}, []string{"table"})
)

// SetTableCount publishes a table row count gauge
func SetTableCount(table string, count int) {
	tableCount.WithLabelValues(table).Set(float64(count))
}
