package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values shared by callers.
const (
	// Auth gateway outcomes
	AuthVerified    = "verified"
	AuthRejected    = "rejected"
	AuthUnavailable = "unavailable"

	// Database operations
	DBOpListProfiles   = "list_profiles"
	DBOpCreateProfile  = "create_profile"
	DBOpGetProfile     = "get_profile"
	DBOpUpdateProfile  = "update_profile"
	DBOpDeleteProfile  = "delete_profile"
	DBOpListActivities = "list_activities"
	DBOpCreateActivity = "create_activity"
	DBOpGetActivity    = "get_activity"
	DBOpListFavourites = "list_favourites"
	DBOpAddFavourite   = "add_favourite"
	DBOpListTrails     = "list_trails"
	DBOpAddTrail       = "add_trail"
	DBOpPing           = "ping"

	// Route label for requests that matched no route.
	RouteUnmatched = "unmatched"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status_code"},
	)
)

// Auth gateway Metrics
var (
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_gateway_requests_total",
			Help: "Total number of credential checks against the external auth service",
		},
		[]string{"outcome"},
	)

	AuthRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_gateway_request_duration_seconds",
			Help:    "External auth service latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"outcome"},
	)
)

// Database Metrics
var (
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Database operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	DBOperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_operation_errors_total",
			Help: "Total number of database operation errors",
		},
		[]string{"operation"},
	)
)

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
