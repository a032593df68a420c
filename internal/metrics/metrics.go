package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthAttempts counts register and login attempts by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Register and login attempts by action and result",
		},
		[]string{"action", "result"},
	)

	// TokenRejections counts bearer tokens refused by the auth middleware.
	TokenRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_rejections_total",
			Help: "Requests rejected by the auth middleware by reason",
		},
		[]string{"reason"},
	)

	// TaskMutations counts successful task writes by operation.
	TaskMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_mutations_total",
			Help: "Tasks created, updated and deleted",
		},
		[]string{"op"},
	)
)

var (
	idPathSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, AuthAttempts, TokenRejections, TaskMutations)
	})
}

// NormalizePath replaces numeric and UUID path segments with {id}.
// E.g. /v1/api/tasks/0b8e6d52-7f0a-4b8e-9d1c-5a2f3e4d6c70 -> /v1/api/tasks/{id}.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuthAttempt records a register or login outcome ("success", "invalid", "conflict", "error").
func IncAuthAttempt(action, result string) {
	AuthAttempts.WithLabelValues(action, result).Inc()
}

// IncTokenRejection records why a bearer token was refused.
func IncTokenRejection(reason string) {
	TokenRejections.WithLabelValues(reason).Inc()
}

// AddTaskMutations adds n to the counter for op (create, update, delete).
func AddTaskMutations(op string, n int) {
	TaskMutations.WithLabelValues(op).Add(float64(n))
}
