package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// PlanningRuns counts route optimization runs by outcome (ok, invalid, error, timeout).
	PlanningRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planning_runs_total", Help: "Route optimization runs by outcome."},
		[]string{"outcome"},
	)
	// PlanningDuration records the computation time of successful runs.
	PlanningDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "planning_duration_seconds", Help: "Route optimization duration in seconds.", Buckets: prometheus.DefBuckets},
	)
	// UnassignedJobs is the unassigned count of the latest run.
	UnassignedJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "planning_unassigned_jobs", Help: "Unassigned jobs in the latest optimization run."},
	)
	// RouteFailures counts technicians whose route could not be computed.
	RouteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "planning_route_failures_total", Help: "Per-technician route computations that failed."},
	)
	// RoutePersists counts route writes by status (ok, retry, failed).
	RoutePersists = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_persist_total", Help: "Route persistence attempts by status."},
		[]string{"status"},
	)
	// TravelTimeRequests counts external travel-time API calls by status.
	TravelTimeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "travel_time_requests_total", Help: "External travel-time API calls by status."},
		[]string{"status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			PlanningRuns,
			PlanningDuration,
			UnassignedJobs,
			RouteFailures,
			RoutePersists,
			TravelTimeRequests,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
