package services

import (
	"context"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/platform/metrics"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidRequest marks input-shape errors rejected before planning.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrPlanningTimeout marks a run abandoned at its deadline. Nothing is persisted.
	ErrPlanningTimeout = errors.New("planning deadline exceeded")
)

const dateLayout = "2006-01-02"

type OptimizeRequest struct {
	Date                 string
	TechnicianIDs        []string
	MaxJobsPerTechnician *int
	PrioritizeUrgent     *bool
}

type OptimizerConfig struct {
	CityCenter     domain.Coordinates
	Rates          domain.CostRates
	DefaultMaxJobs int
	Timeout        time.Duration
	Workers        int
	Schedule       ScheduleMode
	// MinutesPerKm drives arrival simulation in the schedule check.
	MinutesPerKm    float64
	PersistAttempts int
	PersistBackoff  time.Duration
	// PersistBudget caps the total time spent writing one run's routes.
	PersistBudget time.Duration
}

func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		CityCenter:      domain.CityCenter,
		Rates:           domain.DefaultCostRates,
		DefaultMaxJobs:  DefaultMaxJobsPerTechnician,
		Timeout:         10 * time.Second,
		Workers:         4,
		Schedule:        ScheduleOff,
		MinutesPerKm:    60,
		PersistAttempts: 3,
		PersistBackoff:  50 * time.Millisecond,
		PersistBudget:   5 * time.Second,
	}
}

// RouteOptimizer runs the daily planning pipeline:
// read → normalize → assign → sequence + metrics per technician → aggregate → persist.
type RouteOptimizer struct {
	Jobs        ports.JobSource
	Technicians ports.TechnicianDirectory
	// Routes may be nil, in which case results are not persisted.
	Routes  ports.RouteRepository
	Planner ports.Planner
	Travel  ports.TravelTimeModel
	Config  OptimizerConfig
}

func NewRouteOptimizer(
	jobs ports.JobSource,
	technicians ports.TechnicianDirectory,
	routes ports.RouteRepository,
	travel ports.TravelTimeModel,
	cfg OptimizerConfig,
) *RouteOptimizer {
	return &RouteOptimizer{
		Jobs:        jobs,
		Technicians: technicians,
		Routes:      routes,
		Planner:     GreedyPlanner{},
		Travel:      travel,
		Config:      cfg,
	}
}

type routeOutcome struct {
	route    *domain.OptimizedRoute
	returned []domain.RoutablePoint
}

// OptimizeRoutes plans one route per technician for req.Date.
//
// Assignment runs sequentially so the result is deterministic for a given
// technician order; only the per-technician work is fanned out. A failing
// technician degrades to unassigned jobs instead of failing the run.
//
// Routes are persisted before returning, within Config.PersistBudget.
// Persistence failures are logged and never change the returned result.
func (o *RouteOptimizer) OptimizeRoutes(
	ctx context.Context,
	req OptimizeRequest,
) (_ *domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "routes.optimize")(&err)

	opts, err := o.validate(req)
	if err != nil {
		metrics.PlanningRuns.WithLabelValues("invalid").Inc()
		return nil, err
	}

	start := time.Now()
	result, err := o.plan(ctx, req, opts)
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrPlanningTimeout) {
			outcome = "timeout"
		}
		metrics.PlanningRuns.WithLabelValues(outcome).Inc()
		return nil, err
	}
	metrics.PlanningRuns.WithLabelValues("ok").Inc()
	metrics.PlanningDuration.Observe(time.Since(start).Seconds())
	metrics.UnassignedJobs.Set(float64(len(result.UnassignedJobs)))

	o.persistRoutes(ctx, strings.TrimSpace(req.Date), result.OptimizedRoutes)

	return result, nil
}

func (o *RouteOptimizer) validate(req OptimizeRequest) (ports.AssignOptions, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil || parsed.Format(dateLayout) != strings.TrimSpace(req.Date) {
		return ports.AssignOptions{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidRequest, req.Date)
	}

	for i, id := range req.TechnicianIDs {
		if strings.TrimSpace(id) == "" {
			return ports.AssignOptions{}, fmt.Errorf("%w: technicianIds[%d] is empty", ErrInvalidRequest, i)
		}
	}

	opts := ports.AssignOptions{
		MaxJobsPerTechnician: o.Config.DefaultMaxJobs,
		PrioritizeUrgent:     true,
	}
	if opts.MaxJobsPerTechnician <= 0 {
		opts.MaxJobsPerTechnician = DefaultMaxJobsPerTechnician
	}
	if req.MaxJobsPerTechnician != nil {
		if *req.MaxJobsPerTechnician < 1 {
			return ports.AssignOptions{}, fmt.Errorf(
				"%w: maxJobsPerTechnician must be at least 1, got %d",
				ErrInvalidRequest, *req.MaxJobsPerTechnician,
			)
		}
		opts.MaxJobsPerTechnician = *req.MaxJobsPerTechnician
	}
	if req.PrioritizeUrgent != nil {
		opts.PrioritizeUrgent = *req.PrioritizeUrgent
	}

	return opts, nil
}

func (o *RouteOptimizer) plan(
	ctx context.Context,
	req OptimizeRequest,
	opts ports.AssignOptions,
) (*domain.OptimizationResult, error) {
	date := strings.TrimSpace(req.Date)
	log := obs.FromContext(ctx).WithField("date", date)

	if o.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Config.Timeout)
		defer cancel()
	}

	jobs, err := o.Jobs.ScheduledJobsForDate(ctx, date)
	if err != nil {
		return nil, o.deadlineOr(ctx, fmt.Errorf("optimize routes: scheduled jobs for %s: %w", date, err))
	}

	technicians, err := o.Technicians.TechniciansByIDs(ctx, req.TechnicianIDs)
	if err != nil {
		return nil, o.deadlineOr(ctx, fmt.Errorf("optimize routes: technicians: %w", err))
	}

	points := NormalizeJobs(jobs)
	if dropped := len(jobs) - len(points); dropped > 0 {
		log.WithField("dropped", dropped).Debug("jobs without coordinates skipped")
	}

	assignment := o.Planner.Assign(technicians, points, opts)

	byID := make(map[string]domain.TechnicianProfile, len(technicians))
	for _, t := range technicians {
		if _, ok := byID[t.ID]; !ok {
			byID[t.ID] = t
		}
	}

	outcomes := make([]routeOutcome, len(assignment.Order))
	g, gctx := errgroup.WithContext(ctx)
	if o.Config.Workers > 0 {
		g.SetLimit(o.Config.Workers)
	}

	for i, techID := range assignment.Order {
		tech := byID[techID]
		assigned := assignment.ByTechnician[techID]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			route, returned, err := o.buildRoute(gctx, tech, assigned, date)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				metrics.RouteFailures.Inc()
				log.WithError(err).WithField("technician_id", tech.ID).
					Warn("route computation failed; jobs returned as unassigned")
				outcomes[i] = routeOutcome{returned: assigned}
				return nil
			}

			outcomes[i] = routeOutcome{route: route, returned: returned}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, o.deadlineOr(ctx, fmt.Errorf("optimize routes: %w", err))
	}
	if err := ctx.Err(); err != nil {
		return nil, o.deadlineOr(ctx, err)
	}

	routes := make([]domain.OptimizedRoute, 0, len(outcomes))
	unassigned := append([]domain.RoutablePoint{}, assignment.Unassigned...)
	for _, out := range outcomes {
		if out.route != nil {
			routes = append(routes, *out.route)
		}
		unassigned = append(unassigned, out.returned...)
	}

	result := AggregateResult(routes, unassigned, len(points), len(technicians))

	log.WithFields(logrus.Fields{
		"technicians": len(technicians),
		"jobs":        len(points),
		"routes":      len(routes),
		"unassigned":  len(unassigned),
	}).Info("routes optimized")

	return &result, nil
}

// buildRoute sequences, checks and prices one technician's jobs. It returns
// a nil route when nothing remains after the schedule check, plus any jobs
// handed back as unassigned.
func (o *RouteOptimizer) buildRoute(
	ctx context.Context,
	tech domain.TechnicianProfile,
	assigned []domain.RoutablePoint,
	date string,
) (*domain.OptimizedRoute, []domain.RoutablePoint, error) {
	home := tech.HomeOr(o.Config.CityCenter)

	sequence := SequenceNearestNeighbor(home, assigned)
	report := CheckSchedule(o.Config.Schedule, tech, home, sequence, o.Config.MinutesPerKm)

	if len(report.Kept) == 0 {
		return nil, report.Trimmed, nil
	}

	m, err := ComputeRouteMetrics(ctx, home, report.Kept, o.Travel, o.Config.Rates)
	if err != nil {
		return nil, nil, fmt.Errorf("build route for technician %s: %w", tech.ID, err)
	}

	return &domain.OptimizedRoute{
		TechnicianID:     tech.ID,
		Date:             date,
		Points:           report.Kept,
		TotalDistance:    m.TotalDistance,
		TotalDuration:    m.TotalDuration,
		Efficiency:       m.Efficiency,
		EstimatedCost:    m.EstimatedCost,
		Currency:         o.Config.Rates.Currency,
		DistrictCoverage: m.DistrictCoverage,
		Violations:       report.Violations,
	}, report.Trimmed, nil
}

func (o *RouteOptimizer) deadlineOr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("optimize routes: %w: %w", ErrPlanningTimeout, err)
	}
	return err
}

// persistRoutes replaces the stored route set for date with routes. Each
// route is written independently and retried, since writes are idempotent on
// (technicianId, date). Afterwards, routes left from an earlier run of the
// same date are pruned so a job is never stored on two routes.
func (o *RouteOptimizer) persistRoutes(ctx context.Context, date string, routes []domain.OptimizedRoute) {
	if o.Routes == nil {
		return
	}

	if o.Config.PersistBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Config.PersistBudget)
		defer cancel()
	}

	stored := make([]string, 0, len(routes))
	for _, route := range routes {
		if o.persistRoute(ctx, route) {
			stored = append(stored, route.TechnicianID)
		}
	}

	log := obs.FromContext(ctx).WithField("date", date)
	removed, err := o.Routes.PruneRoutes(ctx, date, stored)
	if err != nil {
		metrics.RoutePersists.WithLabelValues("prune_failed").Inc()
		log.WithError(err).Error("pruning stale routes failed")
		return
	}
	if removed > 0 {
		metrics.RoutePersists.WithLabelValues("pruned").Add(float64(removed))
		log.WithField("removed", removed).Info("stale routes pruned")
	}
}

func (o *RouteOptimizer) persistRoute(ctx context.Context, route domain.OptimizedRoute) bool {
	attempts := o.Config.PersistAttempts
	if attempts < 1 {
		attempts = 1
	}

	log := obs.FromContext(ctx).WithFields(logrus.Fields{
		"technician_id": route.TechnicianID,
		"date":          route.Date,
	})

	backoff := o.Config.PersistBackoff
	for attempt := 1; attempt <= attempts; attempt++ {
		id, err := o.Routes.PersistRoute(ctx, route)
		if err == nil {
			metrics.RoutePersists.WithLabelValues("ok").Inc()
			log.WithField("route_id", id).Debug("route persisted")
			return true
		}

		if attempt == attempts || ctx.Err() != nil {
			metrics.RoutePersists.WithLabelValues("failed").Inc()
			log.WithError(err).Error("route persistence failed")
			return false
		}

		metrics.RoutePersists.WithLabelValues("retry").Inc()
		if !sleepCtx(ctx, backoff) {
			metrics.RoutePersists.WithLabelValues("failed").Inc()
			log.WithError(ctx.Err()).Error("route persistence abandoned")
			return false
		}
		backoff *= 2
	}

	return false
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
