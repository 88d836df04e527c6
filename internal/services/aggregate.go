package services

import "hvac-dispatch-service/internal/domain"

// AggregateResult combines per-technician routes into a planning result.
//
// averageJobsPerTechnician divides the input point count by the input
// technician count, so it can disagree with the visible routes.
func AggregateResult(
	routes []domain.OptimizedRoute,
	unassigned []domain.RoutablePoint,
	totalPoints int,
	technicianCount int,
) domain.OptimizationResult {
	if routes == nil {
		routes = []domain.OptimizedRoute{}
	}
	if unassigned == nil {
		unassigned = []domain.RoutablePoint{}
	}

	var totalDistance, efficiencySum float64
	for _, r := range routes {
		totalDistance += r.TotalDistance
		efficiencySum += r.Efficiency
	}

	metrics := domain.OptimizationMetrics{TotalDistance: totalDistance}
	if technicianCount > 0 {
		metrics.AverageJobsPerTechnician = float64(totalPoints) / float64(technicianCount)
	}
	if len(routes) > 0 {
		metrics.EfficiencyScore = efficiencySum / float64(len(routes))
	}

	return domain.OptimizationResult{
		OptimizedRoutes: routes,
		UnassignedJobs:  unassigned,
		TotalJobs:       totalPoints,
		Metrics:         metrics,
	}
}
