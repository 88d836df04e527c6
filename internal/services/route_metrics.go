package services

import (
	"context"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/geo"
	"hvac-dispatch-service/internal/ports"
	"math"
)

var ErrNonFiniteCoordinates = errors.New("non-finite coordinates")

// RouteMetrics are the derived figures of a sequenced route.
type RouteMetrics struct {
	TotalDistance    float64
	TotalDuration    float64
	Efficiency       float64
	EstimatedCost    float64
	DistrictCoverage []string
}

// ClosedPath returns home, each point in order, then home again.
// An empty route yields an empty path.
func ClosedPath(home domain.Coordinates, points []domain.RoutablePoint) []domain.Coordinates {
	if len(points) == 0 {
		return nil
	}

	path := make([]domain.Coordinates, 0, len(points)+2)
	path = append(path, home)
	for _, p := range points {
		path = append(path, p.Coordinates)
	}
	return append(path, home)
}

// ComputeRouteMetrics derives distance, duration, efficiency, cost and
// district coverage for points visited in the given order from home.
func ComputeRouteMetrics(
	ctx context.Context,
	home domain.Coordinates,
	points []domain.RoutablePoint,
	travel ports.TravelTimeModel,
	rates domain.CostRates,
) (RouteMetrics, error) {
	if !home.IsFinite() {
		return RouteMetrics{}, fmt.Errorf("route metrics: home: %w", ErrNonFiniteCoordinates)
	}
	for _, p := range points {
		if !p.Coordinates.IsFinite() {
			return RouteMetrics{}, fmt.Errorf("route metrics: point %q: %w", p.ID, ErrNonFiniteCoordinates)
		}
	}

	path := ClosedPath(home, points)
	totalDistance := geo.PathKm(path)

	serviceMinutes := 0
	for _, p := range points {
		serviceMinutes += p.EstimatedDuration
	}

	travelMinutes := 0.0
	if len(points) > 0 {
		var err error
		travelMinutes, err = travel.TravelMinutes(ctx, path, totalDistance)
		if err != nil {
			return RouteMetrics{}, fmt.Errorf("route metrics: travel time: %w", err)
		}
	}

	totalDuration := float64(serviceMinutes) + travelMinutes
	efficiency := math.Min(float64(len(points))/math.Max(totalDistance, 1), 1)
	cost := totalDistance*rates.PerKm + (totalDuration/60)*rates.PerHour

	return RouteMetrics{
		TotalDistance:    totalDistance,
		TotalDuration:    totalDuration,
		Efficiency:       efficiency,
		EstimatedCost:    cost,
		DistrictCoverage: districtCoverage(points),
	}, nil
}

func districtCoverage(points []domain.RoutablePoint) []string {
	seen := make(map[string]struct{}, len(points))
	out := make([]string, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p.District]; ok {
			continue
		}
		seen[p.District] = struct{}{}
		out = append(out, p.District)
	}
	return out
}
