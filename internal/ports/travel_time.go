package ports

import (
	"context"
	"hvac-dispatch-service/internal/domain"
)

// Contract for estimating travel time along a closed route.
type TravelTimeModel interface {
	// Return the travel minutes for visiting path in order. path starts and ends
	// at the technician's home; distanceKm is its haversine length.
	TravelMinutes(ctx context.Context, path []domain.Coordinates, distanceKm float64) (float64, error)
}
