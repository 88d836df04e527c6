package ports

import (
	"context"
	"hvac-dispatch-service/internal/domain"
)

// Port: durable storage of planned routes, keyed by (technicianId, date).
type RouteRepository interface {
	// Insert or replace the route and return its record id.
	PersistRoute(ctx context.Context, route domain.OptimizedRoute) (string, error)
	// Delete the routes stored for date whose technician is not in keep and
	// return how many were removed.
	PruneRoutes(ctx context.Context, date string, keep []string) (int, error)
	// Return all routes stored for date.
	ListRoutes(ctx context.Context, date string) ([]domain.OptimizedRoute, error)
}
