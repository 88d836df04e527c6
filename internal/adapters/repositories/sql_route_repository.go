package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

// SQLRouteRepository stores planned routes in Postgres, one row per
// (technician, date).
type SQLRouteRepository struct {
	DB *sql.DB
}

var _ ports.RouteRepository = (*SQLRouteRepository)(nil)

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

// Insert or replace a route. Replanning the same technician and date keeps
// the original record id.
func (r *SQLRouteRepository) PersistRoute(
	ctx context.Context,
	route domain.OptimizedRoute,
) (_ string, err error) {
	defer obs.Time(ctx, "routes.PersistRoute")(&err)

	if r.DB == nil {
		return "", errors.New("route repository: db is nil")
	}

	if strings.TrimSpace(route.TechnicianID) == "" || strings.TrimSpace(route.Date) == "" {
		return "", errors.New("persist route: technician id and date are required")
	}

	points, err := json.Marshal(route.Points)
	if err != nil {
		return "", fmt.Errorf("persist route: marshal points: %w", err)
	}
	coverage, err := json.Marshal(nonNil(route.DistrictCoverage))
	if err != nil {
		return "", fmt.Errorf("persist route: marshal coverage: %w", err)
	}
	violations, err := json.Marshal(nonNil(route.Violations))
	if err != nil {
		return "", fmt.Errorf("persist route: marshal violations: %w", err)
	}

	q := `
	INSERT INTO optimized_routes (
		id, technician_id, plan_date, points,
		total_distance_km, total_duration_min, efficiency,
		estimated_cost, currency, district_coverage, violations
	)
	VALUES ($1, $2, $3::date, $4::jsonb, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb)
	ON CONFLICT (technician_id, plan_date) DO UPDATE
	SET points = EXCLUDED.points,
		total_distance_km = EXCLUDED.total_distance_km,
		total_duration_min = EXCLUDED.total_duration_min,
		efficiency = EXCLUDED.efficiency,
		estimated_cost = EXCLUDED.estimated_cost,
		currency = EXCLUDED.currency,
		district_coverage = EXCLUDED.district_coverage,
		violations = EXCLUDED.violations,
		updated_at = now()
	RETURNING id::text;
	`

	var id string
	err = r.DB.QueryRowContext(ctx, q,
		uuid.NewString(), route.TechnicianID, route.Date, string(points),
		route.TotalDistance, route.TotalDuration, route.Efficiency,
		route.EstimatedCost, route.Currency, string(coverage), string(violations),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("persist route technician=%q date=%q: %w", route.TechnicianID, route.Date, err)
	}

	return id, nil
}

// Delete the date's routes for technicians outside keep.
func (r *SQLRouteRepository) PruneRoutes(
	ctx context.Context,
	date string,
	keep []string,
) (_ int, err error) {
	defer obs.Time(ctx, "routes.PruneRoutes")(&err)

	if r.DB == nil {
		return 0, errors.New("route repository: db is nil")
	}

	if keep == nil {
		keep = []string{}
	}

	q := `
	DELETE FROM optimized_routes
	WHERE plan_date = $1::date
		AND NOT (technician_id = ANY($2::text[]));
	`

	res, err := r.DB.ExecContext(ctx, q, date, keep)
	if err != nil {
		return 0, fmt.Errorf("prune routes date=%q: %w", date, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune routes date=%q: rows affected: %w", date, err)
	}

	return int(n), nil
}

// Return the routes stored for date ordered by technician id.
func (r *SQLRouteRepository) ListRoutes(
	ctx context.Context,
	date string,
) (_ []domain.OptimizedRoute, err error) {
	defer obs.Time(ctx, "routes.ListRoutes")(&err)

	if r.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}

	q := `
	SELECT technician_id, to_char(plan_date, 'YYYY-MM-DD'), points,
		total_distance_km, total_duration_min, efficiency,
		estimated_cost, currency, district_coverage, violations
	FROM optimized_routes
	WHERE plan_date = $1::date
	ORDER BY technician_id;
	`

	rows, err := r.DB.QueryContext(ctx, q, date)
	if err != nil {
		return nil, fmt.Errorf("list routes: query optimized_routes: %w", err)
	}
	defer rows.Close()

	routes := []domain.OptimizedRoute{}
	for rows.Next() {
		var route domain.OptimizedRoute
		var points, coverage, violations []byte
		if err := rows.Scan(
			&route.TechnicianID, &route.Date, &points,
			&route.TotalDistance, &route.TotalDuration, &route.Efficiency,
			&route.EstimatedCost, &route.Currency, &coverage, &violations,
		); err != nil {
			return nil, fmt.Errorf("list routes: scan rows: %w", err)
		}

		if err := json.Unmarshal(points, &route.Points); err != nil {
			return nil, fmt.Errorf("list routes: decode points: %w", err)
		}
		if err := json.Unmarshal(coverage, &route.DistrictCoverage); err != nil {
			return nil, fmt.Errorf("list routes: decode coverage: %w", err)
		}
		if err := json.Unmarshal(violations, &route.Violations); err != nil {
			return nil, fmt.Errorf("list routes: decode violations: %w", err)
		}
		if len(route.Violations) == 0 {
			route.Violations = nil
		}

		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
