package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for planned routes.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS optimized_routes (
		id UUID PRIMARY KEY,
		technician_id TEXT NOT NULL,
		plan_date DATE NOT NULL,
		points JSONB NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		total_duration_min DOUBLE PRECISION NOT NULL,
		efficiency DOUBLE PRECISION NOT NULL,
		estimated_cost DOUBLE PRECISION NOT NULL,
		currency TEXT NOT NULL,
		district_coverage JSONB NOT NULL,
		violations JSONB NOT NULL DEFAULT '[]'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (technician_id, plan_date)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimized_routes_plan_date
	ON optimized_routes(plan_date);
	`

	statements := []string{
		createRoutesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
