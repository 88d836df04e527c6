package ports

import (
	"context"
	"hvac-dispatch-service/internal/domain"
)

// Port: a boundary for reading the jobs scheduled on a given date.
type JobSource interface {
	// Return raw job records for date (YYYY-MM-DD). Order is preserved by the planner.
	ScheduledJobsForDate(ctx context.Context, date string) ([]domain.ScheduledJob, error)
}
