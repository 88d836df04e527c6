package ports

import (
	"context"
	"hvac-dispatch-service/internal/domain"
)

// Port: read-only view of technician capability.
type TechnicianDirectory interface {
	// Return the given technicians in request order, or all active technicians
	// ordered by id when ids is empty. Unknown ids are skipped.
	TechniciansByIDs(ctx context.Context, ids []string) ([]domain.TechnicianProfile, error)
}
