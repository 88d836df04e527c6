package ports

import "hvac-dispatch-service/internal/domain"

type AssignOptions struct {
	MaxJobsPerTechnician int
	PrioritizeUrgent     bool
}

// Assignment partitions points across technicians.
type Assignment struct {
	// Technician ids that received at least one point, in processing order.
	Order        []string
	ByTechnician map[string][]domain.RoutablePoint
	Unassigned   []domain.RoutablePoint
}

// Planner allocates points to technicians. Implementations must return a
// partition: every point lands in exactly one technician list or Unassigned.
type Planner interface {
	Assign(technicians []domain.TechnicianProfile, points []domain.RoutablePoint, opts AssignOptions) Assignment
}
