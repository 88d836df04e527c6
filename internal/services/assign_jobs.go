package services

import (
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/ports"
	"slices"
)

// DefaultMaxJobsPerTechnician caps a single technician's daily route.
const DefaultMaxJobsPerTechnician = 8

// GreedyPlanner assigns jobs with a first-come greedy scan.
//
// Points are sorted once by priority; technicians are then processed in the
// order given and each claims the first eligible unclaimed points up to the
// cap. The outcome depends on technician order and is not globally optimal.
// Eligibility is district membership only; skills are not consulted.
type GreedyPlanner struct{}

var _ ports.Planner = GreedyPlanner{}

func (GreedyPlanner) Assign(
	technicians []domain.TechnicianProfile,
	points []domain.RoutablePoint,
	opts ports.AssignOptions,
) ports.Assignment {
	maxJobs := opts.MaxJobsPerTechnician
	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobsPerTechnician
	}

	// order holds indices into points; sorting indices keeps Unassigned in intake order.
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	if opts.PrioritizeUrgent {
		// Stable: equal priorities keep their intake order.
		slices.SortStableFunc(order, func(a, b int) int {
			return points[b].Priority.Weight() - points[a].Priority.Weight()
		})
	}

	claimed := make([]bool, len(points))
	out := ports.Assignment{
		Order:        []string{},
		ByTechnician: make(map[string][]domain.RoutablePoint),
		Unassigned:   []domain.RoutablePoint{},
	}
	seen := make(map[string]struct{}, len(technicians))

	for _, tech := range technicians {
		if _, dup := seen[tech.ID]; dup {
			continue
		}
		seen[tech.ID] = struct{}{}

		var picked []domain.RoutablePoint
		for _, i := range order {
			if len(picked) >= maxJobs {
				break
			}
			if claimed[i] || !tech.Serves(points[i].District) {
				continue
			}
			claimed[i] = true
			picked = append(picked, points[i])
		}

		// A technician with nothing eligible contributes no route at all.
		if len(picked) == 0 {
			continue
		}
		out.Order = append(out.Order, tech.ID)
		out.ByTechnician[tech.ID] = picked
	}

	for i, p := range points {
		if !claimed[i] {
			out.Unassigned = append(out.Unassigned, p)
		}
	}

	return out
}
