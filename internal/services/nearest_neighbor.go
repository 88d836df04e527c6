package services

import (
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/geo"
	"math"
)

// SequenceNearestNeighbor orders points into a visiting sequence.
//
// Starting at home, it repeatedly moves to the closest unvisited point.
// Ties go to the point listed first. Earlier choices are never revisited,
// so clustered geographies can produce visibly suboptimal tours.
// O(n²); n is bounded by the per-technician job cap.
func SequenceNearestNeighbor(home domain.Coordinates, points []domain.RoutablePoint) []domain.RoutablePoint {
	remaining := make([]domain.RoutablePoint, len(points))
	copy(remaining, points)

	sequence := make([]domain.RoutablePoint, 0, len(points))
	current := home

	for len(remaining) > 0 {
		best := 0
		minDistance := math.Inf(1)

		for i, p := range remaining {
			d := geo.Between(current, p.Coordinates)
			// Strict comparison keeps the first minimum found.
			if d < minDistance {
				minDistance = d
				best = i
			}
		}

		next := remaining[best]
		sequence = append(sequence, next)
		remaining = append(remaining[:best], remaining[best+1:]...)
		current = next.Coordinates
	}

	return sequence
}
