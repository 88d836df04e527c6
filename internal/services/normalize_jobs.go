package services

import (
	"hvac-dispatch-service/internal/domain"
	"strings"
)

// NormalizeJobs turns raw scheduled jobs into routable points.
//
// Records without both coordinates are dropped silently; missing fields are
// defaulted rather than rejected because incomplete field data is routine.
// The returned slice keeps the input order.
func NormalizeJobs(jobs []domain.ScheduledJob) []domain.RoutablePoint {
	points := make([]domain.RoutablePoint, 0, len(jobs))

	for _, j := range jobs {
		if j.Lat == nil || j.Lng == nil {
			continue
		}

		priority, ok := domain.ParsePriority(j.Priority)
		if !ok {
			priority = domain.PriorityMedium
		}

		jobType, ok := domain.ParseJobType(j.JobType)
		if !ok {
			jobType = domain.JobTypeMaintenance
		}

		// Actual durations reported by technicians are ignored for planning.
		duration := jobType.DefaultDuration()

		points = append(points, domain.RoutablePoint{
			ID:                j.ID,
			Coordinates:       domain.Coordinates{Lat: *j.Lat, Lng: *j.Lng},
			District:          domain.CanonicalDistrict(j.District),
			Priority:          priority,
			JobType:           jobType,
			EstimatedDuration: duration,
			TimeWindow:        deriveTimeWindow(j, duration),
			Address:           strings.TrimSpace(j.Address),
		})
	}

	return points
}

// deriveTimeWindow prefers an explicit window and falls back to
// [scheduled, scheduled+duration]. Unparseable input yields no window.
func deriveTimeWindow(j domain.ScheduledJob, duration int) *domain.TimeWindow {
	if j.PreferredWindow != nil {
		start, errStart := domain.ParseClockTime(j.PreferredWindow.Start)
		end, errEnd := domain.ParseClockTime(j.PreferredWindow.End)
		if errStart == nil && errEnd == nil && end >= start {
			return &domain.TimeWindow{Start: start, End: end}
		}
	}

	if strings.TrimSpace(j.ScheduledTime) != "" {
		start, err := domain.ParseClockTime(j.ScheduledTime)
		if err == nil {
			return &domain.TimeWindow{Start: start, End: start.Add(duration)}
		}
	}

	return nil
}
