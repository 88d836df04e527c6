package services

import (
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/geo"
	"strings"
)

// ScheduleMode toggles working-hours and time-window validation of routes.
type ScheduleMode string

const (
	// ScheduleOff leaves routes exactly as sequenced.
	ScheduleOff ScheduleMode = "off"
	// ScheduleWarn annotates routes with violations.
	ScheduleWarn ScheduleMode = "warn"
	// ScheduleEnforce also drops trailing jobs that end past working hours.
	ScheduleEnforce ScheduleMode = "enforce"
)

func ParseScheduleMode(s string) (ScheduleMode, error) {
	switch m := ScheduleMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ScheduleOff, nil
	case ScheduleOff, ScheduleWarn, ScheduleEnforce:
		return m, nil
	default:
		return "", fmt.Errorf("unknown schedule mode %q", s)
	}
}

type ScheduleReport struct {
	Kept       []domain.RoutablePoint
	Trimmed    []domain.RoutablePoint
	Violations []string
}

// CheckSchedule walks the sequenced route from the start of the technician's
// working hours, waiting for window starts and spending minutesPerKm per
// kilometre of travel. The sequence itself is never reordered.
func CheckSchedule(
	mode ScheduleMode,
	tech domain.TechnicianProfile,
	home domain.Coordinates,
	points []domain.RoutablePoint,
	minutesPerKm float64,
) ScheduleReport {
	report := ScheduleReport{Kept: points}
	if mode == ScheduleOff || mode == "" || len(points) == 0 {
		return report
	}

	hours := tech.WorkingHours
	if hours.End <= hours.Start {
		hours = domain.DefaultWorkingHours
	}

	// closesAt[i] is when the technician is home again if the route stops after point i.
	closesAt := make([]float64, len(points))
	t := float64(hours.Start)
	current := home

	for i, p := range points {
		t += geo.Between(current, p.Coordinates) * minutesPerKm
		if w := p.TimeWindow; w != nil {
			if t > float64(w.End) {
				report.Violations = append(report.Violations, fmt.Sprintf(
					"job %s arrives %s after window end %s",
					p.ID, clockOf(t), w.End,
				))
			} else if t < float64(w.Start) {
				t = float64(w.Start)
			}
		}
		t += float64(p.EstimatedDuration)
		current = p.Coordinates
		closesAt[i] = t + geo.Between(current, home)*minutesPerKm
	}

	if closesAt[len(points)-1] > float64(hours.End) {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"route ends %s after working hours end %s",
			clockOf(closesAt[len(points)-1]), hours.End,
		))
	}

	if mode != ScheduleEnforce {
		return report
	}

	keep := 0
	for i := range points {
		if closesAt[i] <= float64(hours.End) {
			keep = i + 1
		}
	}
	report.Kept = points[:keep]
	report.Trimmed = points[keep:]
	if len(report.Trimmed) > 0 {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"%d job(s) returned as unassigned to fit working hours", len(report.Trimmed),
		))
	}

	return report
}

func clockOf(minutes float64) domain.ClockTime {
	return domain.ClockTime(int(minutes + 0.5))
}
