package repositories

import (
	"hvac-dispatch-service/internal/domain"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobDocument is the stored shape of a scheduled job in the document store
// and in seed files. Fields are optional; the intake normalizer fills gaps.
type JobDocument struct {
	ID              string         `json:"id" bson:"_id"`
	ScheduledDate   string         `json:"scheduled_date" bson:"scheduled_date"`
	Status          string         `json:"status,omitempty" bson:"status,omitempty"`
	Location        *LocationDoc   `json:"location,omitempty" bson:"location,omitempty"`
	District        string         `json:"district,omitempty" bson:"district,omitempty"`
	Priority        string         `json:"priority,omitempty" bson:"priority,omitempty"`
	JobType         string         `json:"job_type,omitempty" bson:"job_type,omitempty"`
	ActualDuration  *int           `json:"actual_duration,omitempty" bson:"actual_duration,omitempty"`
	ScheduledTime   string         `json:"scheduled_time,omitempty" bson:"scheduled_time,omitempty"`
	PreferredWindow *TimeWindowDoc `json:"preferred_window,omitempty" bson:"preferred_window,omitempty"`
	Address         string         `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
}

type LocationDoc struct {
	Lat *float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

type TimeWindowDoc struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// TechnicianDocument is the stored shape of a technician profile.
type TechnicianDocument struct {
	ID           string              `json:"id" bson:"_id"`
	DisplayName  string              `json:"display_name" bson:"display_name"`
	HomeLocation *domain.Coordinates `json:"home_location,omitempty" bson:"home_location,omitempty"`
	ServiceAreas []string            `json:"service_areas" bson:"service_areas"`
	Skills       []string            `json:"skills" bson:"skills"`
	VehicleType  string              `json:"vehicle_type,omitempty" bson:"vehicle_type,omitempty"`
	WorkingHours *TimeWindowDoc      `json:"working_hours,omitempty" bson:"working_hours,omitempty"`
	Active       bool                `json:"active" bson:"active"`
}

// inactiveJobStatuses are excluded from planning.
var inactiveJobStatuses = []string{"cancelled", "completed"}

// inactiveStatusFilter matches the same statuses as plannable, ignoring case
// and surrounding whitespace. Documents without a status also match.
func inactiveStatusFilter() bson.M {
	return bson.M{"$not": primitive.Regex{
		Pattern: `^\s*(` + strings.Join(inactiveJobStatuses, "|") + `)\s*$`,
		Options: "i",
	}}
}

func (d JobDocument) plannable() bool {
	status := strings.ToLower(strings.TrimSpace(d.Status))
	for _, s := range inactiveJobStatuses {
		if status == s {
			return false
		}
	}
	return true
}

func (d JobDocument) toDomain() domain.ScheduledJob {
	job := domain.ScheduledJob{
		ID:             d.ID,
		District:       d.District,
		Priority:       d.Priority,
		JobType:        d.JobType,
		ActualDuration: d.ActualDuration,
		ScheduledTime:  d.ScheduledTime,
		Address:        d.Address,
	}
	if d.Location != nil {
		job.Lat = d.Location.Lat
		job.Lng = d.Location.Lng
	}
	if d.PreferredWindow != nil {
		job.PreferredWindow = &domain.RawTimeWindow{Start: d.PreferredWindow.Start, End: d.PreferredWindow.End}
	}
	return job
}

func (d TechnicianDocument) toDomain() domain.TechnicianProfile {
	hours := domain.DefaultWorkingHours
	if d.WorkingHours != nil {
		start, errStart := domain.ParseClockTime(d.WorkingHours.Start)
		end, errEnd := domain.ParseClockTime(d.WorkingHours.End)
		if errStart == nil && errEnd == nil && end > start {
			hours = domain.TimeWindow{Start: start, End: end}
		}
	}

	return domain.TechnicianProfile{
		ID:           d.ID,
		DisplayName:  d.DisplayName,
		HomeLocation: d.HomeLocation,
		ServiceAreas: canonicalAreas(d.ServiceAreas),
		Skills:       d.Skills,
		VehicleType:  d.VehicleType,
		WorkingHours: hours,
		Active:       d.Active,
	}
}

// canonicalAreas spells known districts the way job intake does; other
// names are kept trimmed.
func canonicalAreas(areas []string) []string {
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		c := domain.CanonicalDistrict(a)
		if c == domain.UnknownDistrict {
			c = strings.TrimSpace(a)
		}
		out = append(out, c)
	}
	return out
}

// orderByIDs returns techs in the order of ids, skipping unknown ids.
func orderByIDs(techs []domain.TechnicianProfile, ids []string) []domain.TechnicianProfile {
	byID := make(map[string]domain.TechnicianProfile, len(techs))
	for _, t := range techs {
		byID[t.ID] = t
	}

	out := make([]domain.TechnicianProfile, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, t)
	}
	return out
}
