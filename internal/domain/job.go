package domain

import "strings"

// Priority orders jobs for assignment. Higher weight is claimed first.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityWeights = map[Priority]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Weight returns the assignment weight; unknown priorities weigh as medium.
func (p Priority) Weight() int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return priorityWeights[PriorityMedium]
}

// ParsePriority maps free text to a Priority. ok is false for empty or unknown input.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	_, ok := priorityWeights[p]
	return p, ok
}

type JobType string

const (
	JobTypeInstallation JobType = "installation"
	JobTypeRepair       JobType = "repair"
	JobTypeMaintenance  JobType = "maintenance"
	JobTypeInspection   JobType = "inspection"
	JobTypeEmergency    JobType = "emergency"
)

var jobTypeDurations = map[JobType]int{
	JobTypeEmergency:    120,
	JobTypeInstallation: 240,
	JobTypeRepair:       90,
	JobTypeMaintenance:  60,
	JobTypeInspection:   45,
}

// DefaultDuration returns the planning duration in minutes for the job type.
func (t JobType) DefaultDuration() int {
	if d, ok := jobTypeDurations[t]; ok {
		return d
	}
	return jobTypeDurations[JobTypeMaintenance]
}

func ParseJobType(s string) (JobType, bool) {
	t := JobType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := jobTypeDurations[t]
	return t, ok
}

// ScheduledJob is a raw job record as delivered by the job source.
// Every field except ID may be missing; the intake normalizer applies defaults.
type ScheduledJob struct {
	ID              string
	Lat             *float64
	Lng             *float64
	District        string
	Priority        string
	JobType         string
	ActualDuration  *int
	ScheduledTime   string
	PreferredWindow *RawTimeWindow
	Address         string
}

// RawTimeWindow carries unparsed clock times from the job source.
type RawTimeWindow struct {
	Start string
	End   string
}

// RoutablePoint is one job's geographic task, ready for planning.
type RoutablePoint struct {
	ID                string      `json:"id"`
	Coordinates       Coordinates `json:"coordinates"`
	District          string      `json:"district"`
	Priority          Priority    `json:"priority"`
	JobType           JobType     `json:"jobType"`
	EstimatedDuration int         `json:"estimatedDuration"`
	TimeWindow        *TimeWindow `json:"timeWindow,omitempty"`
	Address           string      `json:"address"`
}
