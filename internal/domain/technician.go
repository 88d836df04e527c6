package domain

import "slices"

// TechnicianProfile is a read-only view of a dispatchable technician.
type TechnicianProfile struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"displayName"`
	HomeLocation *Coordinates `json:"homeLocation,omitempty"`
	ServiceAreas []string     `json:"serviceAreas"`
	Skills       []string     `json:"skills"`
	VehicleType  string       `json:"vehicleType"`
	WorkingHours TimeWindow   `json:"workingHours"`
	Active       bool         `json:"active"`
}

// HomeOr returns the technician's home location, or fallback when unset.
func (t TechnicianProfile) HomeOr(fallback Coordinates) Coordinates {
	if t.HomeLocation == nil {
		return fallback
	}
	return *t.HomeLocation
}

// Serves reports whether district is one of the technician's service areas.
func (t TechnicianProfile) Serves(district string) bool {
	return slices.Contains(t.ServiceAreas, district)
}

// DefaultWorkingHours applies when a directory record carries none.
var DefaultWorkingHours = TimeWindow{Start: 8 * 60, End: 16 * 60}
