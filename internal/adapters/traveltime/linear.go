package traveltime

import (
	"context"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/ports"
)

// DefaultMinutesPerKm is the placeholder rate used until a routing engine is wired.
// Downstream analytics compare costs across runs, so it is kept as is.
const DefaultMinutesPerKm = 60.0

// Linear charges a fixed number of minutes per kilometre of haversine distance.
type Linear struct {
	MinutesPerKm float64
}

var _ ports.TravelTimeModel = Linear{}

func NewLinear() Linear { return Linear{MinutesPerKm: DefaultMinutesPerKm} }

func (l Linear) TravelMinutes(_ context.Context, _ []domain.Coordinates, distanceKm float64) (float64, error) {
	return distanceKm * l.MinutesPerKm, nil
}
