package geo

import (
	"hvac-dispatch-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKmKnownPair(t *testing.T) {
	// Warsaw centre to Kraków main square.
	d := DistanceKm(52.2297, 21.0122, 50.0614, 19.9366)
	assert.InDelta(t, 252.0, d, 1.5)
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{52.2297, 21.0122, 52.1935, 21.0350},
		{0, 0, 0, 180},
		{-33.86, 151.21, 51.5, -0.12},
	}
	for _, p := range pairs {
		assert.Equal(t, DistanceKm(p[0], p[1], p[2], p[3]), DistanceKm(p[2], p[3], p[0], p[1]))
	}
}

func TestDistanceKmIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(52.2297, 21.0122, 52.2297, 21.0122))
}

func TestDistanceKmNaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(DistanceKm(math.NaN(), 21, 52, 21)))
}

func TestPathKm(t *testing.T) {
	a := domain.Coordinates{Lat: 52.2297, Lng: 21.0122}
	b := domain.Coordinates{Lat: 52.2400, Lng: 21.0200}
	assert.Equal(t, 0.0, PathKm(nil))
	assert.Equal(t, 0.0, PathKm([]domain.Coordinates{a}))
	assert.InDelta(t, 2*Between(a, b), PathKm([]domain.Coordinates{a, b, a}), 1e-9)
}
