package traveltime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearTravelMinutes(t *testing.T) {
	m, err := NewLinear().TravelMinutes(context.Background(), nil, 2.5)
	require.NoError(t, err)
	assert.Equal(t, 150.0, m)

	m, err = Linear{MinutesPerKm: 2}.TravelMinutes(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)
}
