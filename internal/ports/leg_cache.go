package ports

import "context"

// Cache of travel seconds between two locations, keyed by an opaque leg key.
type LegDurationCache interface {
	// Return cached durations for the keys that are present.
	GetMany(ctx context.Context, keys []string) (map[string]float64, error)
	// Store durations for many legs.
	PutMany(ctx context.Context, durations map[string]float64) error
}
