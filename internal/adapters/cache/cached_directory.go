package cache

import (
	"context"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/ports"
	"slices"
	"strings"
	"time"
)

// CachedDirectory memoises technician directory snapshots per id list.
type CachedDirectory struct {
	next  ports.TechnicianDirectory
	cache *TTLCache[[]domain.TechnicianProfile]
}

var _ ports.TechnicianDirectory = (*CachedDirectory)(nil)

func NewCachedDirectory(next ports.TechnicianDirectory, maxSize int, ttl time.Duration, clock Clock) *CachedDirectory {
	return &CachedDirectory{
		next:  next,
		cache: NewTTLCache[[]domain.TechnicianProfile](maxSize, ttl, clock),
	}
}

func (d *CachedDirectory) TechniciansByIDs(ctx context.Context, ids []string) ([]domain.TechnicianProfile, error) {
	// Order is significant to the planner, so the key keeps it.
	key := "ids:" + strings.Join(ids, "\x1f")

	if cached, ok := d.cache.Get(key); ok {
		return slices.Clone(cached), nil
	}

	techs, err := d.next.TechniciansByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	d.cache.Set(key, slices.Clone(techs))
	return techs, nil
}
