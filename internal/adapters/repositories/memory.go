package repositories

import (
	"context"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/ports"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore serves jobs, technicians and routes from process memory.
// It is used when no document store or database is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	jobs        []JobDocument
	technicians []TechnicianDocument
	routes      map[routeKey]storedRoute
}

type routeKey struct {
	technicianID string
	date         string
}

type storedRoute struct {
	id    string
	route domain.OptimizedRoute
}

var (
	_ ports.JobSource           = (*MemoryStore)(nil)
	_ ports.TechnicianDirectory = (*MemoryStore)(nil)
	_ ports.RouteRepository     = (*MemoryStore)(nil)
)

func NewMemoryStore(seed Seed) *MemoryStore {
	return &MemoryStore{
		jobs:        slices.Clone(seed.Jobs),
		technicians: slices.Clone(seed.Technicians),
		routes:      map[routeKey]storedRoute{},
	}
}

func (m *MemoryStore) ScheduledJobsForDate(_ context.Context, date string) ([]domain.ScheduledJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]JobDocument, 0, len(m.jobs))
	for _, j := range m.jobs {
		if j.ScheduledDate == date && j.plannable() {
			docs = append(docs, j)
		}
	}
	sort.SliceStable(docs, func(a, b int) bool {
		if !docs[a].CreatedAt.Equal(docs[b].CreatedAt) {
			return docs[a].CreatedAt.Before(docs[b].CreatedAt)
		}
		return docs[a].ID < docs[b].ID
	})

	out := make([]domain.ScheduledJob, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (m *MemoryStore) TechniciansByIDs(_ context.Context, ids []string) ([]domain.TechnicianProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	techs := make([]domain.TechnicianProfile, 0, len(m.technicians))
	for _, t := range m.technicians {
		if len(ids) == 0 && !t.Active {
			continue
		}
		techs = append(techs, t.toDomain())
	}

	if len(ids) > 0 {
		return orderByIDs(techs, ids), nil
	}

	sort.Slice(techs, func(a, b int) bool { return techs[a].ID < techs[b].ID })
	return techs, nil
}

func (m *MemoryStore) PersistRoute(_ context.Context, route domain.OptimizedRoute) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := routeKey{technicianID: route.TechnicianID, date: route.Date}
	stored, ok := m.routes[key]
	if !ok {
		stored.id = uuid.NewString()
	}
	stored.route = route
	m.routes[key] = stored

	return stored.id, nil
}

func (m *MemoryStore) PruneRoutes(_ context.Context, date string, keep []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.routes {
		if key.date == date && !slices.Contains(keep, key.technicianID) {
			delete(m.routes, key)
			removed++
		}
	}

	return removed, nil
}

func (m *MemoryStore) ListRoutes(_ context.Context, date string) ([]domain.OptimizedRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.OptimizedRoute{}
	for key, stored := range m.routes {
		if key.date == date {
			out = append(out, stored.route)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].TechnicianID < out[b].TechnicianID })

	return out, nil
}
