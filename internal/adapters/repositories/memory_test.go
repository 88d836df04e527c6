package repositories

import (
	"context"
	"hvac-dispatch-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed() Seed {
	base := time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC)
	return Seed{
		Jobs: []JobDocument{
			{ID: "J3", ScheduledDate: "2024-03-01", CreatedAt: base.Add(2 * time.Minute)},
			{ID: "J1", ScheduledDate: "2024-03-01", CreatedAt: base},
			{ID: "J2", ScheduledDate: "2024-03-01", CreatedAt: base, Status: "Cancelled"},
			{ID: "J4", ScheduledDate: "2024-03-02", CreatedAt: base},
			{ID: "J0", ScheduledDate: "2024-03-01", CreatedAt: base},
		},
		Technicians: []TechnicianDocument{
			{ID: "T3", Active: true},
			{ID: "T1", Active: true},
			{ID: "T2", Active: false},
		},
	}
}

func TestMemoryStore_ScheduledJobsForDate(t *testing.T) {
	store := NewMemoryStore(testSeed())

	jobs, err := store.ScheduledJobsForDate(context.Background(), "2024-03-01")
	require.NoError(t, err)

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"J0", "J1", "J3"}, ids)
}

func TestMemoryStore_TechniciansByIDs(t *testing.T) {
	store := NewMemoryStore(testSeed())
	ctx := context.Background()

	all, err := store.TechniciansByIDs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "T1", all[0].ID)
	assert.Equal(t, "T3", all[1].ID)

	// Explicit ids include inactive technicians.
	picked, err := store.TechniciansByIDs(ctx, []string{"T2", "T9", "T3", "T2"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "T2", picked[0].ID)
	assert.Equal(t, "T3", picked[1].ID)
}

func TestMemoryStore_PersistRouteIsIdempotent(t *testing.T) {
	store := NewMemoryStore(Seed{})
	ctx := context.Background()

	route := domain.OptimizedRoute{TechnicianID: "T1", Date: "2024-03-01", TotalDistance: 5}
	id1, err := store.PersistRoute(ctx, route)
	require.NoError(t, err)

	route.TotalDistance = 7
	id2, err := store.PersistRoute(ctx, route)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	_, err = store.PersistRoute(ctx, domain.OptimizedRoute{TechnicianID: "T0", Date: "2024-03-01"})
	require.NoError(t, err)
	_, err = store.PersistRoute(ctx, domain.OptimizedRoute{TechnicianID: "T1", Date: "2024-03-02"})
	require.NoError(t, err)

	routes, err := store.ListRoutes(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "T0", routes[0].TechnicianID)
	assert.Equal(t, 7.0, routes[1].TotalDistance)
}

func TestMemoryStore_PruneRoutes(t *testing.T) {
	store := NewMemoryStore(Seed{})
	ctx := context.Background()

	for _, r := range []domain.OptimizedRoute{
		{TechnicianID: "a", Date: "2024-03-01"},
		{TechnicianID: "b", Date: "2024-03-01"},
		{TechnicianID: "a", Date: "2024-03-02"},
	} {
		_, err := store.PersistRoute(ctx, r)
		require.NoError(t, err)
	}

	removed, err := store.PruneRoutes(ctx, "2024-03-01", []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	routes, err := store.ListRoutes(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "b", routes[0].TechnicianID)

	other, err := store.ListRoutes(ctx, "2024-03-02")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	removed, err = store.PruneRoutes(ctx, "2024-03-01", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(good, []byte(`{
		"jobs": [{"id": "J1", "scheduled_date": "2024-03-01", "location": {"lat": 52.2, "lng": 21.0}}],
		"technicians": [{"id": "T1", "service_areas": ["Wola"], "active": true}]
	}`), 0o600))

	seed, err := LoadSeed(good)
	require.NoError(t, err)
	require.Len(t, seed.Jobs, 1)
	require.Len(t, seed.Technicians, 1)
	assert.Equal(t, 21.0, *seed.Jobs[0].Location.Lng)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"jobs": [{"id": " ", "scheduled_date": "2024-03-01"}]}`), 0o600))
	_, err = LoadSeed(bad)
	require.Error(t, err)

	_, err = LoadSeed(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestTechnicianDocument_CanonicalAreas(t *testing.T) {
	doc := TechnicianDocument{ID: "T1", ServiceAreas: []string{" mokotów", "Unknown", " Konstancin "}}

	tech := doc.toDomain()
	assert.Equal(t, []string{"Mokotów", "Unknown", "Konstancin"}, tech.ServiceAreas)
	assert.True(t, tech.Serves(domain.CanonicalDistrict("MOKOTÓW")))
	assert.Equal(t, domain.DefaultWorkingHours, tech.WorkingHours)
}
