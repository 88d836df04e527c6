package repositories

import (
	"context"
	"database/sql"
	"hvac-dispatch-service/internal/domain"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres when DATABASE_URL is set.
func TestSQLRouteRepository_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, InitSchema(ctx, db))

	_, err = db.ExecContext(ctx, `DELETE FROM optimized_routes WHERE technician_id IN ('it-T1', 'it-T2')`)
	require.NoError(t, err)

	repo := NewSQLRouteRepository(db)
	route := domain.OptimizedRoute{
		TechnicianID: "it-T1",
		Date:         "2031-01-15",
		Points: []domain.RoutablePoint{{
			ID:                "J1",
			Coordinates:       domain.Coordinates{Lat: 52.2, Lng: 21.0},
			District:          "Wola",
			Priority:          domain.PriorityHigh,
			JobType:           domain.JobTypeRepair,
			EstimatedDuration: 120,
		}},
		TotalDistance:    3.5,
		TotalDuration:    330,
		Efficiency:       0.29,
		EstimatedCost:    442.1,
		Currency:         "PLN",
		DistrictCoverage: []string{"Wola"},
	}

	id1, err := repo.PersistRoute(ctx, route)
	require.NoError(t, err)

	route.TotalDistance = 4
	id2, err := repo.PersistRoute(ctx, route)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	routes, err := repo.ListRoutes(ctx, "2031-01-15")
	require.NoError(t, err)

	var found *domain.OptimizedRoute
	for i := range routes {
		if routes[i].TechnicianID == "it-T1" {
			found = &routes[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 4.0, found.TotalDistance)
	assert.Equal(t, "2031-01-15", found.Date)
	require.Len(t, found.Points, 1)
	assert.Equal(t, "J1", found.Points[0].ID)

	// A later run that routes only it-T2 leaves no it-T1 record behind.
	route.TechnicianID = "it-T2"
	_, err = repo.PersistRoute(ctx, route)
	require.NoError(t, err)

	removed, err := repo.PruneRoutes(ctx, "2031-01-15", []string{"it-T2"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, 1)

	routes, err = repo.ListRoutes(ctx, "2031-01-15")
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "it-T2", routes[0].TechnicianID)
}

func TestSQLRouteRepository_NilDB(t *testing.T) {
	repo := NewSQLRouteRepository(nil)
	_, err := repo.PersistRoute(context.Background(), domain.OptimizedRoute{TechnicianID: "T1", Date: "2024-03-01"})
	require.Error(t, err)
	_, err = repo.ListRoutes(context.Background(), "2024-03-01")
	require.Error(t, err)
	_, err = repo.PruneRoutes(context.Background(), "2024-03-01", nil)
	require.Error(t, err)
}
