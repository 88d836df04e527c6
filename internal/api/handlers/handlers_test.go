package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOptimizer struct {
	got    services.OptimizeRequest
	result *domain.OptimizationResult
	err    error
}

func (s *stubOptimizer) OptimizeRoutes(_ context.Context, req services.OptimizeRequest) (*domain.OptimizationResult, error) {
	s.got = req
	return s.result, s.err
}

type stubRoutes struct {
	routes []domain.OptimizedRoute
	err    error
	date   string
}

func (s *stubRoutes) PersistRoute(context.Context, domain.OptimizedRoute) (string, error) {
	return "", errors.New("not used")
}

func (s *stubRoutes) PruneRoutes(context.Context, string, []string) (int, error) {
	return 0, nil
}

func (s *stubRoutes) ListRoutes(_ context.Context, date string) ([]domain.OptimizedRoute, error) {
	s.date = date
	return s.routes, s.err
}

func TestOptimize_OK(t *testing.T) {
	opt := &stubOptimizer{result: &domain.OptimizationResult{
		OptimizedRoutes: []domain.OptimizedRoute{{TechnicianID: "T1", Date: "2024-03-01", TotalDistance: 4.2}},
		UnassignedJobs:  []domain.RoutablePoint{},
		TotalJobs:       1,
		Metrics:         domain.OptimizationMetrics{TotalDistance: 4.2, AverageJobsPerTechnician: 1},
	}}
	h := &OptimizeHandler{Optimizer: opt}

	body := `{"date":"2024-03-01","technicianIds":["T1"],"maxJobsPerTechnician":3,"prioritizeUrgent":false}`
	req := httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Optimize(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	assert.Equal(t, "2024-03-01", opt.got.Date)
	assert.Equal(t, []string{"T1"}, opt.got.TechnicianIDs)
	require.NotNil(t, opt.got.MaxJobsPerTechnician)
	assert.Equal(t, 3, *opt.got.MaxJobsPerTechnician)
	require.NotNil(t, opt.got.PrioritizeUrgent)
	assert.False(t, *opt.got.PrioritizeUrgent)

	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res, "optimizedRoutes")
	assert.Contains(t, res, "unassignedJobs")
	assert.Equal(t, 1.0, res["totalJobs"])
	metrics, ok := res["optimizationMetrics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4.2, metrics["totalDistance"])
}

func TestOptimize_BadRequests(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"date":`,
		"unknown field":  `{"date":"2024-03-01","trucks":3}`,
		"two objects":    `{"date":"2024-03-01"}{"date":"2024-03-02"}`,
		"missing date":   `{}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			opt := &stubOptimizer{}
			h := &OptimizeHandler{Optimizer: opt}

			w := httptest.NewRecorder()
			h.Optimize(w, httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, opt.got.Date)
		})
	}
}

func TestOptimize_ServiceErrors(t *testing.T) {
	t.Run("invalid request maps to 400", func(t *testing.T) {
		opt := &stubOptimizer{err: fmt.Errorf("%w: date must be YYYY-MM-DD", services.ErrInvalidRequest)}
		w := httptest.NewRecorder()
		(&OptimizeHandler{Optimizer: opt}).Optimize(w,
			httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(`{"date":"03/01/2024"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
	})

	t.Run("other failures map to 500", func(t *testing.T) {
		opt := &stubOptimizer{err: services.ErrPlanningTimeout}
		w := httptest.NewRecorder()
		(&OptimizeHandler{Optimizer: opt}).Optimize(w,
			httptest.NewRequest(http.MethodPost, "/routes/optimize", strings.NewReader(`{"date":"2024-03-01"}`)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}

func TestOptimize_MethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	(&OptimizeHandler{Optimizer: &stubOptimizer{}}).Optimize(w, httptest.NewRequest(http.MethodGet, "/routes/optimize", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestRoutesList(t *testing.T) {
	repo := &stubRoutes{routes: []domain.OptimizedRoute{{TechnicianID: "T1", Date: "2024-03-01"}}}
	h := &RoutesHandler{Repo: repo}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/routes?date=2024-03-01", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-01", repo.date)

	var res struct {
		Date   string                  `json:"date"`
		Routes []domain.OptimizedRoute `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Routes, 1)
	assert.Equal(t, "T1", res.Routes[0].TechnicianID)
}

func TestRoutesList_Errors(t *testing.T) {
	w := httptest.NewRecorder()
	(&RoutesHandler{Repo: &stubRoutes{}}).List(w, httptest.NewRequest(http.MethodGet, "/routes?date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	(&RoutesHandler{Repo: &stubRoutes{err: errors.New("db down")}}).List(w, httptest.NewRequest(http.MethodGet, "/routes?date=2024-03-01", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
