package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"hvac-dispatch-service/internal/api/dto"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/services"
	"io"
	"net/http"
	"strings"
)

// RouteOptimizer is the planning operation behind POST /routes/optimize.
type RouteOptimizer interface {
	OptimizeRoutes(ctx context.Context, req services.OptimizeRequest) (*domain.OptimizationResult, error)
}

type OptimizeHandler struct {
	Optimizer RouteOptimizer
}

// Optimize plans the day's routes for the requested technicians.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Date) == "" {
		writeError(w, r, http.StatusBadRequest, "date is required")
		return
	}

	result, err := h.Optimizer.OptimizeRoutes(r.Context(), services.OptimizeRequest{
		Date:                 req.Date,
		TechnicianIDs:        req.TechnicianIDs,
		MaxJobsPerTechnician: req.MaxJobsPerTechnician,
		PrioritizeUrgent:     req.PrioritizeUrgent,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		obs.FromContext(r.Context()).WithError(err).Error("optimize routes failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		OptimizedRoutes:     result.OptimizedRoutes,
		UnassignedJobs:      result.UnassignedJobs,
		TotalJobs:           result.TotalJobs,
		OptimizationMetrics: result.Metrics,
	})
}
