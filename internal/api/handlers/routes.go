package handlers

import (
	"hvac-dispatch-service/internal/api/dto"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"
	"net/http"
	"strings"
	"time"
)

// RoutesHandler exposes read-only access to persisted routes.
type RoutesHandler struct {
	Repo ports.RouteRepository
}

func (h *RoutesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date query parameter must be YYYY-MM-DD")
		return
	}

	routes, err := h.Repo.ListRoutes(r.Context(), date)
	if err != nil {
		obs.FromContext(r.Context()).WithError(err).Error("list routes failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListRoutesResponse{Date: date, Routes: routes})
}
