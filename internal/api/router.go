package api

import (
	"hvac-dispatch-service/internal/api/handlers"
	"hvac-dispatch-service/internal/platform/metrics"
	"hvac-dispatch-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(optimizer handlers.RouteOptimizer, routes ports.RouteRepository) http.Handler {
	mux := http.NewServeMux()

	optimizeHandler := &handlers.OptimizeHandler{Optimizer: optimizer}
	routesHandler := &handlers.RoutesHandler{Repo: routes}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/routes", routesHandler.List)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
