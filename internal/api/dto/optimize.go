package dto

import "hvac-dispatch-service/internal/domain"

type OptimizeRequest struct {
	Date                 string   `json:"date"`
	TechnicianIDs        []string `json:"technicianIds"`
	MaxJobsPerTechnician *int     `json:"maxJobsPerTechnician"`
	PrioritizeUrgent     *bool    `json:"prioritizeUrgent"`
}

type OptimizeResponse struct {
	OptimizedRoutes     []domain.OptimizedRoute    `json:"optimizedRoutes"`
	UnassignedJobs      []domain.RoutablePoint     `json:"unassignedJobs"`
	TotalJobs           int                        `json:"totalJobs"`
	OptimizationMetrics domain.OptimizationMetrics `json:"optimizationMetrics"`
}
