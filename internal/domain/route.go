package domain

// OptimizedRoute is one technician's sequenced route for a planning date.
// Points are in visiting order.
type OptimizedRoute struct {
	TechnicianID     string          `json:"technicianId"`
	Date             string          `json:"date"`
	Points           []RoutablePoint `json:"points"`
	TotalDistance    float64         `json:"totalDistance"`
	TotalDuration    float64         `json:"totalDuration"`
	Efficiency       float64         `json:"efficiency"`
	EstimatedCost    float64         `json:"estimatedCost"`
	Currency         string          `json:"currency"`
	DistrictCoverage []string        `json:"districtCoverage"`
	Violations       []string        `json:"violations,omitempty"`
}

type OptimizationMetrics struct {
	TotalDistance            float64 `json:"totalDistance"`
	AverageJobsPerTechnician float64 `json:"averageJobsPerTechnician"`
	EfficiencyScore          float64 `json:"efficiencyScore"`
}

// OptimizationResult is the output of one planning run.
type OptimizationResult struct {
	OptimizedRoutes []OptimizedRoute    `json:"optimizedRoutes"`
	UnassignedJobs  []RoutablePoint     `json:"unassignedJobs"`
	TotalJobs       int                 `json:"totalJobs"`
	Metrics         OptimizationMetrics `json:"optimizationMetrics"`
}
