package domain

// CostRates are the business parameters used to price a route.
type CostRates struct {
	PerKm    float64 `json:"per_km" yaml:"per_km"`
	PerHour  float64 `json:"per_hour" yaml:"per_hour"`
	Currency string  `json:"currency" yaml:"currency"`
}

var DefaultCostRates = CostRates{PerKm: 0.6, PerHour: 80, Currency: "PLN"}
