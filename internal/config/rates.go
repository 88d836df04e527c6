package config

import (
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRates reads business cost rates from a YAML file. Keys missing from
// the file keep their defaults; an empty path returns the defaults.
//
//	per_km: 0.6
//	per_hour: 80
//	currency: PLN
func LoadRates(path string) (domain.CostRates, error) {
	rates := domain.DefaultCostRates
	if strings.TrimSpace(path) == "" {
		return rates, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return rates, fmt.Errorf("load rates: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &rates); err != nil {
		return domain.DefaultCostRates, fmt.Errorf("load rates: parse yaml: %w", err)
	}

	if rates.PerKm < 0 || rates.PerHour < 0 {
		return domain.DefaultCostRates, fmt.Errorf("load rates: rates must not be negative")
	}
	if strings.TrimSpace(rates.Currency) == "" {
		rates.Currency = domain.DefaultCostRates.Currency
	}

	return rates, nil
}
