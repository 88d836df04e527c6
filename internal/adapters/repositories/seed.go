package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Seed is the JSON fixture format shared by the document store seeder and
// the in-memory store.
type Seed struct {
	Jobs        []JobDocument        `json:"jobs"`
	Technicians []TechnicianDocument `json:"technicians"`
}

// Read and validate a seed file.
func LoadSeed(jsonPath string) (Seed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return Seed{}, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return Seed{}, fmt.Errorf("load seed: parse json: %w", err)
	}

	if err := seed.validate(); err != nil {
		return Seed{}, fmt.Errorf("load seed: %w", err)
	}

	return seed, nil
}

func (s Seed) validate() error {
	for i, j := range s.Jobs {
		if strings.TrimSpace(j.ID) == "" {
			return fmt.Errorf("job at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(j.ScheduledDate) == "" {
			return fmt.Errorf("job %q: scheduled_date cannot be empty", j.ID)
		}
	}
	for i, t := range s.Technicians {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("technician at index %d: id cannot be empty", i+1)
		}
	}
	return nil
}
