package config

import (
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TravelModelLinear = "linear"
	TravelModelORS    = "ors"
)

// Config is the process configuration read from the environment.
// Empty store URLs select the in-memory store.
type Config struct {
	Port        string
	DatabaseURL string
	MongoURI    string
	MongoDB     string
	RedisURL    string
	ORSAPIKey   string
	TravelModel string
	RatesFile   string
	SeedPath    string

	CityCenter           domain.Coordinates
	MaxJobsPerTechnician int
	PlanningTimeout      time.Duration
	PlanningWorkers      int
	ScheduleCheck        string

	DirectoryCacheTTL  time.Duration
	DirectoryCacheSize int
	ORSRatePerSec      float64

	LogLevel  string
	LogFormat string
}

// LoadDotEnv reads .env into the environment when present. It reports
// whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads Config from the environment. Malformed values are errors, not
// silently replaced by defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: Get("DATABASE_URL", ""),
		MongoURI:    Get("MONGO_URI", ""),
		MongoDB:     Get("MONGO_DB", "hvac"),
		RedisURL:    Get("REDIS_URL", ""),
		ORSAPIKey:   Get("ORS_API_KEY", ""),
		TravelModel: strings.ToLower(Get("TRAVEL_MODEL", TravelModelLinear)),
		RatesFile:   Get("RATES_FILE", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/dispatch.json"),

		ScheduleCheck: strings.ToLower(Get("SCHEDULE_CHECK", "off")),
		LogLevel:      Get("LOG_LEVEL", "info"),
		LogFormat:     Get("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.CityCenter.Lat, err = getFloat("CITY_CENTER_LAT", domain.CityCenter.Lat); err != nil {
		return Config{}, err
	}
	if cfg.CityCenter.Lng, err = getFloat("CITY_CENTER_LNG", domain.CityCenter.Lng); err != nil {
		return Config{}, err
	}
	if cfg.MaxJobsPerTechnician, err = getInt("MAX_JOBS_PER_TECHNICIAN", 8); err != nil {
		return Config{}, err
	}
	if cfg.PlanningTimeout, err = getDuration("PLANNING_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PlanningWorkers, err = getInt("PLANNING_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.DirectoryCacheTTL, err = getDuration("DIRECTORY_CACHE_TTL", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.DirectoryCacheSize, err = getInt("DIRECTORY_CACHE_SIZE", 64); err != nil {
		return Config{}, err
	}
	if cfg.ORSRatePerSec, err = getFloat("ORS_RATE_PER_SEC", 0.5); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.TravelModel {
	case TravelModelLinear:
	case TravelModelORS:
		if c.ORSAPIKey == "" {
			return fmt.Errorf("config: ORS_API_KEY is required when TRAVEL_MODEL=%s", TravelModelORS)
		}
	default:
		return fmt.Errorf("config: TRAVEL_MODEL must be %q or %q, got %q", TravelModelLinear, TravelModelORS, c.TravelModel)
	}

	if c.MaxJobsPerTechnician < 1 {
		return fmt.Errorf("config: MAX_JOBS_PER_TECHNICIAN must be at least 1, got %d", c.MaxJobsPerTechnician)
	}
	if c.PlanningWorkers < 1 {
		return fmt.Errorf("config: PLANNING_WORKERS must be at least 1, got %d", c.PlanningWorkers)
	}
	if c.PlanningTimeout <= 0 {
		return fmt.Errorf("config: PLANNING_TIMEOUT must be positive, got %s", c.PlanningTimeout)
	}
	if c.MongoURI != "" && c.MongoDB == "" {
		return fmt.Errorf("config: MONGO_DB is required with MONGO_URI")
	}

	return nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}
