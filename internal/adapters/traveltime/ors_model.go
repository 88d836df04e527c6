package traveltime

import (
	"context"
	"errors"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"hvac-dispatch-service/internal/platform/obs"
	"hvac-dispatch-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ORSModel estimates travel time from OpenRouteService driving durations.
//
// Leg durations are looked up in an optional persistent cache first; misses
// are resolved with a single matrix call per route. The model is safe for
// concurrent use.
type ORSModel struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	profile     string
	limiter     *rate.Limiter
	cache       ports.LegDurationCache
	maxAttempts int
	backoff     time.Duration
}

var _ ports.TravelTimeModel = (*ORSModel)(nil)

type ORSOption func(*ORSModel)

func WithBaseURL(u string) ORSOption {
	return func(o *ORSModel) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(o *ORSModel) { o.session = c }
}

// WithRateLimit caps outgoing requests per second. perSecond <= 0 disables the limit.
func WithRateLimit(perSecond float64) ORSOption {
	return func(o *ORSModel) {
		if perSecond <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func WithLegCache(c ports.LegDurationCache) ORSOption {
	return func(o *ORSModel) { o.cache = c }
}

func WithRetry(maxAttempts int, backoff time.Duration) ORSOption {
	return func(o *ORSModel) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.backoff = backoff
	}
}

func NewORSModel(apiKey string, opts ...ORSOption) (*ORSModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	model := &ORSModel{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		profile:     "driving-car",
		limiter:     rate.NewLimiter(rate.Limit(0.5), 1),
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(model)
	}

	return model, nil
}

// LegKey identifies a directed leg between two coordinates at ~1 m precision.
func LegKey(from, to domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}

// TravelMinutes sums the driving durations of every leg of path.
// distanceKm is unused; durations come from the road network.
func (o *ORSModel) TravelMinutes(
	ctx context.Context,
	path []domain.Coordinates,
	_ float64,
) (_ float64, err error) {
	defer obs.Time(ctx, "ors.TravelMinutes")(&err)

	if len(path) < 2 {
		return 0, nil
	}

	keys := make([]string, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		if path[i-1] == path[i] {
			continue
		}
		keys = append(keys, LegKey(path[i-1], path[i]))
	}

	durations := make(map[string]float64, len(keys))
	if o.cache != nil && len(keys) > 0 {
		hits, err := o.cache.GetMany(ctx, keys)
		if err != nil {
			obs.FromContext(ctx).WithError(err).Warn("leg cache read failed")
		}
		for k, v := range hits {
			durations[k] = v
		}
	}

	missing := false
	for _, k := range keys {
		if _, ok := durations[k]; !ok {
			missing = true
			break
		}
	}

	if missing {
		fetched, err := o.fetchLegDurations(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("ors travel minutes: %w", err)
		}

		if o.cache != nil && len(fetched) > 0 {
			if err := o.cache.PutMany(ctx, fetched); err != nil {
				obs.FromContext(ctx).WithError(err).Warn("leg cache write failed")
			}
		}
		for k, v := range fetched {
			durations[k] = v
		}
	}

	seconds := 0.0
	for _, k := range keys {
		d, ok := durations[k]
		if !ok {
			return 0, fmt.Errorf("ors travel minutes: no duration for leg %s", k)
		}
		seconds += d
	}

	return seconds / 60, nil
}
