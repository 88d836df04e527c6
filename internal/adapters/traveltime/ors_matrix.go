package traveltime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hvac-dispatch-service/internal/domain"
	"net/http"
)

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

// fetchLegDurations requests an all-pairs duration matrix for the distinct
// locations of path and returns the seconds for each consecutive leg.
func (o *ORSModel) fetchLegDurations(
	ctx context.Context,
	path []domain.Coordinates,
) (map[string]float64, error) {
	index := make(map[domain.Coordinates]int, len(path))
	locations := make([][]float64, 0, len(path))
	for _, c := range path {
		if _, ok := index[c]; ok {
			continue
		}
		index[c] = len(locations)
		locations = append(locations, c.CoordsToList())
	}

	if len(locations) < 2 {
		return map[string]float64{}, nil
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"duration"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Durations) != len(locations) {
		return nil, fmt.Errorf(
			"expected %d matrix rows; got %d",
			len(locations), len(mr.Durations),
		)
	}

	out := make(map[string]float64, len(path)-1)
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		if from == to {
			continue
		}

		row := mr.Durations[index[from]]
		col := index[to]
		if col >= len(row) || row[col] == nil {
			return nil, fmt.Errorf("matrix returned no duration for leg %s", LegKey(from, to))
		}
		out[LegKey(from, to)] = *row[col]
	}

	return out, nil
}
