// Package vcross fetches race-day hourly weather observations from the
// Visual Crossing timeline API.
package vcross

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/marathonwx/raceday/internal/types"
)

// DefaultEndpoint is the Visual Crossing timeline API base URL.
const DefaultEndpoint = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline/"

// Client is a Visual Crossing timeline API client.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// New creates a client. An empty endpoint selects DefaultEndpoint.
func New(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// timelineResponse is the subset of the timeline payload we consume:
// per-day hourly observations in US units (Fahrenheit).
type timelineResponse struct {
	Days []struct {
		Datetime string            `json:"datetime"`
		Hours    []hourObservation `json:"hours"`
	} `json:"days"`
}

type hourObservation struct {
	Datetime   string  `json:"datetime"` // "HH:MM:SS"
	Temp       float64 `json:"temp"`
	Dew        float64 `json:"dew"`
	WindSpeed  float64 `json:"windspeed"`
	Conditions string  `json:"conditions"`
}

// DayHours retrieves the hourly observations for one location and date
// (YYYY-MM-DD). Observations come back in US units, matching the
// Fahrenheit-always storage convention of the dataset.
func (c *Client) DayHours(ctx context.Context, location, date string) ([]types.WeatherSample, error) {
	query := url.Values{
		"unitGroup":   {"us"},
		"include":     {"hours"},
		"key":         {c.apiKey},
		"contentType": {"json"},
	}
	reqURL := fmt.Sprintf("%s%s/%s?%s", c.endpoint, url.PathEscape(location), date, query.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach weather API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Days) == 0 {
		return nil, fmt.Errorf("no data for %s on %s", location, date)
	}

	day := result.Days[0]
	samples := make([]types.WeatherSample, 0, len(day.Hours))
	for _, h := range day.Hours {
		samples = append(samples, types.WeatherSample{
			Time:       h.Datetime,
			TempF:      h.Temp,
			DewPointF:  h.Dew,
			WindSpeed:  h.WindSpeed,
			Conditions: h.Conditions,
		})
	}
	return samples, nil
}
