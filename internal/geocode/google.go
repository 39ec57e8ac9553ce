package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/ref-stats/internal/logger"
	"github.com/pfrederiksen/ref-stats/internal/referee"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

	// DefaultTimeout bounds each geocoding request.
	DefaultTimeout = 20 * time.Second

	// maxRetries caps transport-level retries. API-level failures (bad
	// status, no results) are permanent and never retried.
	maxRetries = 2
)

// GoogleClient implements Resolver using the Google Geocoding API.
type GoogleClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewGoogleClient creates a geocoding client with a bounded per-request
// timeout.
func NewGoogleClient(apiKey string, timeout time.Duration, log *logger.Logger) *GoogleClient {
	return &GoogleClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		log:     log,
	}
}

// Resolve converts a location string to coordinates. Network errors and 5xx
// responses are retried with capped exponential backoff; upstream rejections
// surface as *FailureError.
func (c *GoogleClient) Resolve(ctx context.Context, location string) (referee.Coordinates, error) {
	params := url.Values{
		"address": {location},
		"key":     {c.apiKey},
	}
	requestURL := c.baseURL + "?" + params.Encode()

	var coords referee.Coordinates
	operation := func() error {
		var err error
		coords, err = c.lookup(ctx, requestURL, location)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return referee.Coordinates{}, err
	}

	c.log.Debug("geocoded location", logger.Fields{
		"location": location,
		"lat":      coords.Lat,
		"lon":      coords.Lon,
	})
	return coords, nil
}

func (c *GoogleClient) lookup(ctx context.Context, requestURL, location string) (referee.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return referee.Coordinates{}, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return referee.Coordinates{}, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, body)
		if resp.StatusCode >= http.StatusInternalServerError {
			return referee.Coordinates{}, err
		}
		return referee.Coordinates{}, backoff.Permanent(err)
	}

	var payload googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return referee.Coordinates{}, backoff.Permanent(fmt.Errorf("decoding response: %w", err))
	}

	if payload.Status != "OK" {
		return referee.Coordinates{}, backoff.Permanent(&FailureError{
			Location: location,
			Status:   payload.Status,
			Message:  payload.ErrorMessage,
		})
	}
	if len(payload.Results) == 0 {
		return referee.Coordinates{}, backoff.Permanent(&FailureError{
			Location: location,
			Status:   payload.Status,
			Message:  "no results",
		})
	}

	point := payload.Results[0].Geometry.Location
	if point.Lat == nil || point.Lng == nil {
		return referee.Coordinates{}, backoff.Permanent(&FailureError{
			Location: location,
			Status:   payload.Status,
			Message:  "result has no numeric coordinates",
		})
	}

	return referee.Coordinates{Lat: *point.Lat, Lon: *point.Lng}, nil
}

// Google Geocoding API response types.

type googleResponse struct {
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message"`
	Results      []googleResult `json:"results"`
}

type googleResult struct {
	Geometry struct {
		Location struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
