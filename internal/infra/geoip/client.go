package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/closet-keeper/internal/domain/weather"
)

const defaultBaseURL = "https://ipinfo.io"

// Client resolves network origins to coordinates via ipinfo.io.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Locate fetches the geolocation for origin. An empty origin asks the
// provider about the service's own egress address.
func (c *Client) Locate(ctx context.Context, origin string) (weather.Coordinates, error) {
	endpoint := c.baseURL + "/json"
	if trimmed := strings.TrimSpace(origin); trimmed != "" {
		endpoint = fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(trimmed))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("build geolocation request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Coordinates{}, fmt.Errorf("geolocation request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw struct {
		Loc string `json:"loc"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Coordinates{}, fmt.Errorf("decode geolocation response: %w", err)
	}

	return parseLoc(raw.Loc)
}

// parseLoc splits the provider's "latitude,longitude" field.
func parseLoc(loc string) (weather.Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(loc), ",")
	if len(parts) != 2 {
		return weather.Coordinates{}, fmt.Errorf("malformed loc field: %q", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}
	return weather.Coordinates{Lat: lat, Lon: lon}, nil
}

var _ weather.Geolocator = (*Client)(nil)
