package openweather

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

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Current fetches the weather at the given coordinates, in Celsius.
func (c *Client) Current(ctx context.Context, coords weather.Coordinates) (weather.Observation, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Observation{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Observation{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw struct {
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Observation{}, fmt.Errorf("decode weather response: %w", err)
	}
	if len(raw.Weather) == 0 {
		return weather.Observation{}, fmt.Errorf("weather response missing condition")
	}

	return weather.Observation{
		Condition: raw.Weather[0].Main,
		TempC:     raw.Main.Temp,
	}, nil
}

var _ weather.Conditions = (*Client)(nil)
