package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/closet-keeper/internal/domain/weather"
)

func TestCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "52.374", q.Get("lat"))
		require.Equal(t, "4.8897", q.Get("lon"))
		require.Equal(t, "test-key", q.Get("appid"))
		require.Equal(t, "metric", q.Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"weather":[{"main":"Rain"}],"main":{"temp":12.4}}`))
	}))
	defer server.Close()

	obs, err := NewClient(server.URL, "test-key").Current(context.Background(), weather.Coordinates{Lat: 52.374, Lon: 4.8897})
	require.NoError(t, err)
	require.Equal(t, "Rain", obs.Condition)
	require.InDelta(t, 12.4, obs.TempC, 1e-9)
}

func TestCurrentProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "bad-key").Current(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=401")
}

func TestCurrentMissingCondition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"weather":[],"main":{"temp":20}}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "test-key").Current(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing condition")
}
