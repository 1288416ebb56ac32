package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocateOwnAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.9","loc":"52.3740,4.8897"}`))
	}))
	defer server.Close()

	coords, err := NewClient(server.URL).Locate(context.Background(), "")
	require.NoError(t, err)
	require.InDelta(t, 52.3740, coords.Lat, 1e-9)
	require.InDelta(t, 4.8897, coords.Lon, 1e-9)
}

func TestLocateExplicitOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/203.0.113.9/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"loc":"-33.8688,151.2093"}`))
	}))
	defer server.Close()

	coords, err := NewClient(server.URL).Locate(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	require.InDelta(t, -33.8688, coords.Lat, 1e-9)
	require.InDelta(t, 151.2093, coords.Lon, 1e-9)
}

func TestLocateProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Locate(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestParseLoc(t *testing.T) {
	coords, err := parseLoc(" 1.5 , -2.25 ")
	require.NoError(t, err)
	require.Equal(t, 1.5, coords.Lat)
	require.Equal(t, -2.25, coords.Lon)

	for _, loc := range []string{"", "1.5", "1.5,2.5,3.5", "north,south"} {
		_, err := parseLoc(loc)
		require.Error(t, err, "loc %q", loc)
	}
}
