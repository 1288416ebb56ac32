package imagecheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpeg-bytes"))
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	checker := NewChecker(2 * time.Second)
	ctx := context.Background()

	ok, err := checker.IsImageURL(ctx, server.URL+"/photo.jpg")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = checker.IsImageURL(ctx, server.URL+"/page.html")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = checker.IsImageURL(ctx, server.URL+"/missing.png")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIsImageURLMalformed(t *testing.T) {
	checker := NewChecker(time.Second)
	for _, raw := range []string{"", "not a url", "relative/path", "http://"} {
		ok, err := checker.IsImageURL(context.Background(), raw)
		require.NoError(t, err, "url %q", raw)
		require.False(t, ok, "url %q", raw)
	}
}

func TestIsImageURLNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	ok, err := NewChecker(time.Second).IsImageURL(context.Background(), server.URL+"/photo.jpg")
	require.Error(t, err)
	require.False(t, ok)
}
