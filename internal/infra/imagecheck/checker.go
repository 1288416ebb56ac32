package imagecheck

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/closet-keeper/internal/domain/closet"
)

// Checker probes whether a URL is syntactically valid, reachable and
// served with an image content type.
type Checker struct {
	httpClient *http.Client
}

// NewChecker builds a probe with the given per-request timeout.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsImageURL reports (false, nil) for URLs that are malformed or not
// an image, and a non-nil error only when the probe itself could not
// run.
func (c *Checker) IsImageURL(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return false, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer func() {
		// Drain a little so the connection can be reused, then close.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	return strings.Contains(contentType, "image"), nil
}

var _ closet.ImageChecker = (*Checker)(nil)
