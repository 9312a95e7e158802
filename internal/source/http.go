package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBody caps a fetched table.
const maxBody = 32 << 20

// ErrTableTooLarge is returned when a fetched table exceeds the size cap.
var ErrTableTooLarge = errors.New("table too large")

// HTTP fetches tables from URLs.
type HTTP struct {
	client  *http.Client
	maxBody int64
}

// NewHTTP creates an HTTP source with a per-request timeout.
func NewHTTP(timeout time.Duration) *HTTP {
	return &HTTP{client: &http.Client{Timeout: timeout}, maxBody: maxBody}
}

// Name identifies the driver.
func (h *HTTP) Name() string { return "http" }

// Fetch downloads the table at url. Any non-2xx status is an error.
func (h *HTTP) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := h.do(ctx, http.MethodGet, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// one byte past the cap tells a full table from a cut one
	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}
	if int64(len(body)) > h.maxBody {
		return "", fmt.Errorf("%s: %w (limit %d bytes)", url, ErrTableTooLarge, h.maxBody)
	}
	return string(body), nil
}

// Stat issues a HEAD request.
func (h *HTTP) Stat(ctx context.Context, url string) error {
	resp, err := h.do(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (h *HTTP) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, url, resp.StatusCode)
	}
	return resp, nil
}
