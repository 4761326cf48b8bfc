package nws

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/storm-alertd/internal/domain"
)

// maxBodyBytes caps how much of a response is read. Active alert payloads
// for a single point are well under a megabyte.
const maxBodyBytes = 8 << 20

// Client implements pipeline.Fetcher against the NWS API.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an NWS API client with the given request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch issues a GET request and returns the status and body. A non-2xx
// status is not an error here; the caller decides what it means.
func (c *Client) Fetch(ctx context.Context, url, userAgent string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: create request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/geo+json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: request %s: %w", domain.ErrTransport, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	c.logger.Debug("nws response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).String(),
	)
	return resp.StatusCode, body, nil
}
