// Package xmlstats fetches raw dataset payloads from the xmlstats-style stats
// API (https://erikberg.com/api conventions).
//
// Requests carry a Bearer token and ask for gzip transfer; gzip bodies are
// decompressed before they are returned. Rate limiting is handled via a
// token bucket limiter.
package xmlstats

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrUnexpectedStatus is returned for any status other than 200 or 304.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrEmptyBody is returned for a 200 response that carries no data.
	ErrEmptyBody = errors.New("empty response body")
)

// Options configures a Client.
type Options struct {
	BaseURL           string // scheme, host and path prefix, e.g. https://erikberg.com/
	Token             string
	UserAgent         string
	RequestsPerMinute int // <= 0 disables limiting
	Timeout           time.Duration
}

// Client is the HTTP client for the stats API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stats API client with rate limiting.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		userAgent:  opts.UserAgent,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// Fetch performs a rate-limited GET of path under the base URL and returns
// the decoded body. A 304 returns a nil body and no error.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Setting Accept-Encoding ourselves turns off the transport's transparent
	// decompression, so gzip is handled below.
	req.Header.Set("Accept-Encoding", "gzip")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("Stats API response",
		"path", path, "status", resp.StatusCode, "bytes", len(body),
		"encoding", resp.Header.Get("Content-Encoding"), "duration", time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrUnexpectedStatus, path, resp.StatusCode, truncate(body, 200))
	}

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		body, err = gunzip(body)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBody, path)
	}
	return body, nil
}

func gunzip(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
