package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is used when NewClient is given a non-positive timeout.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps remote lyric documents.
const maxBodySize = 4 << 20

// Client wraps HTTP operations used to fetch remote lyrics.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - A size cap on response bodies
//
// Example usage:
//
//	client := NewClient(10 * time.Second)
//
//	// Fetch an LRC document
//	text, err := client.GetString(ctx, "https://example.com/song.lrc")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - the given timeout (DefaultTimeout when zero or negative)
//   - "AccordLegacy" User-Agent header
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "AccordLegacy",
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - The body exceeds 4 MiB
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://example.com/song.lrc")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, maxBodySize)
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content. The
// body is returned as is; callers decode byte order marks themselves.
//
// Example:
//
//	text, err := client.GetString(ctx, "https://example.com/song.lrc")
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
