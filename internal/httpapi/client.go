// Package httpapi is a minimal JSON client for the federation's HTTP
// surfaces (gateway publish, lnurlp lookups).
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 8 * time.Second

// Client wraps an http.Client with JSON encoding and a bounded timeout.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client with the default timeout.
func New() *Client {
	return &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: "fedwallet/1.0",
	}
}

// Get fetches url and decodes the JSON response into out. A nil out
// discards the body.
func (c *Client) Get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

// Post sends body as JSON to url and decodes the JSON response into
// out. A nil out discards the body.
func (c *Client) Post(ctx context.Context, url string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("HTTP error: status %d from %s", resp.StatusCode, req.URL)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL, err)
	}
	return nil
}
