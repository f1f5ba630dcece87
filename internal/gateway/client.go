// Package gateway is the only code that talks to the remote fitness API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 << 10

// Client issues single-attempt requests against the remote API. It holds no
// per-user state; the caller's token is passed on every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the configured remote base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one remote operation.
type call struct {
	op     string // short name used in errors and logs
	method string
	path   string
	token  string
	body   any
	expect []int // acceptable success codes
	out    any   // decoded from the response body when non-nil
}

func (c *Client) do(ctx context.Context, rc call) error {
	var body io.Reader
	if rc.body != nil {
		payload, err := json.Marshal(rc.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", rc.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, c.baseURL+rc.path, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", rc.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.token != "" {
		req.Header.Set("Authorization", "Bearer "+rc.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", rc.op, err)
	}
	defer resp.Body.Close()

	if !slices.Contains(rc.expect, resp.StatusCode) {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: rc.op, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if rc.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(rc.out); err != nil {
			return fmt.Errorf("%s: decode response: %w", rc.op, err)
		}
	}
	return nil
}

var (
	expectOK      = []int{http.StatusOK}
	expectCreated = []int{http.StatusOK, http.StatusCreated}
)
