// Package league is the client for the remote league API, the final arbiter
// for match lifecycle and incident records. The console never transitions or
// mutates anything authoritatively; it calls here and mirrors the response.
package league

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// RemoteError is a rejection from the league API. Message carries the
// server's message when the response body had one.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("league api rejected request (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("league api rejected request (%d)", e.StatusCode)
}

// Client talks to the league API. A zero token means unauthenticated calls;
// use WithToken for the per-session authenticated view.
type Client struct {
	baseURL string
	client  *http.Client
	token   string
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithToken returns a copy of the client that sends the scorer's bearer
// token on every request.
func (c *Client) WithToken(token string) *Client {
	copied := *c
	copied.token = token
	return &copied
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("league api request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    messageFromBody(responseBody),
		}
	}
	return responseBody, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	body, err := c.makeRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	body, err := c.makeRequest(ctx, http.MethodPost, endpoint, in)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) put(ctx context.Context, endpoint string, in, out any) error {
	body, err := c.makeRequest(ctx, http.MethodPut, endpoint, in)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	_, err := c.makeRequest(ctx, http.MethodDelete, endpoint, nil)
	return err
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode league api response: %w", err)
	}
	return nil
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
