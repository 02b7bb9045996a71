// Package clients holds the HTTP collaborators the game consumes: the
// question source, the answer judge and the identity service. Every call
// here converts transport failures into domain errors; nothing in this
// package may take the process down.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"squarebuzz/internal/domain"
)

// TokenProvider supplies the bearer credential attached to every request.
// An empty token means the request goes out unauthenticated.
type TokenProvider func() string

// StatusError is a non-2xx collaborator response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

// BaseClient is the shared HTTP plumbing: timeout, bearer header, JSON
// encoding and status checking.
type BaseClient struct {
	baseURL string
	client  *http.Client
	token   TokenProvider
}

func NewBaseClient(baseURL string, token TokenProvider) *BaseClient {
	if token == nil {
		token = func() string { return "" }
	}
	return &BaseClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
}

// doJSON issues a request and decodes the JSON response into out. A non-2xx
// status becomes a *StatusError; an undecodable success body becomes
// ErrMalformedUpstreamResponse for the caller to normalize.
func (c *BaseClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedUpstreamResponse, err)
	}
	return nil
}
