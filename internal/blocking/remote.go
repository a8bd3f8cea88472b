package blocking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"timeout/internal/core"
)

// RemoteClient talks to the blocklist sync backend over HTTP.
type RemoteClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewRemoteClient creates a new sync backend client.
func NewRemoteClient(baseURL, apiKey string, logger *slog.Logger) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// remoteError represents a backend error response
type remoteError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FetchSnapshot retrieves the server's copy of a user's blocklist.
func (r *RemoteClient) FetchSnapshot(ctx context.Context, userID string) (*core.BlockingSnapshot, error) {
	var snapshot core.BlockingSnapshot
	if err := r.doRequest(ctx, "GET", "/v1/blocklists/"+userID, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// PushSnapshot uploads a snapshot and returns the server's
// authoritative version.
func (r *RemoteClient) PushSnapshot(ctx context.Context, userID string, snapshot *core.BlockingSnapshot) (*core.BlockingSnapshot, error) {
	var authoritative core.BlockingSnapshot
	if err := r.doRequest(ctx, "PUT", "/v1/blocklists/"+userID, snapshot, &authoritative); err != nil {
		return nil, err
	}
	return &authoritative, nil
}

// doRequest performs an HTTP request to the sync backend
func (r *RemoteClient) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := r.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Timeout-Key", r.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	r.logger.Debug("sync request",
		"method", method,
		"url", url,
	)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr remoteError
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return fmt.Errorf("sync error %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("sync error %d: %s (%s)", resp.StatusCode, apiErr.Error, apiErr.Code)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
