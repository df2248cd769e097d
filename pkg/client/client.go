package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

// Client is an HTTP client for the work-update backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new backend API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewWithHTTPClient creates a new backend API client with a custom HTTP client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// CreateUpdate persists an assembled work update and returns the stored
// record, including the server-assigned id when the backend provides one.
func (c *Client) CreateUpdate(ctx context.Context, rec update.Record) (*update.Record, error) {
	// Marshal request
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}

	// Create HTTP request
	url := fmt.Sprintf("%s/v1/updates", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Execute request
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Check status code
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	// Parse response
	var created update.Record
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &created, nil
}
