// Package ai provides the inference provider client used by image tools.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	mediaapp "github.com/casecraft/backend/internal/application/media"
	infraconfig "github.com/casecraft/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	defaultPollInterval = time.Second
	defaultPollTimeout  = 2 * time.Minute
)

// Prediction lifecycle statuses reported by the provider.
const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
	statusCanceled  = "canceled"
)

// Ensure ReplicateClient implements InferenceClient
var _ mediaapp.InferenceClient = (*ReplicateClient)(nil)

// ReplicateClient talks to a Replicate-compatible predictions API: it creates
// a prediction for a model version and polls until the prediction settles.
type ReplicateClient struct {
	baseURL      string
	token        string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
	logger       *zap.Logger
}

// ReplicateClientOption is a functional option for configuring ReplicateClient
type ReplicateClientOption func(*ReplicateClient)

// WithHTTPClient sets a custom HTTP client, mainly for tests
func WithHTTPClient(client *http.Client) ReplicateClientOption {
	return func(c *ReplicateClient) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger for ReplicateClient
func WithLogger(logger *zap.Logger) ReplicateClientOption {
	return func(c *ReplicateClient) {
		c.logger = logger
	}
}

// NewReplicateClient creates a client from configuration.
func NewReplicateClient(cfg *infraconfig.AIConfig, opts ...ReplicateClientOption) (*ReplicateClient, error) {
	if cfg == nil {
		return nil, errors.New("ai configuration is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("ai endpoint is required")
	}

	client := &ReplicateClient{
		baseURL:      strings.TrimRight(cfg.Endpoint, "/"),
		token:        cfg.Token,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       zap.NewNop(),
	}
	if client.pollInterval <= 0 {
		client.pollInterval = defaultPollInterval
	}
	if client.pollTimeout <= 0 {
		client.pollTimeout = defaultPollTimeout
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// prediction mirrors the provider's prediction resource.
type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// Run creates a prediction for the model version and blocks until it settles
// or the poll timeout elapses. It returns the first output URL.
func (c *ReplicateClient) Run(ctx context.Context, modelVersion string, input map[string]interface{}) (string, error) {
	if modelVersion == "" {
		return "", errors.New("model version is required")
	}

	pred, err := c.createPrediction(ctx, modelVersion, input)
	if err != nil {
		return "", err
	}

	c.logger.Debug("prediction created",
		zap.String("prediction_id", pred.ID),
		zap.String("status", pred.Status))

	deadline := time.Now().Add(c.pollTimeout)
	for {
		switch pred.Status {
		case statusSucceeded:
			return extractOutputURL(pred.Output)
		case statusFailed, statusCanceled:
			if pred.Error != "" {
				return "", fmt.Errorf("prediction %s: %s", pred.Status, pred.Error)
			}
			return "", fmt.Errorf("prediction %s", pred.Status)
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("prediction %s did not finish within %s", pred.ID, c.pollTimeout)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.pollInterval):
		}

		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return "", err
		}
	}
}

func (c *ReplicateClient) createPrediction(ctx context.Context, modelVersion string, input map[string]interface{}) (*prediction, error) {
	body, err := json.Marshal(map[string]interface{}{
		"version": modelVersion,
		"input":   input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction request: %w", err)
	}

	return c.doRequest(ctx, http.MethodPost, c.baseURL+"/predictions", bytes.NewReader(body))
}

func (c *ReplicateClient) getPrediction(ctx context.Context, id string) (*prediction, error) {
	return c.doRequest(ctx, http.MethodGet, c.baseURL+"/predictions/"+id, nil)
}

func (c *ReplicateClient) doRequest(ctx context.Context, method, url string, body io.Reader) (*prediction, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("inference provider returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var pred prediction
	if err := json.Unmarshal(respBody, &pred); err != nil {
		return nil, fmt.Errorf("failed to parse prediction: %w", err)
	}

	return &pred, nil
}

// extractOutputURL returns the first URL from a prediction output. Providers
// return either a single string or an array of strings.
func extractOutputURL(output json.RawMessage) (string, error) {
	if len(output) == 0 {
		return "", errors.New("prediction succeeded without output")
	}

	var single string
	if err := json.Unmarshal(output, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(output, &many); err == nil && len(many) > 0 {
		return many[0], nil
	}

	return "", fmt.Errorf("unrecognized prediction output: %s", string(output))
}
