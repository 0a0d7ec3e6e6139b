package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// Version returns the backend build information.
func (c *Client) Version(ctx context.Context) (*models.VersionInfo, error) {
	var info models.VersionInfo
	if err := c.do(ctx, "/version", request{method: http.MethodGet}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health probes GET /health at the origin (outside the API prefix).
//
// Unlike every other call it does not turn a non-2xx status into an error:
// a degraded backend still answers with a payload, and the probe reports it.
// Only a failed round trip or an undecodable body is an error.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.originURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET /health: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading GET /health: %w", ErrNetwork, err)
	}

	status := &models.HealthStatus{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, &status.Payload); err != nil {
		return nil, fmt.Errorf("%w: health payload: %w", ErrInvalidResponse, err)
	}
	if !status.Healthy() {
		c.logger.Warnw("backend reported unhealthy", "status_code", resp.StatusCode, "status", status.Payload.Status)
	}
	return status, nil
}
