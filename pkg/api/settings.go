package api

import (
	"context"
	"net/http"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// SettingsAPI groups the user settings endpoints.
// It satisfies settings.Backend.
type SettingsAPI struct {
	c *Client
}

// Get returns the server-persisted settings.
func (s *SettingsAPI) Get(ctx context.Context) (*models.Settings, error) {
	return s.call(ctx, "/settings", request{method: http.MethodGet})
}

// Update sends a partial (or full) update via PUT /settings and returns the stored record.
func (s *SettingsAPI) Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	r, err := jsonBody(http.MethodPut, update)
	if err != nil {
		return nil, err
	}
	return s.call(ctx, "/settings", r)
}

// Reset restores the backend defaults. The request has no body.
func (s *SettingsAPI) Reset(ctx context.Context) (*models.Settings, error) {
	return s.call(ctx, "/settings/reset", request{method: http.MethodPost})
}

// Export returns the settings as the backend's export document.
func (s *SettingsAPI) Export(ctx context.Context) (*models.Settings, error) {
	return s.call(ctx, "/settings/export", request{method: http.MethodGet})
}

// Import replaces the settings wholesale with the given record.
func (s *SettingsAPI) Import(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	r, err := jsonBody(http.MethodPost, settings)
	if err != nil {
		return nil, err
	}
	return s.call(ctx, "/settings/import", r)
}

func (s *SettingsAPI) call(ctx context.Context, path string, r request) (*models.Settings, error) {
	var out models.Settings
	if err := s.c.do(ctx, path, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
