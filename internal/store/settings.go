package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// ValidationError describes a settings value the backend refuses to store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// --- Settings Operations ---

// GetSettings returns the stored settings.
func (db *DB) GetSettings(ctx context.Context) (models.Settings, error) {
	if err := ctx.Err(); err != nil {
		return models.Settings{}, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.settings.Clone(), nil
}

// UpdateSettings applies a partial update after validating the merged result.
// Nothing is stored when validation fails.
func (db *DB) UpdateSettings(ctx context.Context, u models.SettingsUpdate) (models.Settings, error) {
	if err := ctx.Err(); err != nil {
		return models.Settings{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	next := u.Apply(db.settings)
	if err := ValidateSettings(next); err != nil {
		return models.Settings{}, err
	}
	db.settings = next
	return next.Clone(), nil
}

// ReplaceSettings stores a complete record, as used by import.
func (db *DB) ReplaceSettings(ctx context.Context, s models.Settings) (models.Settings, error) {
	if err := ctx.Err(); err != nil {
		return models.Settings{}, err
	}
	if err := ValidateSettings(s); err != nil {
		return models.Settings{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.settings = s.Clone()
	return s.Clone(), nil
}

// ResetSettings restores the defaults.
func (db *DB) ResetSettings(ctx context.Context) (models.Settings, error) {
	if err := ctx.Err(); err != nil {
		return models.Settings{}, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.settings = models.DefaultSettings()
	return db.settings.Clone(), nil
}

// ValidateSettings checks ranges and enumerations. It returns a *ValidationError
// for the first offending field.
func ValidateSettings(s models.Settings) error {
	invalid := func(field, format string, args ...any) error {
		return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(s.DefaultTargetLanguage) == "" {
		return invalid("default_target_language", "must not be empty")
	}
	if u, err := url.Parse(s.LibreTranslateURL); err != nil || u.Scheme == "" || u.Host == "" {
		return invalid("libretranslate_url", "must be an absolute URL")
	}
	switch s.DefaultViewMode {
	case models.ViewSideBySide, models.ViewParagraph:
	default:
		return invalid("default_view_mode", "must be %q or %q", models.ViewSideBySide, models.ViewParagraph)
	}
	switch s.FontSize {
	case models.FontSmall, models.FontMedium, models.FontLarge:
	default:
		return invalid("font_size", "must be small, medium or large")
	}
	switch s.Theme {
	case models.ThemeWhite, models.ThemeG10, models.ThemeG80, models.ThemeG90, models.ThemeG100:
	default:
		return invalid("theme", "must be one of white, g10, g80, g90, g100")
	}
	if !strings.HasPrefix(s.HighlightColor, "#") {
		return invalid("highlight_color", "must be a hex color")
	}
	if s.AutoScrollSpeed < 0.5 || s.AutoScrollSpeed > 3.0 {
		return invalid("auto_scroll_speed", "must be between 0.5 and 3.0")
	}
	if s.DefaultPlaybackSpeed < 0.25 || s.DefaultPlaybackSpeed > 2.0 {
		return invalid("default_playback_speed", "must be between 0.25 and 2.0")
	}
	if s.HistoryRetentionDays != nil && *s.HistoryRetentionDays < 1 {
		return invalid("history_retention_days", "must be at least 1")
	}
	if s.APITimeout < 10 || s.APITimeout > 120 {
		return invalid("api_timeout", "must be between 10 and 120")
	}
	if s.CacheDurationMinutes < 0 {
		return invalid("cache_duration_minutes", "must not be negative")
	}
	return nil
}
