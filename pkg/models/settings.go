package models

// ViewMode selects how transcripts are laid out.
type ViewMode string

const (
	ViewSideBySide ViewMode = "side-by-side"
	ViewParagraph  ViewMode = "paragraph"
)

// Theme is one of the Carbon themes.
type Theme string

const (
	ThemeWhite Theme = "white"
	ThemeG10   Theme = "g10"
	ThemeG80   Theme = "g80"
	ThemeG90   Theme = "g90"
	ThemeG100  Theme = "g100"
)

// Font sizes accepted by the backend.
const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

// Settings is the flat user configuration record served by GET /settings.
// HistoryRetentionDays is nullable: nil means history is kept forever.
type Settings struct {
	DefaultTargetLanguage string   `json:"default_target_language"`
	AutoTranslate         bool     `json:"auto_translate"`
	LibreTranslateURL     string   `json:"libretranslate_url"`
	DefaultViewMode       ViewMode `json:"default_view_mode"`
	FontSize              string   `json:"font_size"`
	Theme                 Theme    `json:"theme"`
	HighlightColor        string   `json:"highlight_color"`
	AutoParagraphMobile   bool     `json:"auto_paragraph_mobile"`
	AutoScrollSpeed       float64  `json:"auto_scroll_speed"`
	HighlightActive       bool     `json:"highlight_active"`
	DefaultPlaybackSpeed  float64  `json:"default_playback_speed"`
	HistoryRetentionDays  *int     `json:"history_retention_days"`
	APITimeout            int      `json:"api_timeout"` // Seconds
	CacheDurationMinutes  int      `json:"cache_duration_minutes"`
	DebugMode             bool     `json:"debug_mode"`
}

// DefaultSettings returns the record the UI runs with before the backend answers.
func DefaultSettings() Settings {
	return Settings{
		DefaultTargetLanguage: "en",
		AutoTranslate:         true,
		LibreTranslateURL:     "http://libretranslate:5000",
		DefaultViewMode:       ViewSideBySide,
		FontSize:              FontMedium,
		Theme:                 ThemeWhite,
		HighlightColor:        "#0f62fe",
		AutoParagraphMobile:   true,
		AutoScrollSpeed:       1.0,
		HighlightActive:       true,
		DefaultPlaybackSpeed:  1.0,
		HistoryRetentionDays:  nil,
		APITimeout:            30,
		CacheDurationMinutes:  60,
		DebugMode:             false,
	}
}

// Clone returns a deep copy (the retention pointer is not shared).
func (s Settings) Clone() Settings {
	if s.HistoryRetentionDays != nil {
		days := *s.HistoryRetentionDays
		s.HistoryRetentionDays = &days
	}
	return s
}

// SettingsUpdate is the JSON body for PUT /settings. Every field is optional;
// nil fields are left out of the body and keep their server-side value.
//
// HistoryRetentionDays cannot express "set back to unlimited" through a partial
// update; use Reset or Import for that.
type SettingsUpdate struct {
	DefaultTargetLanguage *string   `json:"default_target_language,omitempty"`
	AutoTranslate         *bool     `json:"auto_translate,omitempty"`
	LibreTranslateURL     *string   `json:"libretranslate_url,omitempty"`
	DefaultViewMode       *ViewMode `json:"default_view_mode,omitempty"`
	FontSize              *string   `json:"font_size,omitempty"`
	Theme                 *Theme    `json:"theme,omitempty"`
	HighlightColor        *string   `json:"highlight_color,omitempty"`
	AutoParagraphMobile   *bool     `json:"auto_paragraph_mobile,omitempty"`
	AutoScrollSpeed       *float64  `json:"auto_scroll_speed,omitempty"`
	HighlightActive       *bool     `json:"highlight_active,omitempty"`
	DefaultPlaybackSpeed  *float64  `json:"default_playback_speed,omitempty"`
	HistoryRetentionDays  *int      `json:"history_retention_days,omitempty"`
	APITimeout            *int      `json:"api_timeout,omitempty"`
	CacheDurationMinutes  *int      `json:"cache_duration_minutes,omitempty"`
	DebugMode             *bool     `json:"debug_mode,omitempty"`
}

// FullUpdate turns a complete record into an update that sets every field.
func FullUpdate(s Settings) SettingsUpdate {
	s = s.Clone()
	return SettingsUpdate{
		DefaultTargetLanguage: &s.DefaultTargetLanguage,
		AutoTranslate:         &s.AutoTranslate,
		LibreTranslateURL:     &s.LibreTranslateURL,
		DefaultViewMode:       &s.DefaultViewMode,
		FontSize:              &s.FontSize,
		Theme:                 &s.Theme,
		HighlightColor:        &s.HighlightColor,
		AutoParagraphMobile:   &s.AutoParagraphMobile,
		AutoScrollSpeed:       &s.AutoScrollSpeed,
		HighlightActive:       &s.HighlightActive,
		DefaultPlaybackSpeed:  &s.DefaultPlaybackSpeed,
		HistoryRetentionDays:  s.HistoryRetentionDays,
		APITimeout:            &s.APITimeout,
		CacheDurationMinutes:  &s.CacheDurationMinutes,
		DebugMode:             &s.DebugMode,
	}
}

// Apply returns a copy of s with every non-nil field of u applied.
func (u SettingsUpdate) Apply(s Settings) Settings {
	out := s.Clone()
	if u.DefaultTargetLanguage != nil {
		out.DefaultTargetLanguage = *u.DefaultTargetLanguage
	}
	if u.AutoTranslate != nil {
		out.AutoTranslate = *u.AutoTranslate
	}
	if u.LibreTranslateURL != nil {
		out.LibreTranslateURL = *u.LibreTranslateURL
	}
	if u.DefaultViewMode != nil {
		out.DefaultViewMode = *u.DefaultViewMode
	}
	if u.FontSize != nil {
		out.FontSize = *u.FontSize
	}
	if u.Theme != nil {
		out.Theme = *u.Theme
	}
	if u.HighlightColor != nil {
		out.HighlightColor = *u.HighlightColor
	}
	if u.AutoParagraphMobile != nil {
		out.AutoParagraphMobile = *u.AutoParagraphMobile
	}
	if u.AutoScrollSpeed != nil {
		out.AutoScrollSpeed = *u.AutoScrollSpeed
	}
	if u.HighlightActive != nil {
		out.HighlightActive = *u.HighlightActive
	}
	if u.DefaultPlaybackSpeed != nil {
		out.DefaultPlaybackSpeed = *u.DefaultPlaybackSpeed
	}
	if u.HistoryRetentionDays != nil {
		days := *u.HistoryRetentionDays
		out.HistoryRetentionDays = &days
	}
	if u.APITimeout != nil {
		out.APITimeout = *u.APITimeout
	}
	if u.CacheDurationMinutes != nil {
		out.CacheDurationMinutes = *u.CacheDurationMinutes
	}
	if u.DebugMode != nil {
		out.DebugMode = *u.DebugMode
	}
	return out
}
