// Package models defines the wire records exchanged with the YTT backend.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// Every tag mirrors the backend's snake_case schema exactly, so the same
// structs are used by the client (pkg/api) and by the in-memory fake backend.
//
// Optional fields are either pointers (nullable on the wire) or carry
// `omitempty` so that an absent value never shows up as an empty entry.
package models

import (
	"io"
	"strings"
	"time"
)

// --- Translation ---

// FileUpload is a file attached to a translation request.
// Content is streamed into the multipart body; it is read exactly once.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// TranslationRequest is encoded as multipart/form-data for POST /translate.
// Callers supply Text, File, or both; the backend rejects a request with neither.
type TranslationRequest struct {
	Text       string      // Optional: raw text to translate
	File       *FileUpload // Optional: file whose text the backend extracts
	SourceLang string      // Required, e.g. "fr" or "auto"
	TargetLang string      // Required, e.g. "en"
	Provider   string      // Optional: "libretranslate", "openai", "deepl"
	EntryID    string      // Optional: history entry to re-use
}

// TranslationResponse is returned by POST /translate.
type TranslationResponse struct {
	ID             string     `json:"id,omitempty"`
	OriginalText   string     `json:"original_text"`
	TranslatedText string     `json:"translated_text"`
	SourceLang     string     `json:"source_lang"`
	TargetLang     string     `json:"target_lang"`
	Provider       string     `json:"provider"`
	Confidence     *float64   `json:"confidence,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	ProcessingTime *float64   `json:"processing_time,omitempty"` // Seconds
}

// LanguageDetection is returned by POST /translate/detect.
// Alternatives are provider-defined and kept loosely typed.
type LanguageDetection struct {
	DetectedLanguage string           `json:"detected_language"`
	Confidence       float64          `json:"confidence"`
	Alternatives     []map[string]any `json:"alternatives,omitempty"`
}

// Language is one entry of GET /languages.
type Language struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets,omitempty"`
}

// LanguagesResponse wraps the language list.
type LanguagesResponse struct {
	Languages []Language `json:"languages"`
}

// Provider is one entry of GET /providers.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	URL       string `json:"url,omitempty"`
}

// ProvidersResponse wraps the provider list.
type ProvidersResponse struct {
	Providers []Provider `json:"providers"`
}

// --- YouTube ---

// Cookie modes accepted by the backend for yt-dlp.
const (
	CookiesNone    = "none"
	CookiesFirefox = "firefox"
	CookiesChrome  = "chrome"
)

// YouTubeRequest is the JSON body for POST /youtube/fetch.
type YouTubeRequest struct {
	URL        string `json:"url"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang,omitempty"`
	UseCookies string `json:"use_cookies,omitempty"`
	MergeLines *bool  `json:"merge_lines,omitempty"` // Pointer = nil means "backend default"
}

// VideoInfo is the metadata block embedded in transcript responses.
type VideoInfo struct {
	Title       string  `json:"title"`
	Duration    float64 `json:"duration"` // Seconds, possibly fractional
	Uploader    string  `json:"uploader"`
	UploadDate  string  `json:"upload_date"`
	Description string  `json:"description"`
}

// YouTubeResponse is returned by POST /youtube/fetch.
//
// TranslationError is a partial failure: the transcript was fetched but the
// translation was not produced. It is data, not an error.
type YouTubeResponse struct {
	VideoID                   string    `json:"video_id"`
	Title                     string    `json:"title"`
	URL                       string    `json:"url"`
	VideoInfo                 VideoInfo `json:"video_info"`
	AvailableLanguages        []string  `json:"available_languages"`
	SourceLang                string    `json:"source_lang"`
	SourceTranscriptRaw       string    `json:"source_transcript_raw,omitempty"`
	SourceTranscriptProcessed string    `json:"source_transcript_processed,omitempty"`
	TargetLang                string    `json:"target_lang,omitempty"`
	TargetTranscriptRaw       string    `json:"target_transcript_raw,omitempty"`
	TargetTranscriptProcessed string    `json:"target_transcript_processed,omitempty"`
	EntryID                   string    `json:"entry_id,omitempty"`
	Cached                    bool      `json:"cached,omitempty"`
	TranslationError          string    `json:"translation_error,omitempty"`
}

// HasTranslationError reports whether the transcript came back without its translation.
func (r *YouTubeResponse) HasTranslationError() bool {
	return r != nil && strings.TrimSpace(r.TranslationError) != ""
}

// VideoInfoRequest is the JSON body for POST /youtube/info.
type VideoInfoRequest struct {
	URL        string `json:"url"`
	UseCookies string `json:"use_cookies"`
}

// VideoInfoResponse is returned by POST /youtube/info.
type VideoInfoResponse struct {
	VideoID            string    `json:"video_id"`
	VideoInfo          VideoInfo `json:"video_info"`
	AvailableSubtitles []string  `json:"available_subtitles"`
}

// ExtractIDResponse is returned by GET /youtube/extract-id.
type ExtractIDResponse struct {
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
}

// --- History ---

// Entry types recorded by the backend.
const (
	EntryTypeText    = "text"
	EntryTypeFile    = "file"
	EntryTypeYouTube = "youtube"
)

// HistoryEntry is one stored translation. The client only relies on ID and
// the newest-first ordering of list results; the rest is passed through.
type HistoryEntry struct {
	ID                 string     `json:"id"`
	Title              *string    `json:"title,omitempty"`
	OriginalText       string     `json:"original_text"`
	TranslatedText     string     `json:"translated_text"`
	SourceLang         string     `json:"source_lang"`
	TargetLang         string     `json:"target_lang"`
	Provider           string     `json:"provider"`
	CreatedAt          time.Time  `json:"created_at"`
	FileName           *string    `json:"file_name,omitempty"`
	FileType           *string    `json:"file_type,omitempty"`
	VideoID            *string    `json:"video_id,omitempty"`
	YouTubeURL         *string    `json:"youtube_url,omitempty"`
	AvailableLanguages []string   `json:"available_languages,omitempty"`
	VideoInfo          *VideoInfo `json:"video_info,omitempty"`
	Type               *string    `json:"type,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// HistoryQuery holds the query parameters for GET /history.
type HistoryQuery struct {
	Limit      int    // 0 = default (20)
	Offset     int    // 0-indexed
	SourceLang string // Optional filter
	TargetLang string // Optional filter
}

// MessageResponse is the acknowledgement returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Version / health ---

// VersionInfo is returned by GET /version.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// HealthPayload is the body of GET /health.
type HealthPayload struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Version   string `json:"version,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// HealthStatus is what a health probe reports: the raw status code plus the payload,
// whatever the code was.
type HealthStatus struct {
	StatusCode int
	Payload    HealthPayload
}

// Healthy reports a 2xx probe whose payload says "healthy".
func (h HealthStatus) Healthy() bool {
	return h.StatusCode >= 200 && h.StatusCode < 300 && h.Payload.Status == "healthy"
}

// ErrorResponse is the FastAPI-style error body: {"detail": "..."}.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
