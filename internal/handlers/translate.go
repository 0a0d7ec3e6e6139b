// translate.go handles text and file translation.
//
// POST /api/translate       : multipart: text and/or file, source_lang, target_lang
// POST /api/translate/detect: multipart: text
// GET  /api/languages
// GET  /api/providers
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/ytt-client/internal/services/filetext"
	"github.com/Shimizu-Technology/ytt-client/internal/services/translator"
	"github.com/Shimizu-Technology/ytt-client/internal/store"
	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

const (
	maxUploadMB   = 10
	maxUploadSize = maxUploadMB << 20
	maxTextLength = 50000

	defaultProvider = "libretranslate"
)

// Translate translates text or an uploaded file and records it in history.
// POST /api/translate
//
// When entry_id names an existing history entry, that entry is updated
// instead of a new one being created.
func (h *Handler) Translate(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	text := c.PostForm("text")
	sourceLang := c.DefaultPostForm("source_lang", translator.AutoDetect)
	targetLang := c.DefaultPostForm("target_lang", "en")
	provider := c.DefaultPostForm("provider", defaultProvider)
	entryID := c.PostForm("entry_id")

	var fileName, fileType string
	if header, err := c.FormFile("file"); err == nil {
		if header.Size > maxUploadSize {
			respondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("File size exceeds %dMB limit", maxUploadMB))
			return
		}
		f, err := header.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}

		result, err := filetext.Extract(header.Filename, data)
		if err != nil {
			h.Logger.Warnw("file extraction failed", "file", header.Filename, "error", err)
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		text, fileName, fileType = result.Text, header.Filename, result.Format
	}

	if strings.TrimSpace(text) == "" {
		respondError(c, http.StatusBadRequest, "Either text or file must be provided")
		return
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		respondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Text length exceeds %d characters", maxTextLength))
		return
	}
	if !h.providerUsable(c, provider) {
		return
	}

	var confidence *float64
	if sourceLang == translator.AutoDetect {
		detected := h.Translator.Detect(text)[0]
		confidence = &detected.Confidence
	}

	result, err := h.Translator.Translate(text, sourceLang, targetLang)
	if err != nil {
		h.respondTranslateError(c, err)
		return
	}

	entry := &models.HistoryEntry{
		OriginalText:   text,
		TranslatedText: result.Text,
		SourceLang:     result.DetectedLanguage,
		TargetLang:     targetLang,
		Provider:       provider,
	}
	if entryID != "" {
		existing, err := h.DB.GetHistory(ctx, entryID)
		if err != nil {
			h.respondStoreError(c, err)
			return
		}
		existing.TranslatedText = result.Text
		existing.TargetLang = targetLang
		existing.Provider = provider
		entry = existing
		err = h.DB.UpdateHistory(ctx, entry)
		if err != nil {
			h.respondStoreError(c, err)
			return
		}
	} else {
		entryType := models.EntryTypeText
		if fileName != "" {
			entryType = models.EntryTypeFile
			title := "File: " + fileName
			entry.Title = &title
			entry.FileName = &fileName
			entry.FileType = &fileType
		}
		entry.Type = &entryType
		if err := h.DB.AddHistory(ctx, entry); err != nil {
			h.respondStoreError(c, err)
			return
		}
	}

	elapsed := time.Since(start).Seconds()
	created := entry.CreatedAt
	c.JSON(http.StatusOK, models.TranslationResponse{
		ID:             entry.ID,
		OriginalText:   text,
		TranslatedText: result.Text,
		SourceLang:     result.DetectedLanguage,
		TargetLang:     targetLang,
		Provider:       provider,
		Confidence:     confidence,
		CreatedAt:      &created,
		ProcessingTime: &elapsed,
	})
}

// DetectLanguage guesses the language of a text.
// POST /api/translate/detect
func (h *Handler) DetectLanguage(c *gin.Context) {
	text := c.PostForm("text")
	if strings.TrimSpace(text) == "" {
		respondError(c, http.StatusBadRequest, "Text is required")
		return
	}

	ranked := h.Translator.Detect(text)
	resp := models.LanguageDetection{
		DetectedLanguage: ranked[0].Language,
		Confidence:       ranked[0].Confidence,
	}
	for _, alt := range ranked[1:] {
		resp.Alternatives = append(resp.Alternatives, map[string]any{
			"language":   alt.Language,
			"confidence": alt.Confidence,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Languages lists the supported languages.
// GET /api/languages
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, models.LanguagesResponse{Languages: h.Translator.Languages()})
}

// Providers lists the translation providers.
// GET /api/providers
func (h *Handler) Providers(c *gin.Context) {
	c.JSON(http.StatusOK, models.ProvidersResponse{Providers: h.providers()})
}

func (h *Handler) providers() []models.Provider {
	return []models.Provider{
		{ID: defaultProvider, Name: "LibreTranslate", Available: true, URL: h.LibreTranslateURL},
		{ID: "openai", Name: "OpenAI", Available: false},
		{ID: "deepl", Name: "DeepL", Available: false},
	}
}

// providerUsable writes an error response and returns false for unknown or
// unconfigured providers.
func (h *Handler) providerUsable(c *gin.Context, id string) bool {
	for _, p := range h.providers() {
		if p.ID != id {
			continue
		}
		if !p.Available {
			respondError(c, http.StatusServiceUnavailable, fmt.Sprintf("Provider %s is not configured", id))
			return false
		}
		return true
	}
	respondError(c, http.StatusBadRequest, fmt.Sprintf("Unsupported provider: %s", id))
	return false
}

func (h *Handler) respondTranslateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, translator.ErrUnsupportedLanguage):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, translator.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, err.Error())
	default:
		h.Logger.Errorw("translation failed", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Translation not found")
		return
	}
	h.Logger.Errorw("store operation failed", "error", err)
	respondError(c, http.StatusInternalServerError, err.Error())
}
