// youtube.go handles video transcript endpoints.
//
// POST /api/youtube/fetch     : transcript in the source language, optionally translated
// POST /api/youtube/info      : metadata and available subtitle languages
// GET  /api/youtube/extract-id: video ID from a URL
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/ytt-client/internal/services/transcript"
	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// FetchTranscript returns a video's transcript and, when a different target
// language is requested, its translation. A failed translation does not fail
// the request: the transcript is returned with translation_error set.
// Repeat requests for the same video and languages are served from history.
// POST /api/youtube/fetch
func (h *Handler) FetchTranscript(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.YouTubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.SourceLang == "" {
		req.SourceLang = "en"
	}
	if !validCookies(req.UseCookies) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("use_cookies must be none, firefox or chrome, got %q", req.UseCookies))
		return
	}
	merge := req.MergeLines == nil || *req.MergeLines

	_, videoID, err := transcript.ParseYouTubeURL(req.URL)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	targetLang := req.TargetLang
	if targetLang == req.SourceLang {
		targetLang = ""
	}

	if cached, err := h.DB.FindTranscript(ctx, videoID, req.SourceLang, targetLang); err == nil {
		h.Logger.Infow("returning cached transcript", "video_id", videoID)
		cached.URL = req.URL
		cached.TargetLang = req.TargetLang
		cached.Cached = true
		cached.TranslationError = ""
		cached.SourceTranscriptProcessed = ""
		cached.TargetTranscriptProcessed = ""
		if merge {
			cached.SourceTranscriptProcessed = transcript.ProcessTranscript(cached.SourceTranscriptRaw)
			if cached.TargetTranscriptRaw != "" {
				cached.TargetTranscriptProcessed = transcript.ProcessTranscript(cached.TargetTranscriptRaw)
			}
		}
		c.JSON(http.StatusOK, cached)
		return
	}

	video, err := h.Videos.Lookup(ctx, videoID)
	if err != nil {
		h.respondVideoError(c, videoID, err)
		return
	}
	lines, err := video.Lines(req.SourceLang)
	if err != nil || len(lines) == 0 {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Could not fetch transcript for language '%s'", req.SourceLang))
		return
	}

	resp := models.YouTubeResponse{
		VideoID:             videoID,
		Title:               video.Info.Title,
		URL:                 req.URL,
		VideoInfo:           video.Info,
		AvailableLanguages:  video.Languages(),
		SourceLang:          req.SourceLang,
		SourceTranscriptRaw: transcript.RawTranscript(lines),
		TargetLang:          req.TargetLang,
	}
	if merge {
		resp.SourceTranscriptProcessed = transcript.MergeLines(lines, transcript.SentencesPerParagraph)
	}

	if targetLang != "" {
		toTranslate := resp.SourceTranscriptProcessed
		if toTranslate == "" {
			toTranslate = resp.SourceTranscriptRaw
		}
		result, err := h.Translator.Translate(toTranslate, req.SourceLang, targetLang)
		if err != nil {
			h.Logger.Errorw("transcript translation failed", "video_id", videoID, "target_lang", targetLang, "error", err)
			resp.TranslationError = "Translation failed: " + err.Error()
		} else {
			resp.TargetTranscriptRaw = result.Text
			resp.TargetTranscriptProcessed = result.Text
		}
	}

	// Only a successful translation is stored under the target language, so a
	// failed one is retried on the next fetch.
	storedTarget := ""
	if resp.TargetTranscriptRaw != "" {
		storedTarget = targetLang
	}
	entry := transcriptEntry(resp, storedTarget)
	if err := h.DB.AddHistory(ctx, entry); err != nil {
		h.respondStoreError(c, err)
		return
	}
	resp.EntryID = entry.ID

	cacheable := resp
	cacheable.TargetLang = storedTarget
	if err := h.DB.CacheTranscript(ctx, entry.ID, cacheable); err != nil {
		h.Logger.Warnw("failed to cache transcript", "video_id", videoID, "error", err)
	}

	c.JSON(http.StatusOK, resp)
}

// VideoInfo returns video metadata and the subtitle languages on offer.
// POST /api/youtube/info
func (h *Handler) VideoInfo(c *gin.Context) {
	var req models.VideoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	_, videoID, err := transcript.ParseYouTubeURL(req.URL)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	video, err := h.Videos.Lookup(c.Request.Context(), videoID)
	if err != nil {
		h.respondVideoError(c, videoID, err)
		return
	}

	c.JSON(http.StatusOK, models.VideoInfoResponse{
		VideoID:            videoID,
		VideoInfo:          video.Info,
		AvailableSubtitles: video.Languages(),
	})
}

// ExtractVideoID parses a YouTube URL.
// GET /api/youtube/extract-id?url=...
func (h *Handler) ExtractVideoID(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		respondError(c, http.StatusBadRequest, "url query parameter is required")
		return
	}

	_, videoID, err := transcript.ParseYouTubeURL(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}
	c.JSON(http.StatusOK, models.ExtractIDResponse{VideoID: videoID, URL: raw})
}

func (h *Handler) respondVideoError(c *gin.Context, videoID string, err error) {
	if errors.Is(err, transcript.ErrVideoNotFound) {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Video %s not found", videoID))
		return
	}
	h.Logger.Errorw("video lookup failed", "video_id", videoID, "error", err)
	respondError(c, http.StatusInternalServerError, "Error fetching transcript: "+err.Error())
}

// transcriptEntry builds the history record for a fetched transcript.
func transcriptEntry(resp models.YouTubeResponse, targetLang string) *models.HistoryEntry {
	entryType := models.EntryTypeYouTube
	title := resp.Title
	videoID := resp.VideoID
	watchURL := resp.URL
	info := resp.VideoInfo

	return &models.HistoryEntry{
		Title:              &title,
		OriginalText:       resp.SourceTranscriptRaw,
		TranslatedText:     resp.TargetTranscriptRaw,
		SourceLang:         resp.SourceLang,
		TargetLang:         targetLang,
		Provider:           defaultProvider,
		VideoID:            &videoID,
		YouTubeURL:         &watchURL,
		AvailableLanguages: resp.AvailableLanguages,
		VideoInfo:          &info,
		Type:               &entryType,
	}
}

func validCookies(mode string) bool {
	switch mode {
	case "", models.CookiesNone, models.CookiesFirefox, models.CookiesChrome:
		return true
	}
	return false
}
