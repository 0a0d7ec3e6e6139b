// export.go handles history entry export in multiple formats.
//
// Supported formats:
//   - txt : the translation (or the original when there is none)
//   - md  : Markdown with a metadata table and both texts
//   - srt : SubRip subtitles with estimated timestamps
//   - json: the full entry
//
// Go Pattern: Each export format is its own function. This makes it easy
// to add new formats later: just add a case to the switch and a new
// formatter function.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// exportFormats lists the accepted ?format= values.
var exportFormats = map[string]bool{"txt": true, "md": true, "srt": true, "json": true}

// ExportHistory exports a history entry as a downloadable file.
// GET /api/history/:id/export?format=txt|md|srt|json
//
// Response headers are set for file download:
//   - Content-Type: appropriate MIME type
//   - Content-Disposition: attachment with filename
func (h *Handler) ExportHistory(c *gin.Context) {
	format := c.DefaultQuery("format", "txt")

	// Validate format before doing any store work
	if !exportFormats[format] {
		respondError(c, http.StatusBadRequest, "Supported formats: txt, md, srt, json")
		return
	}

	e, err := h.DB.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}

	filename := ""
	if e.Title != nil {
		filename = sanitizeFilename(*e.Title)
	}
	if filename == "" {
		filename = "translation-" + e.ID
	}

	switch format {
	case "txt":
		exportTXT(c, e, filename)
	case "md":
		exportMarkdown(c, e, filename)
	case "srt":
		exportSRT(c, e, filename)
	case "json":
		exportJSON(c, e, filename)
	}
}

// exportText is the text a single-text export carries.
func exportText(e *models.HistoryEntry) string {
	if strings.TrimSpace(e.TranslatedText) != "" {
		return e.TranslatedText
	}
	return e.OriginalText
}

func attach(c *gin.Context, filename, ext, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, filename, ext))
	c.Data(http.StatusOK, contentType, body)
}

func exportTXT(c *gin.Context, e *models.HistoryEntry, filename string) {
	attach(c, filename, "txt", "text/plain; charset=utf-8", []byte(exportText(e)))
}

// exportMarkdown returns both texts under a metadata table.
func exportMarkdown(c *gin.Context, e *models.HistoryEntry, filename string) {
	var sb strings.Builder

	title := filename
	if e.Title != nil && *e.Title != "" {
		title = *e.Title
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Languages | %s → %s |\n", e.SourceLang, orDash(e.TargetLang)))
	sb.WriteString(fmt.Sprintf("| Provider | %s |\n", e.Provider))
	if e.VideoInfo != nil {
		sb.WriteString(fmt.Sprintf("| Uploader | %s |\n", e.VideoInfo.Uploader))
		sb.WriteString(fmt.Sprintf("| Duration | %s |\n", formatDuration(e.VideoInfo.Duration)))
	}
	if e.YouTubeURL != nil {
		sb.WriteString(fmt.Sprintf("| URL | %s |\n", *e.YouTubeURL))
	}
	sb.WriteString(fmt.Sprintf("| Created | %s |\n", e.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n---\n\n")
	sb.WriteString("## Original\n\n")
	sb.WriteString(e.OriginalText)
	sb.WriteString("\n")
	if strings.TrimSpace(e.TranslatedText) != "" {
		sb.WriteString("\n## Translation\n\n")
		sb.WriteString(e.TranslatedText)
		sb.WriteString("\n")
	}

	attach(c, filename, "md", "text/markdown; charset=utf-8", []byte(sb.String()))
}

// exportSRT returns the text in SubRip subtitle format.
//
// History keeps no cue timings, so timestamps are estimated: words are spread
// evenly over the video duration, or over ~150 words per minute without one.
// Each cue is roughly 10 words.
func exportSRT(c *gin.Context, e *models.HistoryEntry, filename string) {
	var duration float64
	if e.VideoInfo != nil {
		duration = e.VideoInfo.Duration
	}
	attach(c, filename, "srt", "text/srt; charset=utf-8", []byte(buildSRT(exportText(e), duration)))
}

func buildSRT(text string, durationSeconds float64) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "1\n00:00:00,000 --> 00:00:01,000\n(empty transcript)\n\n"
	}

	const wordsPerCue = 10
	totalDuration := durationSeconds
	if totalDuration <= 0 {
		totalDuration = float64(len(words)) / 150.0 * 60.0
	}
	secondsPerWord := totalDuration / float64(len(words))

	var sb strings.Builder
	cueIndex := 1
	for i := 0; i < len(words); i += wordsPerCue {
		end := min(i+wordsPerCue, len(words))
		startSec := float64(i) * secondsPerWord
		endSec := min(float64(end)*secondsPerWord, totalDuration)

		sb.WriteString(fmt.Sprintf("%d\n", cueIndex))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTime(startSec), formatSRTTime(endSec)))
		sb.WriteString(strings.Join(words[i:end], " "))
		sb.WriteString("\n\n")
		cueIndex++
	}
	return sb.String()
}

func exportJSON(c *gin.Context, e *models.HistoryEntry, filename string) {
	jsonBytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate JSON export")
		return
	}
	attach(c, filename, "json", "application/json; charset=utf-8", jsonBytes)
}

// --- Helper Functions ---

// formatSRTTime converts seconds to SRT timestamp format: HH:MM:SS,mmm
func formatSRTTime(seconds float64) string {
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := int(seconds) % 60
	ms := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// formatDuration converts seconds to a human-readable duration string.
// Fractions of a second are dropped.
func formatDuration(duration float64) string {
	seconds := int(duration)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

const maxFilenameRunes = 100

// sanitizeFilename replaces characters that are unsafe in a
// Content-Disposition filename and caps the length.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}
	return name
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
