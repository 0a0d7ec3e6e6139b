// history.go handles translation history endpoints.
//
// GET    /api/history?limit=&offset=&source_lang=&target_lang=
// GET    /api/history/:id
// DELETE /api/history/:id
// DELETE /api/history
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/ytt-client/internal/store"
	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ListHistory returns history entries, newest first.
// GET /api/history
//
// Entries older than the history_retention_days setting are pruned first.
func (h *Handler) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()

	limit, err := queryInt(c, "limit", defaultHistoryLimit)
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		respondError(c, http.StatusUnprocessableEntity, fmt.Sprintf("limit must be an integer between 1 and %d", maxHistoryLimit))
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		respondError(c, http.StatusUnprocessableEntity, "offset must be a non-negative integer")
		return
	}

	h.applyRetention(c)

	entries, err := h.DB.ListHistory(ctx, store.HistoryFilter{
		Limit:      limit,
		Offset:     offset,
		SourceLang: c.Query("source_lang"),
		TargetLang: c.Query("target_lang"),
	})
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetHistory returns one entry.
// GET /api/history/:id
func (h *Handler) GetHistory(c *gin.Context) {
	entry, err := h.DB.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteHistory removes one entry.
// DELETE /api/history/:id
func (h *Handler) DeleteHistory(c *gin.Context) {
	if err := h.DB.DeleteHistory(c.Request.Context(), c.Param("id")); err != nil {
		h.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Translation deleted successfully"})
}

// ClearHistory removes every entry.
// DELETE /api/history
func (h *Handler) ClearHistory(c *gin.Context) {
	n, err := h.DB.ClearHistory(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err)
		return
	}
	h.Logger.Infow("history cleared", "entries", n)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "History cleared successfully"})
}

// applyRetention prunes entries past the configured retention. Failures are
// logged only; listing still works with stale entries.
func (h *Handler) applyRetention(c *gin.Context) {
	ctx := c.Request.Context()
	settings, err := h.DB.GetSettings(ctx)
	if err != nil || settings.HistoryRetentionDays == nil {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -*settings.HistoryRetentionDays)
	removed, err := h.DB.PruneHistory(ctx, cutoff)
	if err != nil {
		h.Logger.Warnw("history pruning failed", "error", err)
		return
	}
	if removed > 0 {
		h.Logger.Infow("pruned expired history", "entries", removed, "retention_days", *settings.HistoryRetentionDays)
	}
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
