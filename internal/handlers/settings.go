// settings.go handles the user settings record.
//
// GET  /api/settings
// PUT  /api/settings        : partial update
// POST /api/settings/reset
// GET  /api/settings/export
// POST /api/settings/import : full record
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/ytt-client/internal/store"
	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// GetSettings returns the stored settings.
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.DB.GetSettings(c.Request.Context())
	if err != nil {
		h.respondSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSettings applies the fields present in the body.
// PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var update models.SettingsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid settings: "+err.Error())
		return
	}

	s, err := h.DB.UpdateSettings(c.Request.Context(), update)
	if err != nil {
		h.respondSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ResetSettings restores the defaults.
// POST /api/settings/reset
func (h *Handler) ResetSettings(c *gin.Context) {
	s, err := h.DB.ResetSettings(c.Request.Context())
	if err != nil {
		h.respondSettingsError(c, err)
		return
	}
	h.Logger.Info("settings reset to defaults")
	c.JSON(http.StatusOK, s)
}

// ExportSettings returns the stored settings for backup.
// GET /api/settings/export
func (h *Handler) ExportSettings(c *gin.Context) {
	h.GetSettings(c)
}

// ImportSettings replaces the stored settings with a complete record.
// POST /api/settings/import
func (h *Handler) ImportSettings(c *gin.Context) {
	// Start from the defaults so fields missing from an older export stay valid.
	imported := models.DefaultSettings()
	if err := c.ShouldBindJSON(&imported); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid settings: "+err.Error())
		return
	}

	s, err := h.DB.ReplaceSettings(c.Request.Context(), imported)
	if err != nil {
		h.respondSettingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) respondSettingsError(c *gin.Context, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, verr.Error())
		return
	}
	h.Logger.Errorw("settings operation failed", "error", err)
	respondError(c, http.StatusInternalServerError, err.Error())
}
