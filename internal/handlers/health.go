// Package handlers contains the HTTP handler functions of the fake backend.
//
// Go Pattern: Handlers in Gin receive a *gin.Context which provides:
// - Request data (params, query, body, headers)
// - Response methods (JSON, String, Status)
// - Middleware data (c.Get/c.Set)
//
// We group related handlers into a struct (Handler) that holds shared
// dependencies, so tests can build one around an empty store.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/ytt-client/internal/services/transcript"
	"github.com/Shimizu-Technology/ytt-client/internal/services/translator"
	"github.com/Shimizu-Technology/ytt-client/internal/store"
	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// TranscriptSource finds videos and their captions. *transcript.Catalog satisfies it.
type TranscriptSource interface {
	Lookup(ctx context.Context, videoID string) (*transcript.Video, error)
}

// BuildInfo is reported by /version and /health.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Handler holds shared dependencies for all HTTP handlers.
// Go Pattern: Dependency injection via struct fields. Instead of global
// variables or service locators, we pass dependencies explicitly.
type Handler struct {
	DB         *store.DB
	Videos     TranscriptSource
	Translator *translator.Engine
	Build      BuildInfo
	Logger     *zap.SugaredLogger

	// LibreTranslateURL is advertised by GET /providers.
	LibreTranslateURL string
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(db *store.DB, videos TranscriptSource, engine *translator.Engine, build BuildInfo, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		DB:                db,
		Videos:            videos,
		Translator:        engine,
		Build:             build,
		Logger:            logger,
		LibreTranslateURL: models.DefaultSettings().LibreTranslateURL,
	}
}

// HealthCheck reports whether the backend can serve requests.
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	payload := models.HealthPayload{
		Status:    "healthy",
		Service:   "ytt-backend",
		Version:   h.Build.Version,
		BuildDate: h.Build.BuildDate,
		GitCommit: h.Build.GitCommit,
	}

	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		h.Logger.Warnw("health check failed", "error", err)
		payload.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, payload)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Version returns build information.
// GET /api/version
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, models.VersionInfo{
		Version:   h.Build.Version,
		BuildDate: h.Build.BuildDate,
		GitCommit: h.Build.GitCommit,
	})
}

// respondError writes the {"detail": "..."} error body the client expects.
func respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Detail: detail})
}
