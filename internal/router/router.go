// Package router sets up all HTTP routes of the fake backend.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shimizu-Technology/ytt-client/internal/handlers"
	"github.com/Shimizu-Technology/ytt-client/internal/middleware"
)

// Setup creates and configures the Gin router with all routes.
// The API lives under apiPrefix; /health is served from the root, next to it.
// CORS is only enabled when allowedOrigins is non-empty.
func Setup(h *handlers.Handler, apiPrefix string, allowedOrigins []string, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	if len(allowedOrigins) > 0 {
		r.Use(middleware.CORS(allowedOrigins))
	}

	r.GET("/health", h.HealthCheck)

	api := r.Group(apiPrefix)
	{
		api.GET("/version", h.Version)

		// Translation
		api.POST("/translate", h.Translate)
		api.POST("/translate/detect", h.DetectLanguage)
		api.GET("/languages", h.Languages)
		api.GET("/providers", h.Providers)

		// Video transcripts
		api.POST("/youtube/fetch", h.FetchTranscript)
		api.POST("/youtube/info", h.VideoInfo)
		api.GET("/youtube/extract-id", h.ExtractVideoID)

		// History
		api.GET("/history", h.ListHistory)
		api.DELETE("/history", h.ClearHistory)
		api.GET("/history/:id", h.GetHistory)
		api.GET("/history/:id/export", h.ExportHistory)
		api.DELETE("/history/:id", h.DeleteHistory)

		// Settings
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.UpdateSettings)
		api.POST("/settings/reset", h.ResetSettings)
		api.GET("/settings/export", h.ExportSettings)
		api.POST("/settings/import", h.ImportSettings)
	}

	return r
}
