// Package main runs the in-memory YTT backend used for local development.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/ytt-client/internal/config"
	"github.com/Shimizu-Technology/ytt-client/internal/handlers"
	"github.com/Shimizu-Technology/ytt-client/internal/logging"
	"github.com/Shimizu-Technology/ytt-client/internal/router"
	"github.com/Shimizu-Technology/ytt-client/internal/services/transcript"
	"github.com/Shimizu-Technology/ytt-client/internal/services/translator"
	"github.com/Shimizu-Technology/ytt-client/internal/store"
)

func main() {
	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Infow("fake backend starting",
		"version", cfg.BuildVersion,
		"port", cfg.Port,
		"gin_mode", cfg.GinMode,
		"api_prefix", cfg.APIPrefix,
	)
	gin.SetMode(cfg.GinMode)

	// Step 2: Create Services
	db := store.New()
	videos := transcript.DefaultCatalog()
	engine := translator.New()

	h := handlers.NewHandler(db, videos, engine, handlers.BuildInfo{
		Version:   cfg.BuildVersion,
		BuildDate: cfg.BuildDate,
		GitCommit: cfg.GitCommit,
	}, logger)

	// Step 3: Setup HTTP Router
	r := router.Setup(h, cfg.APIPrefix, cfg.AllowedOrigins, logger)

	// Step 4: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("listening on http://localhost:%s%s", cfg.Port, cfg.APIPrefix)
		logger.Infof("health check: http://localhost:%s/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server failed", "error", err)
		}
	}()

	// Step 5: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Infow("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warnw("server forced to shutdown", "error", err)
	}
	logger.Info("server stopped")
}
