// Package main provides the entry point for the yt-dlp API service.
// @title yt-dlp API
// @version 1.0
// @description Metadata proxy around yt-dlp for videos and channels.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer API token or HS256 access token

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/bump-fr/yt-dlp-api/docs" // Import for swagger docs
	"github.com/bump-fr/yt-dlp-api/internal/api/handlers"
	"github.com/bump-fr/yt-dlp-api/internal/api/router"
	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/services/auth"
	"github.com/bump-fr/yt-dlp-api/internal/services/ytdlp"
	"github.com/bump-fr/yt-dlp-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting yt-dlp API service")

	// Initialize yt-dlp client
	client := ytdlp.NewClient(ytdlp.NewExecRunner(&cfg.YtDlp), &cfg.YtDlp)

	if version, err := client.Version(context.Background()); err != nil {
		logger.Warnf("yt-dlp is not available at %q: %v", cfg.YtDlp.Path, err)
	} else {
		logger.Infof("Using yt-dlp %s", version)
	}

	jwtService := auth.NewJWTService(&cfg.Auth)
	if !jwtService.Enabled() {
		logger.Info("JWT_SECRET not set, only the static API token is accepted")
	}

	// Initialize handlers
	mediaHandler := handlers.NewMediaHandler(client)
	healthHandler := handlers.NewHealthHandler(client)

	// Initialize router
	r := router.NewRouter(cfg, mediaHandler, healthHandler, jwtService)

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := r.Shutdown(ctx); err != nil {
		logger.Errorf("Failed to shut down server: %v", err)
	}

	logger.Info("Server shutdown complete")
}
