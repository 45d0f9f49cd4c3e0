package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/bump-fr/yt-dlp-api/internal/api/handlers"
	"github.com/bump-fr/yt-dlp-api/internal/api/middleware"
	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/services/auth"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
	server *http.Server
}

func NewRouter(cfg *config.Config, mediaHandler *handlers.MediaHandler, healthHandler *handlers.HealthHandler, jwtService *auth.JWTService) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health endpoints (no auth required)
	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	// Swagger documentation (no auth required)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metadata endpoints with bearer authentication and rate limiting.
	// Failed authentications are limited per IP before the token is checked.
	api := engine.Group("/api")
	api.Use(middleware.AuthFailureLimitMiddleware(&cfg.API))
	api.Use(middleware.BearerAuthMiddleware(&cfg.Auth, jwtService))
	api.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		api.POST("/video", mediaHandler.GetVideo)                  // /api/video
		api.POST("/channel", mediaHandler.GetChannel)              // /api/channel
		api.POST("/channel/videos", mediaHandler.GetChannelVideos) // /api/channel/videos
	}

	return &Router{
		engine: engine,
		config: cfg,
		server: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (r *Router) Start() error {
	if err := r.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
