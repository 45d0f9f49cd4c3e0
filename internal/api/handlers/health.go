package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bump-fr/yt-dlp-api/internal/utils"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// VersionChecker reports the version of the extraction tool.
type VersionChecker interface {
	Version(ctx context.Context) (string, error)
}

type HealthHandler struct {
	ytdlp VersionChecker
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services"`
}

type ServiceHealth struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

func NewHealthHandler(ytdlp VersionChecker) *HealthHandler {
	return &HealthHandler{
		ytdlp: ytdlp,
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Check the health of the service and the yt-dlp binary
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Success 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   Version,
		Services:  make(map[string]ServiceHealth),
	}

	ytdlpHealth := h.checkYtDlp(ctx)
	response.Services["yt-dlp"] = ytdlpHealth

	if ytdlpHealth.Status != "healthy" {
		response.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Check if the service is ready to accept requests
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()

	ready := true
	checks := make(map[string]interface{})

	if version, err := h.ytdlp.Version(ctx); err != nil {
		ready = false
		checks["yt-dlp"] = map[string]interface{}{
			"ready": false,
			"error": err.Error(),
		}
	} else {
		checks["yt-dlp"] = map[string]interface{}{
			"ready":   true,
			"version": version,
		}
	}

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}

	if ready {
		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkYtDlp(ctx context.Context) ServiceHealth {
	start := time.Now()

	version, err := h.ytdlp.Version(ctx)
	responseTime := time.Since(start).String()

	if err != nil {
		utils.LogError(ctx, "yt-dlp health check failed", err)
		return ServiceHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ServiceHealth{
		Status:       "healthy",
		Version:      version,
		ResponseTime: responseTime,
	}
}
