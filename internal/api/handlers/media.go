package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bump-fr/yt-dlp-api/internal/models"
	"github.com/bump-fr/yt-dlp-api/internal/services/ytdlp"
	"github.com/bump-fr/yt-dlp-api/internal/utils"
)

type MediaHandler struct {
	extractor ytdlp.Extractor
}

func NewMediaHandler(extractor ytdlp.Extractor) *MediaHandler {
	return &MediaHandler{
		extractor: extractor,
	}
}

// GetVideo godoc
// @Summary Get video metadata
// @Description Extract the metadata of a single video with yt-dlp
// @Tags media
// @Accept json
// @Produce json
// @Param request body models.VideoRequest true "Video URL"
// @Success 200 {object} models.VideoResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Router /api/video [post]
// @Security BearerAuth
func (h *MediaHandler) GetVideo(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	video, err := h.extractor.FetchVideo(ctx, req.URL)
	if err != nil {
		h.extractionError(c, "Failed to fetch video", req.URL, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// GetChannel godoc
// @Summary Get channel metadata
// @Description Extract channel metadata without listing its videos
// @Tags media
// @Accept json
// @Produce json
// @Param request body models.ChannelRequest true "Channel URL"
// @Success 200 {object} models.ChannelResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Router /api/channel [post]
// @Security BearerAuth
func (h *MediaHandler) GetChannel(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	channel, err := h.extractor.FetchChannel(ctx, req.URL)
	if err != nil {
		h.extractionError(c, "Failed to fetch channel", req.URL, err)
		return
	}

	c.JSON(http.StatusOK, channel)
}

// GetChannelVideos godoc
// @Summary List channel videos
// @Description List a channel's videos, optionally keeping only those uploaded on or after sinceDate
// @Tags media
// @Accept json
// @Produce json
// @Param request body models.ChannelVideosRequest true "Channel URL and listing options"
// @Success 200 {object} models.ChannelVideosResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Router /api/channel/videos [post]
// @Security BearerAuth
func (h *MediaHandler) GetChannelVideos(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ChannelVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	if req.MaxVideos < 0 {
		h.errorResponse(c, utils.NewValidationError("maxVideos must not be negative", map[string]interface{}{
			"maxVideos": req.MaxVideos,
		}))
		return
	}

	videos, err := h.extractor.ListChannelVideos(ctx, req.URL, ytdlp.ChannelVideosOptions{
		SinceDate: req.SinceDate,
		MaxVideos: req.MaxVideos,
	})
	if err != nil {
		h.extractionError(c, "Failed to list channel videos", req.URL, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// extractionError maps extraction failures onto API errors.
func (h *MediaHandler) extractionError(c *gin.Context, message, url string, err error) {
	ctx := c.Request.Context()

	var exitErr *ytdlp.ExitError
	switch {
	case errors.Is(err, ytdlp.ErrInvalidURL):
		h.errorResponse(c, utils.NewInvalidURLError(url))
		return
	case errors.Is(err, ytdlp.ErrTimeout):
		utils.LogWarn(ctx, message, utils.Fields{"url": url, "error": err.Error()})
		h.errorResponse(c, utils.NewExtractionTimeoutError())
		return
	case errors.Is(err, ytdlp.ErrOutputTooLarge):
		utils.LogWarn(ctx, message, utils.Fields{"url": url, "error": err.Error()})
		h.errorResponse(c, utils.NewOutputTooLargeError())
		return
	case errors.As(err, &exitErr):
		utils.LogWarn(ctx, message, utils.Fields{"url": url, "exit_code": exitErr.Code})
		h.errorResponse(c, utils.NewExtractionError(exitErr.Stderr))
		return
	case errors.Is(err, ytdlp.ErrInvalidOutput):
		utils.LogError(ctx, message, err, utils.Fields{"url": url})
		h.errorResponse(c, utils.NewInvalidToolOutputError())
		return
	}

	utils.LogError(ctx, message, err, utils.Fields{"url": url})
	h.errorResponse(c, utils.NewInternalError())
}

func (h *MediaHandler) errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error":      err,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
