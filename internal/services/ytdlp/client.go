package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/models"
	"github.com/bump-fr/yt-dlp-api/internal/services/metadata"
	"github.com/bump-fr/yt-dlp-api/internal/utils"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

type Client struct {
	runner Runner
	config *config.YtDlpConfig
}

// NewClient creates a new yt-dlp backed extractor
func NewClient(runner Runner, cfg *config.YtDlpConfig) *Client {
	return &Client{
		runner: runner,
		config: cfg,
	}
}

// FetchVideo dumps a single video's info dict
func (c *Client) FetchVideo(ctx context.Context, url string) (*models.VideoResponse, error) {
	url = strings.TrimSpace(url)
	if err := ValidateMediaURL(url); err != nil {
		return nil, err
	}

	out, err := c.runner.Run(ctx, videoArgs(url)...)
	if err != nil {
		return nil, err
	}

	rec, err := metadata.DecodeRecord(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return videoFromRecord(rec, url), nil
}

// FetchChannel dumps channel-level metadata without enumerating entries
func (c *Client) FetchChannel(ctx context.Context, url string) (*models.ChannelResponse, error) {
	url = strings.TrimSpace(url)
	if err := ValidateMediaURL(url); err != nil {
		return nil, err
	}

	out, err := c.runner.Run(ctx, channelArgs(url)...)
	if err != nil {
		return nil, err
	}

	rec, err := metadata.DecodeRecord(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return channelFromRecord(rec, url), nil
}

// ListChannelVideos lists a channel's uploads in flat mode. The since-date
// is applied twice: as --dateafter when it normalises to a safe token, and
// locally against each entry's upload_date when it is an absolute date.
func (c *Client) ListChannelVideos(ctx context.Context, url string, opts ChannelVideosOptions) (*models.ChannelVideosResponse, error) {
	url = strings.TrimSpace(url)
	if err := ValidateMediaURL(url); err != nil {
		return nil, err
	}

	maxVideos := c.resolveMaxVideos(opts.MaxVideos)
	since := metadata.ParseSinceDate(opts.SinceDate)
	token, hasToken := since.FilterToken()
	threshold, hasThreshold := since.LocalDate()

	if opts.SinceDate != "" && !hasToken {
		utils.LogWarn(ctx, "Ignoring unrecognized sinceDate", utils.Fields{
			"since_date": opts.SinceDate,
		})
	}

	out, err := c.runner.Run(ctx, channelVideosArgs(url, maxVideos, token)...)
	if err != nil {
		return nil, err
	}

	records, skipped := decodeLines(out)
	if skipped > 0 {
		utils.LogWarn(ctx, "Skipped malformed listing entries", utils.Fields{
			"skipped": skipped,
			"decoded": len(records),
		})
	}

	videos := make([]models.VideoSummary, 0, len(records))
	for _, rec := range records {
		if len(videos) >= maxVideos {
			break
		}
		if rec.ID == "" {
			continue
		}
		if hasThreshold {
			if uploaded, ok := rec.UploadTime(); ok && uploaded.Before(threshold) {
				continue
			}
		}
		videos = append(videos, summaryFromRecord(rec))
	}

	resp := &models.ChannelVideosResponse{
		Videos:         videos,
		Count:          len(videos),
		SinceDate:      opts.SinceDate,
		FilterApplied:  hasThreshold,
		SkippedEntries: skipped,
	}
	if hasToken {
		resp.DateFilter = token
	}

	return resp, nil
}

// versionTimeout bounds the --version probe used by health checks.
const versionTimeout = 5 * time.Second

// Version reports the output of yt-dlp --version
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Run(WithRunTimeout(ctx, versionTimeout), "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) resolveMaxVideos(requested int) int {
	if requested < 1 {
		return c.config.DefaultMaxVideos
	}
	if requested > c.config.MaxVideosLimit {
		return c.config.MaxVideosLimit
	}
	return requested
}

// The media URL always follows "--" so it can never be parsed as an option.

func videoArgs(url string) []string {
	return []string{"-J", "--no-playlist", "--no-warnings", "--", url}
}

func channelArgs(url string) []string {
	return []string{"-J", "--flat-playlist", "--playlist-items", "0", "--no-warnings", "--", url}
}

func channelVideosArgs(url string, maxVideos int, dateFilter string) []string {
	args := []string{
		"-j",
		"--flat-playlist",
		"--extractor-args", "youtubetab:approximate_date",
		"--playlist-end", strconv.Itoa(maxVideos),
	}
	if dateFilter != "" {
		args = append(args, "--dateafter", dateFilter)
	}
	return append(args, "--no-warnings", "--", url)
}

// decodeLines decodes newline-delimited JSON. Lines that fail to decode are
// counted and skipped; their siblings are still returned.
func decodeLines(out []byte) ([]metadata.Record, int) {
	var records []metadata.Record
	skipped := 0

	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		rec, err := metadata.DecodeRecord(line)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	return records, skipped
}

func videoFromRecord(rec metadata.Record, requestURL string) *models.VideoResponse {
	return &models.VideoResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		Channel:      rec.ChannelName(),
		ChannelID:    rec.ChannelID,
		ChannelURL:   rec.ChannelURL,
		Duration:     rec.Duration,
		ViewCount:    rec.ViewCount,
		LikeCount:    rec.LikeCount,
		ThumbnailURL: models.OptionalString(metadata.PickThumbnailURL(rec)),
		PublishedAt:  rec.PublishedAt(),
		URL:          firstNonEmpty(rec.WebpageURL, requestURL),
	}
}

func channelFromRecord(rec metadata.Record, requestURL string) *models.ChannelResponse {
	return &models.ChannelResponse{
		ID:              firstNonEmpty(rec.ChannelID, rec.ID),
		Name:            rec.ChannelName(),
		Description:     rec.Description,
		URL:             firstNonEmpty(rec.ChannelURL, rec.WebpageURL, requestURL),
		AvatarURL:       models.OptionalString(metadata.PickAvatarURL(rec)),
		SubscriberCount: rec.ChannelFollowerCount,
	}
}

func summaryFromRecord(rec metadata.Record) models.VideoSummary {
	return models.VideoSummary{
		ID:           rec.ID,
		Title:        rec.Title,
		URL:          firstNonEmpty(rec.WebpageURL, rec.URL, watchURLPrefix+rec.ID),
		ThumbnailURL: models.OptionalString(metadata.PickThumbnailURL(rec)),
		PublishedAt:  rec.PublishedAt(),
		Duration:     rec.Duration,
		ViewCount:    rec.ViewCount,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
