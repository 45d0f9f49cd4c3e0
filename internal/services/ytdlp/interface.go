package ytdlp

import (
	"context"

	"github.com/bump-fr/yt-dlp-api/internal/models"
)

// Runner executes yt-dlp with the given arguments and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// Extractor is the metadata surface the HTTP handlers depend on
type Extractor interface {
	// FetchVideo returns the metadata of a single video
	FetchVideo(ctx context.Context, url string) (*models.VideoResponse, error)

	// FetchChannel returns channel metadata without listing its videos
	FetchChannel(ctx context.Context, url string) (*models.ChannelResponse, error)

	// ListChannelVideos lists a channel's videos, newest first
	ListChannelVideos(ctx context.Context, url string, opts ChannelVideosOptions) (*models.ChannelVideosResponse, error)

	// Version reports the installed yt-dlp version
	Version(ctx context.Context) (string, error)
}

// ChannelVideosOptions narrows a channel listing.
type ChannelVideosOptions struct {
	// SinceDate is the caller's raw since-date input; empty disables filtering.
	SinceDate string

	// MaxVideos caps the result; values below 1 select the configured default.
	MaxVideos int
}
