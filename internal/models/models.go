package models

type VideoRequest struct {
	URL string `json:"url" binding:"required"`
}

type ChannelRequest struct {
	URL string `json:"url" binding:"required"`
}

type ChannelVideosRequest struct {
	URL       string `json:"url" binding:"required"`
	SinceDate string `json:"sinceDate,omitempty"`
	MaxVideos int    `json:"maxVideos,omitempty"`
}

type VideoResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Channel      string   `json:"channel"`
	ChannelID    string   `json:"channelId,omitempty"`
	ChannelURL   string   `json:"channelUrl,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	ViewCount    *int64   `json:"viewCount,omitempty"`
	LikeCount    *int64   `json:"likeCount,omitempty"`
	ThumbnailURL *string  `json:"thumbnailUrl"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
	URL          string   `json:"url"`
}

type ChannelResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	URL             string  `json:"url"`
	AvatarURL       *string `json:"avatarUrl"`
	SubscriberCount *int64  `json:"subscriberCount,omitempty"`
}

type VideoSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	ThumbnailURL *string  `json:"thumbnailUrl"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	ViewCount    *int64   `json:"viewCount,omitempty"`
}

type ChannelVideosResponse struct {
	Videos []VideoSummary `json:"videos"`
	Count  int            `json:"count"`

	// SinceDate echoes the caller's input; DateFilter is the token passed to
	// yt-dlp, omitted when the input was not recognised.
	SinceDate     string `json:"sinceDate,omitempty"`
	DateFilter    string `json:"dateFilter,omitempty"`
	FilterApplied bool   `json:"filterApplied"`

	// SkippedEntries counts listing lines that could not be decoded.
	SkippedEntries int `json:"skippedEntries,omitempty"`
}

// OptionalString maps "" to a JSON null.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
