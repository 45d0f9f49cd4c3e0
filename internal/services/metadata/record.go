// Package metadata turns the loosely typed JSON emitted by yt-dlp into typed
// records and derives the values the API exposes from them: the preferred
// thumbnail URL and the local calendar dates used for since-date filtering.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrNotObject = errors.New("record is not a JSON object")

// ThumbnailCandidate is one entry of a record's "thumbnails" list. Any field
// may be missing; numeric fields are nil when absent or not a JSON number.
type ThumbnailCandidate struct {
	URL        string
	ID         string
	Width      *float64
	Height     *float64
	Preference *float64
}

// Record is the subset of a yt-dlp info dict consumed by the API. String
// fields are empty when absent or mistyped.
type Record struct {
	ID          string
	Title       string
	Description string

	Channel    string
	ChannelID  string
	ChannelURL string
	Uploader   string
	UploaderID string

	WebpageURL string
	URL        string

	Thumbnail  string
	Thumbnails []ThumbnailCandidate

	// UploadDate is the raw YYYYMMDD value.
	UploadDate string

	Duration             *float64
	ViewCount            *int64
	LikeCount            *int64
	ChannelFollowerCount *int64
}

// DecodeRecord decodes one JSON object. Only invalid JSON or a non-object
// top level is an error; mistyped fields are dropped individually.
func DecodeRecord(data []byte) (Record, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return Record{}, ErrNotObject
	}

	return RecordFromMap(m), nil
}

// RecordFromMap validates an already decoded JSON object.
func RecordFromMap(m map[string]any) Record {
	rec := Record{
		ID:          stringField(m, "id"),
		Title:       stringField(m, "title"),
		Description: stringField(m, "description"),
		Channel:     stringField(m, "channel"),
		ChannelID:   stringField(m, "channel_id"),
		ChannelURL:  stringField(m, "channel_url"),
		Uploader:    stringField(m, "uploader"),
		UploaderID:  stringField(m, "uploader_id"),
		WebpageURL:  stringField(m, "webpage_url"),
		URL:         stringField(m, "url"),
		Thumbnail:   stringField(m, "thumbnail"),
		UploadDate:  stringField(m, "upload_date"),
		Duration:    numberField(m, "duration"),

		ViewCount:            countField(m, "view_count"),
		LikeCount:            countField(m, "like_count"),
		ChannelFollowerCount: countField(m, "channel_follower_count"),
	}

	if list, ok := m["thumbnails"].([]any); ok {
		rec.Thumbnails = make([]ThumbnailCandidate, 0, len(list))
		for _, item := range list {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			rec.Thumbnails = append(rec.Thumbnails, ThumbnailCandidate{
				URL:        stringField(obj, "url"),
				ID:         stringField(obj, "id"),
				Width:      numberField(obj, "width"),
				Height:     numberField(obj, "height"),
				Preference: numberField(obj, "preference"),
			})
		}
	}

	return rec
}

// UploadTime returns the record's upload date at local midnight.
func (r Record) UploadTime() (time.Time, bool) {
	return ParseUploadDate(r.UploadDate)
}

// PublishedAt formats the upload date as RFC 3339, or "" when unknown.
func (r Record) PublishedAt() string {
	t, ok := r.UploadTime()
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ChannelName picks the display name of the channel a record belongs to.
func (r Record) ChannelName() string {
	switch {
	case r.Channel != "":
		return r.Channel
	case r.Uploader != "":
		return r.Uploader
	default:
		return r.Title
	}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func numberField(m map[string]any, key string) *float64 {
	if f, ok := m[key].(float64); ok {
		return &f
	}
	return nil
}

func countField(m map[string]any, key string) *int64 {
	f := numberField(m, key)
	if f == nil {
		return nil
	}
	if *f < math.MinInt64 || *f >= math.MaxInt64 {
		return nil
	}
	n := int64(*f)
	return &n
}
