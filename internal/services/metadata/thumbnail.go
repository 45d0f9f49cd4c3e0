package metadata

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const fallbackThumbnailURL = "https://i.ytimg.com/vi/%s/hqdefault.jpg"

// namedQualities lists the YouTube thumbnail variants in preference order.
// hqdefault wins over maxresdefault: the front-end renders small cards.
var namedQualities = []string{"hqdefault", "mqdefault", "maxresdefault"}

// PickThumbnailURL selects the thumbnail for a video record. It returns ""
// when the record offers nothing to choose from.
func PickThumbnailURL(rec Record) string {
	for _, quality := range namedQualities {
		if u := findByURL(rec.Thumbnails, quality); u != "" {
			return u
		}
	}

	if rec.Thumbnail != "" {
		return rec.Thumbnail
	}

	if u := bestScored(rec.Thumbnails); u != "" {
		return u
	}

	if rec.ID != "" {
		return fmt.Sprintf(fallbackThumbnailURL, url.PathEscape(rec.ID))
	}

	return ""
}

// PickAvatarURL selects the avatar image of a channel record. Channel IDs
// are not video IDs, so nothing is synthesized here.
func PickAvatarURL(rec Record) string {
	var avatar string
	for _, t := range rec.Thumbnails {
		if t.URL == "" {
			continue
		}
		if t.ID == "avatar_uncropped" {
			return t.URL
		}
		if avatar == "" && strings.Contains(strings.ToLower(t.ID), "avatar") {
			avatar = t.URL
		}
	}
	if avatar != "" {
		return avatar
	}

	if best := bestScored(rec.Thumbnails); best != "" {
		return best
	}

	return rec.Thumbnail
}

func findByURL(candidates []ThumbnailCandidate, quality string) string {
	for _, t := range candidates {
		if t.URL != "" && strings.Contains(strings.ToLower(t.URL), quality) {
			return t.URL
		}
	}
	return ""
}

// score is the pixel area when both dimensions are positive, otherwise the
// candidate's preference (0 when absent).
func (t ThumbnailCandidate) score() float64 {
	if t.Width != nil && t.Height != nil && *t.Width > 0 && *t.Height > 0 {
		return *t.Width * *t.Height
	}
	if t.Preference != nil {
		return *t.Preference
	}
	return 0
}

func bestScored(candidates []ThumbnailCandidate) string {
	usable := make([]ThumbnailCandidate, 0, len(candidates))
	for _, t := range candidates {
		if t.URL != "" {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return ""
	}

	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].score() > usable[j].score()
	})

	return usable[0].URL
}
