package metadata

import "testing"

func f64(v float64) *float64 { return &v }

func TestPickThumbnailURL(t *testing.T) {
	testCases := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "hqdefault preferred regardless of order",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "https://i.ytimg.com/vi/x/mqdefault.jpg"},
				{URL: "https://i.ytimg.com/vi/x/hqdefault.jpg"},
			}},
			want: "https://i.ytimg.com/vi/x/hqdefault.jpg",
		},
		{
			name: "hqdefault matched case-insensitively",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "https://i.ytimg.com/vi/x/maxresdefault.jpg"},
				{URL: "https://i.ytimg.com/vi/x/HQDefault.webp"},
			}},
			want: "https://i.ytimg.com/vi/x/HQDefault.webp",
		},
		{
			name: "first hqdefault wins",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "https://a/hqdefault.jpg"},
				{URL: "https://b/hqdefault.jpg"},
			}},
			want: "https://a/hqdefault.jpg",
		},
		{
			name: "mqdefault over maxresdefault",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "https://i.ytimg.com/vi/x/maxresdefault.jpg"},
				{URL: "https://i.ytimg.com/vi/x/mqdefault.jpg"},
			}},
			want: "https://i.ytimg.com/vi/x/mqdefault.jpg",
		},
		{
			name: "maxresdefault over direct thumbnail",
			rec: Record{
				Thumbnail:  "https://direct/thumb.jpg",
				Thumbnails: []ThumbnailCandidate{{URL: "https://i.ytimg.com/vi/x/maxresdefault.jpg"}},
			},
			want: "https://i.ytimg.com/vi/x/maxresdefault.jpg",
		},
		{
			name: "direct thumbnail over scoring",
			rec: Record{
				ID:        "abc123",
				Thumbnail: "https://direct/thumb.jpg",
				Thumbnails: []ThumbnailCandidate{
					{URL: "b", Width: f64(640), Height: f64(480)},
				},
			},
			want: "https://direct/thumb.jpg",
		},
		{
			name: "highest area wins",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "a", Width: f64(120), Height: f64(90)},
				{URL: "b", Width: f64(640), Height: f64(480)},
			}},
			want: "b",
		},
		{
			name: "preference used when dimensions missing",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "low", Preference: f64(-10)},
				{URL: "high", Preference: f64(5)},
				{URL: "none"},
			}},
			want: "high",
		},
		{
			name: "zero dimension falls back to preference",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "sized", Width: f64(2), Height: f64(2)},
				{URL: "flat", Width: f64(0), Height: f64(1000), Preference: f64(10)},
			}},
			want: "flat",
		},
		{
			name: "ties keep original order",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "first"},
				{URL: "second"},
			}},
			want: "first",
		},
		{
			name: "candidates without url skipped",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{Width: f64(1920), Height: f64(1080)},
				{URL: "small", Width: f64(10), Height: f64(10)},
			}},
			want: "small",
		},
		{
			name: "synthesized from id",
			rec:  Record{ID: "abc123"},
			want: "https://i.ytimg.com/vi/abc123/hqdefault.jpg",
		},
		{
			name: "synthesized when no candidate has a url",
			rec:  Record{ID: "abc123", Thumbnails: []ThumbnailCandidate{{ID: "0"}}},
			want: "https://i.ytimg.com/vi/abc123/hqdefault.jpg",
		},
		{
			name: "empty record",
			rec:  Record{},
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PickThumbnailURL(tc.rec); got != tc.want {
				t.Errorf("PickThumbnailURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPickThumbnailURLFromDecodedJSON(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{
		"id": 42,
		"thumbnail": ["not", "a", "string"],
		"thumbnails": [
			"garbage",
			null,
			{"url": 7, "width": 1920, "height": 1080},
			{"url": "a", "width": "120", "height": 90, "preference": "high"},
			{"url": "b", "width": 640, "height": 480}
		]
	}`))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}

	if rec.ID != "" {
		t.Errorf("numeric id should be dropped, got %q", rec.ID)
	}
	if len(rec.Thumbnails) != 3 {
		t.Fatalf("expected 3 object candidates, got %d", len(rec.Thumbnails))
	}
	if got := PickThumbnailURL(rec); got != "b" {
		t.Errorf("PickThumbnailURL() = %q, want %q", got, "b")
	}
}

func TestPickThumbnailURLEmptyObject(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if got := PickThumbnailURL(rec); got != "" {
		t.Errorf("PickThumbnailURL({}) = %q, want empty", got)
	}
}

func TestPickAvatarURL(t *testing.T) {
	testCases := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "uncropped avatar",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{ID: "avatar", URL: "cropped"},
				{ID: "banner_uncropped", URL: "banner", Width: f64(2560), Height: f64(1440)},
				{ID: "avatar_uncropped", URL: "uncropped"},
			}},
			want: "uncropped",
		},
		{
			name: "any avatar",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{ID: "banner_uncropped", URL: "banner"},
				{ID: "Avatar", URL: "avatar"},
			}},
			want: "avatar",
		},
		{
			name: "scored candidate over direct thumbnail",
			rec: Record{
				Thumbnail:  "direct",
				Thumbnails: []ThumbnailCandidate{{ID: "banner_uncropped", URL: "banner", Width: f64(2560), Height: f64(1440)}},
			},
			want: "banner",
		},
		{
			name: "direct thumbnail when no candidate has a url",
			rec: Record{
				Thumbnail:  "direct",
				Thumbnails: []ThumbnailCandidate{{ID: "avatar_uncropped"}},
			},
			want: "direct",
		},
		{
			name: "score fallback",
			rec: Record{Thumbnails: []ThumbnailCandidate{
				{URL: "small", Width: f64(88), Height: f64(88)},
				{URL: "large", Width: f64(900), Height: f64(900)},
			}},
			want: "large",
		},
		{
			name: "no synthesis for channel ids",
			rec:  Record{ID: "UCabc"},
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PickAvatarURL(tc.rec); got != tc.want {
				t.Errorf("PickAvatarURL() = %q, want %q", got, tc.want)
			}
		})
	}
}
