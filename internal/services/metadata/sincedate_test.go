package metadata

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeSinceDateForFilter(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "ISO date", input: "2024-03-15", want: "20240315", wantOK: true},
		{name: "ISO date with time", input: "2024-03-15T10:00:00Z", want: "20240315", wantOK: true},
		{name: "ISO prefix with junk suffix", input: "2024-03-15 whatever", want: "20240315", wantOK: true},
		{name: "compact date", input: "20240315", want: "20240315", wantOK: true},
		{name: "surrounding whitespace", input: "  20240315\n", want: "20240315", wantOK: true},
		{name: "now", input: "now", want: "now", wantOK: true},
		{name: "today", input: "today", want: "today", wantOK: true},
		{name: "yesterday", input: "yesterday", want: "yesterday", wantOK: true},
		{name: "plural offset", input: "yesterday-3days", want: "yesterday-3days", wantOK: true},
		{name: "singular offset one", input: "yesterday-1day", want: "yesterday-1day", wantOK: true},
		{name: "plural unit with one", input: "today-1weeks", want: "today-1week", wantOK: true},
		{name: "singular unit pluralized", input: "now-2month", want: "now-2months", wantOK: true},
		{name: "years", input: "today-10years", want: "today-10years", wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: "   \t", wantOK: false},
		{name: "not a date", input: "not-a-date", wantOK: false},
		{name: "shell metacharacters", input: "20240101; rm -rf /", wantOK: false},
		{name: "command substitution", input: "$(id)", wantOK: false},
		{name: "seven digits", input: "2024031", wantOK: false},
		{name: "nine digits", input: "202403150", wantOK: false},
		{name: "leading zero offset", input: "today-01days", wantOK: false},
		{name: "zero offset", input: "today-0days", wantOK: false},
		{name: "unknown unit", input: "today-3hours", wantOK: false},
		{name: "capitalised base", input: "Today", wantOK: false},
		{name: "slashed date", input: "2024/03/15", wantOK: false},
		{name: "short ISO", input: "2024-3-15", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeSinceDateForFilter(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("NormalizeSinceDateForFilter(%q) ok = %v, want %v", tc.input, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("NormalizeSinceDateForFilter(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizedTokenCharset(t *testing.T) {
	inputs := []string{
		"2024-03-15T10:00:00Z;echo",
		"2024-03-15 `id`",
		"20240315",
		"yesterday-12weeks",
		"now",
	}

	for _, input := range inputs {
		token, ok := NormalizeSinceDateForFilter(input)
		if !ok {
			t.Fatalf("expected %q to normalise", input)
		}
		if strings.TrimFunc(token, func(r rune) bool {
			return r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		}) != "" {
			t.Errorf("token %q for %q contains characters outside [A-Za-z0-9-]", token, input)
		}
	}
}

func TestParseSinceDate(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		got := ParseSinceDate("2024-03-15")
		if got.Kind != SinceDateAbsolute {
			t.Fatalf("Kind = %v, want absolute", got.Kind)
		}
		if got.Year != 2024 || got.Month != 3 || got.Day != 15 || got.Digits != "20240315" {
			t.Errorf("unexpected decomposition: %+v", got)
		}
	})

	t.Run("relative", func(t *testing.T) {
		got := ParseSinceDate("today-2weeks")
		if got.Kind != SinceDateRelative {
			t.Fatalf("Kind = %v, want relative", got.Kind)
		}
		if got.Base != "today" || got.Count != "2" || got.Unit != "week" {
			t.Errorf("unexpected relative parts: %+v", got)
		}
	})

	t.Run("unrecognized", func(t *testing.T) {
		if got := ParseSinceDate("tomorrow"); got.Kind != SinceDateUnrecognized {
			t.Errorf("Kind = %v, want unrecognized", got.Kind)
		}
	})
}

func TestParseSinceDateToLocalDate(t *testing.T) {
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)

	for _, input := range []string{"2024-03-15", "2024-03-15T23:59:59-08:00", "20240315"} {
		got, ok := ParseSinceDateToLocalDate(input)
		if !ok {
			t.Fatalf("ParseSinceDateToLocalDate(%q) returned no date", input)
		}
		if !got.Equal(want) {
			t.Errorf("ParseSinceDateToLocalDate(%q) = %v, want %v", input, got, want)
		}
		if got.Location() != time.Local {
			t.Errorf("ParseSinceDateToLocalDate(%q) location = %v, want Local", input, got.Location())
		}
	}

	for _, input := range []string{"now", "today", "yesterday-3days", "", "garbage"} {
		if _, ok := ParseSinceDateToLocalDate(input); ok {
			t.Errorf("ParseSinceDateToLocalDate(%q) should not resolve", input)
		}
	}
}

func TestUploadDateComparesAgainstSinceDate(t *testing.T) {
	threshold, ok := ParseSinceDateToLocalDate("2024-03-15")
	if !ok {
		t.Fatal("expected threshold")
	}

	older, ok := ParseUploadDate("20240310")
	if !ok {
		t.Fatal("expected upload date")
	}
	if !older.Before(threshold) {
		t.Errorf("%v should be before %v", older, threshold)
	}

	same, _ := ParseUploadDate("20240315")
	if same.Before(threshold) {
		t.Errorf("same-day upload %v must not be before %v", same, threshold)
	}
}

func TestParseUploadDate(t *testing.T) {
	testCases := []struct {
		input  string
		wantOK bool
		want   time.Time
	}{
		{input: "20240229", wantOK: true, want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local)},
		{input: "20231301", wantOK: true, want: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)},
		{input: "2024-02-29", wantOK: false},
		{input: "", wantOK: false},
		{input: "NA", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseUploadDate(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
