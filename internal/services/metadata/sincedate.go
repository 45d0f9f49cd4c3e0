package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SinceDateKind tags the outcome of ParseSinceDate.
type SinceDateKind int

const (
	SinceDateUnrecognized SinceDateKind = iota
	SinceDateAbsolute
	SinceDateRelative
)

func (k SinceDateKind) String() string {
	switch k {
	case SinceDateAbsolute:
		return "absolute"
	case SinceDateRelative:
		return "relative"
	default:
		return "unrecognized"
	}
}

// SinceDate is a parsed since-date expression.
//
// Absolute values carry the eight digits in Digits and their decomposition
// in Year/Month/Day. Relative values carry the base word and, when an offset
// was given, its decimal count and singular unit.
type SinceDate struct {
	Kind SinceDateKind

	Digits string
	Year   int
	Month  int
	Day    int

	Base  string
	Count string
	Unit  string
}

var (
	isoPrefixPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	compactPattern   = regexp.MustCompile(`^\d{8}$`)
	relativePattern  = regexp.MustCompile(`^(now|today|yesterday)(?:-([1-9]\d*)(day|week|month|year)s?)?$`)
)

// ParseSinceDate recognises, in order: a YYYY-MM-DD prefix (anything after
// the first ten characters is ignored), exactly eight digits, and the
// relative grammar now|today|yesterday[-N(day|week|month|year)[s]].
func ParseSinceDate(input string) SinceDate {
	s := strings.TrimSpace(input)
	if s == "" {
		return SinceDate{}
	}

	if m := isoPrefixPattern.FindStringSubmatch(s); m != nil {
		return absoluteSinceDate(m[1] + m[2] + m[3])
	}

	if compactPattern.MatchString(s) {
		return absoluteSinceDate(s)
	}

	if m := relativePattern.FindStringSubmatch(s); m != nil {
		return SinceDate{
			Kind:  SinceDateRelative,
			Base:  m[1],
			Count: m[2],
			Unit:  m[3],
		}
	}

	return SinceDate{}
}

// absoluteSinceDate decomposes eight ASCII digits as YYYY MM DD.
func absoluteSinceDate(digits string) SinceDate {
	year, _ := strconv.Atoi(digits[0:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])

	return SinceDate{
		Kind:   SinceDateAbsolute,
		Digits: digits,
		Year:   year,
		Month:  month,
		Day:    day,
	}
}

// FilterToken renders the value accepted by yt-dlp's --dateafter option.
// The token only ever contains [A-Za-z0-9-].
func (d SinceDate) FilterToken() (string, bool) {
	switch d.Kind {
	case SinceDateAbsolute:
		return d.Digits, true
	case SinceDateRelative:
		if d.Count == "" {
			return d.Base, true
		}
		unit := d.Unit
		if d.Count != "1" && !strings.HasSuffix(unit, "s") {
			unit += "s"
		}
		return d.Base + "-" + d.Count + unit, true
	default:
		return "", false
	}
}

// LocalDate returns local midnight of an absolute date. Relative
// expressions are not resolved.
func (d SinceDate) LocalDate() (time.Time, bool) {
	if d.Kind != SinceDateAbsolute {
		return time.Time{}, false
	}
	return localMidnight(d.Year, d.Month, d.Day), true
}

// NormalizeSinceDateForFilter converts caller input into a --dateafter
// token. Unrecognised input yields false rather than being passed through.
func NormalizeSinceDateForFilter(input string) (string, bool) {
	return ParseSinceDate(input).FilterToken()
}

// ParseSinceDateToLocalDate returns the client-side filtering threshold for
// the absolute forms of input.
func ParseSinceDateToLocalDate(input string) (time.Time, bool) {
	return ParseSinceDate(input).LocalDate()
}

// ParseUploadDate decomposes a YYYYMMDD upload_date the same way absolute
// since-dates are decomposed, so the two compare without zone drift.
func ParseUploadDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !compactPattern.MatchString(s) {
		return time.Time{}, false
	}
	return absoluteSinceDate(s).LocalDate()
}

// localMidnight builds the date from its components in time.Local;
// out-of-range months and days roll over like time.Date does.
func localMidnight(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}
