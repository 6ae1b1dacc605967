// Package timeutil provides time formatting utilities for derlens.
//
// History timestamps are stored as Unix nanoseconds (int64). ASN.1
// UTCTime and GeneralizedTime values are parsed here for display.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBadTime is returned for malformed UTCTime or GeneralizedTime text.
var ErrBadTime = errors.New("timeutil: malformed time")

// FromNano converts a Unix nanosecond timestamp to time.Time.
func FromNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

// NowNano returns the current time as Unix nanoseconds.
func NowNano() int64 {
	return time.Now().UnixNano()
}

// FormatTimestampFull formats a Unix nanosecond timestamp with date.
// Format: "2006-01-02 15:04:05.000"
func FormatTimestampFull(ns int64) string {
	t := FromNano(ns)
	return t.Format("2006-01-02 15:04:05.000")
}

// RelativeTime returns a human-readable relative time string.
// Examples: "just now", "5s ago", "2m ago", "1h ago"
func RelativeTime(ns int64) string {
	diff := time.Since(FromNano(ns))

	switch {
	case diff < time.Second:
		return "just now"
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
}

// ParseUTCTime parses an ASN.1 UTCTime ("YYMMDDhhmm[ss]Z" or with a
// "+hhmm"/"-hhmm" offset). Two-digit years below 50 are 20xx.
func ParseUTCTime(s string) (time.Time, error) {
	layouts := []string{
		"0601021504Z0700",
		"060102150405Z0700",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() >= 2050 {
				t = t.AddDate(-100, 0, 0)
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: UTCTime %q", ErrBadTime, s)
}

// ParseGeneralizedTime parses an ASN.1 GeneralizedTime
// ("YYYYMMDDHHMMSS[.fff]" followed by "Z", an offset, or nothing for local
// time, which is read as UTC).
func ParseGeneralizedTime(s string) (time.Time, error) {
	body, zone := s, ""
	if i := strings.IndexAny(s, "Z+-"); i >= 0 {
		body, zone = s[:i], s[i:]
	}

	frac := ""
	if i := strings.IndexAny(body, ".,"); i >= 0 {
		body, frac = body[:i], "."+body[i+1:]
	}

	layout := "20060102150405"
	if len(body) == len("2006010215") {
		layout = "2006010215"
	} else if len(body) == len("200601021504") {
		layout = "200601021504"
	}
	if frac != "" {
		layout += "." + strings.Repeat("9", len(frac)-1)
	}
	if zone != "" {
		layout += "Z0700"
	}

	t, err := time.Parse(layout, body+frac+zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: GeneralizedTime %q", ErrBadTime, s)
	}
	return t, nil
}
