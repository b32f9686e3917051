package extract

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Bare-date layouts produce midnight UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"02.01.2006",
	"20060102",
}

// Unix-timestamp bounds: seconds between 2000-01-01 and 2100-01-01.
const (
	minUnixSeconds = 946684800
	maxUnixSeconds = 4102444800
)

// ParseDate parses a date string against the layout table, promoting bare
// dates to midnight UTC. Numeric strings are treated as unix seconds or
// milliseconds when they fall in a plausible range. Returns (nil, false)
// for anything unparseable; callers keep the verbatim string as provenance.
func ParseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	// ISO strings with a Z or offset suffix and fractional seconds.
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, true
		}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n >= minUnixSeconds && n <= maxUnixSeconds {
			t := time.Unix(n, 0).UTC()
			return &t, true
		}
		if n >= minUnixSeconds*1000 && n <= maxUnixSeconds*1000 {
			t := time.UnixMilli(n).UTC()
			return &t, true
		}
	}

	return nil, false
}

// PromoteDate lifts a date-only value to midnight UTC, leaving timestamps
// that already carry a time of day untouched.
func PromoteDate(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t
}
