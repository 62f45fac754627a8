package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	dbDateTimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout   = "2006-01-02"
	localISOLayout   = "2006-01-02T15:04:05.999999999"
)

// timestampLayouts are tried in order by ParseTimestamp. Zone-less layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	localISOLayout,
	dbDateTimeLayout,
	dateOnlyLayout,
}

// ParseTimestamp parses the ISO-ish timestamps emitted by product backends.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

// FormatTimestamp formats t as RFC3339 in UTC, the format the catalog API emits.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// NowUTC returns the current time in UTC truncated to seconds.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
