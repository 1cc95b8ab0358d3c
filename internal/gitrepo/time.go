package gitrepo

import (
	"fmt"
	"time"
)

// Timestamp cutoffs accept a full RFC 3339 timestamp, a local datetime, or a
// bare date. A bare date resolves to the start of the day for a lower bound
// and the end of the day for an upper bound.
const (
	layoutDateTime = "2006-01-02T15:04:05"
	layoutDate     = "2006-01-02"
)

// ParseStartTime parses a lower timestamp cutoff.
func ParseStartTime(value string) (time.Time, error) {
	return parseCutoff(value, false)
}

// ParseEndTime parses an upper timestamp cutoff.
func ParseEndTime(value string) (time.Time, error) {
	return parseCutoff(value, true)
}

func parseCutoff(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateTime, value, time.Local); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation(layoutDate, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC 3339, a datetime, or a date)", value)
	}
	if endOfDay {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	return t, nil
}
