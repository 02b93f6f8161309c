package service

import (
	"time"
)

const dateOnlyLayout = "2006-01-02"

// ParseScheduledTime accepts a full timestamp or a bare date. Date-only input
// is anchored to 12:00 UTC instead of midnight, which keeps a "post on March
// 1st" request on March 1st for every timezone a reviewer might be in.
func ParseScheduledTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", value); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}
