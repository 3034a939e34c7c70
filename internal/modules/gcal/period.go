package gcal

import (
	"fmt"
	"strings"
	"time"
)

const (
	dayLayout      = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// parsePeriod resolves an intent time_period into a half-open [start, end)
// window in the local timezone. Accepted forms:
//
//	2026-08-28                      one day
//	2026-08-28T15:00:00             from that instant to end of day
//	2026-08-01/2026-08-31           inclusive day range
func parsePeriod(s string, loc *time.Location) (start, end time.Time, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := time.Now().In(loc)
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), nil
	}

	if from, to, ok := strings.Cut(s, "/"); ok {
		start, err = time.ParseInLocation(dayLayout, from, loc)
		if err != nil {
			return start, end, fmt.Errorf("invalid time period %q: %w", s, err)
		}
		end, err = time.ParseInLocation(dayLayout, to, loc)
		if err != nil {
			return start, end, fmt.Errorf("invalid time period %q: %w", s, err)
		}
		if end.Before(start) {
			return start, end, fmt.Errorf("invalid time period %q: end before start", s)
		}
		return start, end.AddDate(0, 0, 1), nil
	}

	if start, err = time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		end = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		return start, end, nil
	}

	if start, err = time.ParseInLocation(dayLayout, s, loc); err == nil {
		return start, start.AddDate(0, 0, 1), nil
	}

	return start, end, fmt.Errorf("invalid time period %q: expected YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD/YYYY-MM-DD", s)
}

// parseEventTime reads a start_time/end_time value, reporting whether it was
// a date-only (all-day) form.
func parseEventTime(s string, loc *time.Location) (t time.Time, allDay bool, err error) {
	if t, err = time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		return t, false, nil
	}
	if t, err = time.ParseInLocation(dayLayout, s, loc); err == nil {
		return t, true, nil
	}
	return t, false, fmt.Errorf("invalid time %q: expected YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD", s)
}
