package assistant

import (
	"fmt"
	"strings"
	"time"
)

// dateContext renders the temporal context block appended to every
// parser request so relative dates ("tomorrow", "next week") resolve
// against the machine's clock.
func dateContext(now time.Time, loc *time.Location) string {
	now = now.In(loc)

	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 6)
	nextStart := weekStart.AddDate(0, 0, 7)
	nextEnd := nextStart.AddDate(0, 0, 6)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var b strings.Builder
	b.WriteString("\n\nCURRENT CONTEXT:\n")
	fmt.Fprintf(&b, "- Current datetime: %s\n", now.Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, "- Current date: %s (%s)\n", now.Format("2006-01-02"), now.Weekday())
	fmt.Fprintf(&b, "- Current year: %d\n", now.Year())
	fmt.Fprintf(&b, "- This week: %s to %s\n", weekStart.Format("2006-01-02"), weekEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Next week: %s to %s\n", nextStart.Format("2006-01-02"), nextEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "- This month: %s to %s\n", monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "- Timezone: %s", loc.String())
	return b.String()
}

// startOfWeek returns the Monday of the week containing t, at midnight.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := t.AddDate(0, 0, 1-wd)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
