package assistant

import (
	"strings"
	"testing"
	"time"
)

func TestDateContext(t *testing.T) {
	// A Wednesday.
	now := time.Date(2026, 8, 26, 15, 4, 5, 0, time.UTC)
	out := dateContext(now, time.UTC)

	for _, want := range []string{
		"- Current datetime: 2026-08-26T15:04:05",
		"- Current date: 2026-08-26 (Wednesday)",
		"- Current year: 2026",
		"- This week: 2026-08-24 to 2026-08-30",
		"- Next week: 2026-08-31 to 2026-09-06",
		"- This month: 2026-08-01 to 2026-08-31",
		"- Timezone: UTC",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("context missing %q:\n%s", want, out)
		}
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	sun := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	got := startOfWeek(sun)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStartOfWeekOnMonday(t *testing.T) {
	mon := time.Date(2026, 8, 24, 0, 30, 0, 0, time.UTC)
	got := startOfWeek(mon)
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
