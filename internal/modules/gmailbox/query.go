package gmailbox

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// buildQuery assembles a Gmail search query from the intent criteria.
// datePeriod is either a single day (YYYY-MM-DD) or a range
// (YYYY-MM-DD/YYYY-MM-DD); the Gmail "before:" operator is exclusive, so the
// end date is pushed one day forward.
func buildQuery(sender, datePeriod string, unread bool) (string, error) {
	var parts []string

	if sender != "" {
		parts = append(parts, "from:"+sender)
	}

	if datePeriod != "" {
		start, end, err := parsePeriod(datePeriod)
		if err != nil {
			return "", err
		}
		parts = append(parts,
			"after:"+start.Format("2006/01/02"),
			"before:"+end.AddDate(0, 0, 1).Format("2006/01/02"),
		)
	}

	if unread {
		parts = append(parts, "is:unread")
	}

	return strings.Join(parts, " "), nil
}

func parsePeriod(s string) (start, end time.Time, err error) {
	if from, to, ok := strings.Cut(s, "/"); ok {
		start, err = time.Parse(dayLayout, from)
		if err != nil {
			return start, end, fmt.Errorf("invalid date period %q: %w", s, err)
		}
		end, err = time.Parse(dayLayout, to)
		if err != nil {
			return start, end, fmt.Errorf("invalid date period %q: %w", s, err)
		}
		if end.Before(start) {
			return start, end, fmt.Errorf("invalid date period %q: end before start", s)
		}
		return start, end, nil
	}

	start, err = time.Parse(dayLayout, s)
	if err != nil {
		return start, end, fmt.Errorf("invalid date period %q: %w", s, err)
	}
	return start, start, nil
}
